package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/developer-mesh/slack-mcp/internal/config"
	"github.com/developer-mesh/slack-mcp/internal/tools"
	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/clients/slackapi"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	resolver := auth.NewResolver(nil, auth.FallbackTokens{}, nil, nil)
	handler := tools.NewHandler(resolver, slackapi.NewFactory(0), nil, nil)

	cfg := &config.Config{}
	cfg.API.ListenAddress = ":0"
	cfg.Environment = "test"

	return NewServer(cfg, handler, observability.NewNoopLogger(), observability.NewNoopMetricsClient())
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
	assert.Contains(t, w.Body.String(), Version)
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMCPEndpointRegistered(t *testing.T) {
	server := newTestServer(t)

	w := httptest.NewRecorder()
	server.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mcp", nil))

	// The MCP handler owns the response; the route must not 404.
	assert.NotEqual(t, http.StatusNotFound, w.Code)
}
