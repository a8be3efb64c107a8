// Package api hosts the MCP endpoint plus health and metrics on a gin
// router.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/developer-mesh/slack-mcp/internal/config"
	"github.com/developer-mesh/slack-mcp/internal/tools"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

const (
	serverName = "slack-mcp"

	// Version is reported in the MCP handshake
	Version = "0.1.0"
)

// Server is the HTTP server hosting the MCP endpoint
type Server struct {
	router *gin.Engine
	server *http.Server
	logger observability.Logger
}

// NewServer creates the API server and registers all routes
func NewServer(cfg *config.Config, handler *tools.Handler, logger observability.Logger, metrics observability.MetricsClient) *Server {
	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(logger))
	router.Use(MetricsMiddleware(metrics))

	mcpServer := newMCPServer(handler)
	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})

	// Every invocation is a self-contained round trip; headers captured
	// here are the resolver's second credential source.
	mcpGroup := router.Group("/mcp")
	mcpGroup.Use(HeaderCapture())
	mcpGroup.Any("", gin.WrapH(streamable))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "version": Version})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		router: router,
		server: &http.Server{
			Addr:         cfg.API.ListenAddress,
			Handler:      router,
			ReadTimeout:  cfg.API.ReadTimeout,
			WriteTimeout: cfg.API.WriteTimeout,
			IdleTimeout:  cfg.API.IdleTimeout,
		},
		logger: logger,
	}
}

func newMCPServer(handler *tools.Handler) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: Version,
	}, nil)
	handler.Register(server)
	return server
}

// Router exposes the gin engine for tests
func (s *Server) Router() http.Handler {
	return s.router
}

// Start begins serving and blocks until the server stops
func (s *Server) Start() error {
	s.logger.Info("starting server", map[string]interface{}{
		"listen_address": s.server.Addr,
	})
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server", nil)
	return s.server.Shutdown(ctx)
}
