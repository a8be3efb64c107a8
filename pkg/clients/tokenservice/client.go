// Package tokenservice implements the HTTP client for the external
// token-issuance service that stores previously captured OAuth credentials.
package tokenservice

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/developer-mesh/slack-mcp/pkg/auth"
	"github.com/developer-mesh/slack-mcp/pkg/models"
	"github.com/developer-mesh/slack-mcp/pkg/observability"
)

const (
	tokenEndpoint = "/get-token"

	// DefaultTimeout bounds a single token service request
	DefaultTimeout = 10 * time.Second
)

// Client queries the token service over HTTP. Safe for concurrent use.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     observability.Logger
}

// New creates a token service client. timeout <= 0 selects DefaultTimeout.
func New(baseURL, apiKey string, timeout time.Duration, logger observability.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = observability.NewNoopLogger()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Fetch retrieves the stored credential record for the given provider,
// scoped to userID when supplied. Any transport failure, non-2xx status,
// or unparseable body is reported as a *auth.ServiceError. An empty result
// set is not an error; it yields a record with no token fields.
func (c *Client) Fetch(ctx context.Context, userID, provider string) (*models.TokenRecord, error) {
	endpoint, err := url.Parse(c.baseURL + tokenEndpoint)
	if err != nil {
		return nil, &auth.ServiceError{Op: "build request", Err: err}
	}

	query := endpoint.Query()
	query.Set("provider", provider)
	if userID != "" {
		query.Set("user_id", userID)
	}
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, &auth.ServiceError{Op: "build request", Err: err}
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &auth.ServiceError{Op: "get token", Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &auth.ServiceError{Op: "get token", Status: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &auth.ServiceError{Op: "read response", Err: err}
	}

	record, err := decodeRecord(body)
	if err != nil {
		return nil, &auth.ServiceError{Op: "decode response", Err: err}
	}

	c.logger.Debug("fetched token record from service", map[string]interface{}{
		"provider": provider,
		"user_id":  userID,
	})
	return record, nil
}

// decodeRecord accepts either a single record object or an array of
// records, taking the first element. An empty array yields an empty record
// so the resolver treats it as "no token available" rather than failing.
func decodeRecord(body []byte) (*models.TokenRecord, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty response body")
	}

	if trimmed[0] == '[' {
		var records []models.TokenRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, fmt.Errorf("unmarshal record list: %w", err)
		}
		if len(records) == 0 {
			return &models.TokenRecord{}, nil
		}
		return &records[0], nil
	}

	var record models.TokenRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return nil, fmt.Errorf("unmarshal record: %w", err)
	}
	return &record, nil
}
