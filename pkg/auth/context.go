package auth

import (
	"context"
	"strings"
)

type contextKey string

const (
	// requestHeadersKey is the context key for inbound request headers
	requestHeadersKey contextKey = "request_headers"
)

// WithRequestHeaders returns a context carrying the inbound request headers.
// The map is read-only to this package.
func WithRequestHeaders(ctx context.Context, headers map[string]string) context.Context {
	if len(headers) == 0 {
		return ctx
	}
	return context.WithValue(ctx, requestHeadersKey, headers)
}

// RequestHeaders retrieves the inbound request headers from the context.
func RequestHeaders(ctx context.Context) (map[string]string, bool) {
	if ctx == nil {
		return nil, false
	}
	headers, ok := ctx.Value(requestHeadersKey).(map[string]string)
	return headers, ok
}

// HeaderValue looks up a header by name, case-insensitively.
func HeaderValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}
