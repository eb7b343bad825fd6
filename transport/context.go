package transport

import (
	"context"
	"net/http"
)

// Context keys for the transport package
type contextKey string

const (
	// HTTP headers from original request
	httpHeadersKey contextKey = "http-headers"

	// Client identity derived for rate limiting
	clientIDKey contextKey = "client-id"
)

// WithHTTPHeaders adds HTTP headers to the context
func WithHTTPHeaders(ctx context.Context, headers http.Header) context.Context {
	if headers == nil {
		return ctx
	}
	return context.WithValue(ctx, httpHeadersKey, headers)
}

// GetHTTPHeaders retrieves HTTP headers from the context
func GetHTTPHeaders(ctx context.Context) http.Header {
	if headers, ok := ctx.Value(httpHeadersKey).(http.Header); ok {
		return headers
	}
	return nil
}

// WithClientID adds the derived client identity to the context
func WithClientID(ctx context.Context, clientID string) context.Context {
	return context.WithValue(ctx, clientIDKey, clientID)
}

// GetClientID retrieves the derived client identity from the context
func GetClientID(ctx context.Context) string {
	if clientID, ok := ctx.Value(clientIDKey).(string); ok {
		return clientID
	}
	return ""
}
