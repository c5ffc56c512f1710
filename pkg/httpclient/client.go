// Package httpclient provides the outbound HTTP abstraction shared by
// the fetch strategies. The interface keeps callers independent of the
// concrete client so tests can substitute canned responses.
package httpclient

import "context"

// Response exposes the pieces of an HTTP response the fetchers consume.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client performs context-aware GET requests with per-request headers.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
