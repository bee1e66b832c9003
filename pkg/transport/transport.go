// Package transport issues the HTTP requests behind the table client. The
// client only depends on the Transport interface; HTTP is the default
// implementation.
package transport

import (
	"context"
	"fmt"
)

// Transport sends one request and returns the response body. It performs
// exactly one attempt; there is no retry.
type Transport interface {
	Do(ctx context.Context, req Request) ([]byte, error)
}

// Request describes one call. Body is nil for GET and DELETE.
type Request struct {
	Method string
	URL    string
	Body   []byte
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// Func adapts a function to the Transport interface.
type Func func(ctx context.Context, req Request) ([]byte, error)

func (f Func) Do(ctx context.Context, req Request) ([]byte, error) {
	return f(ctx, req)
}
