package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/google/uuid"
)

// Header names set on every request.
const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerRequestID     = "X-Request-ID"

	contentTypeJSON = "application/json"
)

// Compile-time interface check.
var _ Transport = (*HTTP)(nil)

// HTTP is a Transport that authenticates with a bearer token.
type HTTP struct {
	client *http.Client
	apiKey string
}

// NewHTTP returns an HTTP transport. A nil client uses http.DefaultClient.
func NewHTTP(apiKey string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{client: client, apiKey: apiKey}
}

// Do sends req with the Authorization header, a fresh X-Request-ID, and a
// JSON Content-Type when a body is present. Responses outside 2xx return
// *StatusError.
func (h *HTTP) Do(ctx context.Context, req Request) ([]byte, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", req.Method, req.URL, err)
	}
	httpReq.Header.Set(headerAuthorization, "Bearer "+h.apiKey)
	httpReq.Header.Set(headerRequestID, uuid.New().String())
	if req.Body != nil {
		httpReq.Header.Set(headerContentType, contentTypeJSON)
	}

	resp, err := h.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s %s response: %w", req.Method, req.URL, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{
			Method:     req.Method,
			URL:        req.URL,
			StatusCode: resp.StatusCode,
			Body:       data,
		}
	}
	return data, nil
}
