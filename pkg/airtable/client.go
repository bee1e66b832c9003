// Package airtable is a typed client for Airtable tables. A Client maps one
// domain type onto one table schema and exposes asynchronous CRUD calls whose
// wire encoding is handled by the record codec.
//
// Example:
//
//	client, err := airtable.NewClient(cfg, content.ContentSchema, content.NewContent)
//	items, err := airtable.Wait(client.FetchAll(ctx, content.ContentTable))
package airtable

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/mesh-intelligence/airtable/internal/codec"
	"github.com/mesh-intelligence/airtable/pkg/transport"
	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Version is the library and CLI version.
const Version = "0.1.0"

// ErrNilFactory is returned by NewClient when no factory is given.
var ErrNilFactory = errors.New("factory must not be nil")

// Result carries the outcome of one call: a value or an error, never both.
type Result[V any] struct {
	Value V
	Err   error
}

// Wait receives the single result of a call.
func Wait[V any](ch <-chan Result[V]) (V, error) {
	r := <-ch
	return r.Value, r.Err
}

// Client performs CRUD calls for domain type T against one base.
// A Client has no mutable state; concurrent calls are independent.
type Client[T types.Object] struct {
	baseURL   string
	transport transport.Transport
	codec     *codec.Codec
	factory   types.Factory[T]
}

type options struct {
	transport  transport.Transport
	httpClient *http.Client
	logger     *log.Logger
}

// Option configures a Client.
type Option func(*options)

// WithTransport replaces the default HTTP transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithHTTPClient sets the http.Client used by the default transport.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger for codec diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// NewClient validates cfg and schema and returns a Client that builds T
// values with factory.
func NewClient[T types.Object](cfg types.Config, schema types.Schema, factory types.Factory[T], opts ...Option) (*Client[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("invalid schema: %w", err)
	}
	if factory == nil {
		return nil, ErrNilFactory
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.transport == nil {
		hc := o.httpClient
		if hc == nil {
			hc = &http.Client{Timeout: cfg.Timeout}
		}
		o.transport = transport.NewHTTP(cfg.APIKey, hc)
	}

	return &Client[T]{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		transport: o.transport,
		codec:     codec.New(schema, codec.WithLogger(o.logger)),
		factory:   factory,
	}, nil
}

// Codec returns the record codec bound to the client's schema.
func (c *Client[T]) Codec() *codec.Codec {
	return c.codec
}

// FetchAll retrieves every record in table.
func (c *Client[T]) FetchAll(ctx context.Context, table string) <-chan Result[[]T] {
	return deliver(func() ([]T, error) {
		target, err := c.endpoint(table, "", false)
		if err != nil {
			return nil, err
		}
		body, err := c.transport.Do(ctx, transport.Request{Method: http.MethodGet, URL: target})
		if err != nil {
			return nil, err
		}
		return codec.DecodeObjects(c.codec, body, c.factory)
	})
}

// FetchObject retrieves the record with the given id. The result holds the
// decoded objects, normally exactly one.
func (c *Client[T]) FetchObject(ctx context.Context, id, table string) <-chan Result[[]T] {
	return deliver(func() ([]T, error) {
		target, err := c.endpoint(table, id, true)
		if err != nil {
			return nil, err
		}
		body, err := c.transport.Do(ctx, transport.Request{Method: http.MethodGet, URL: target})
		if err != nil {
			return nil, err
		}
		return codec.DecodeObjects(c.codec, body, c.factory)
	})
}

// CreateObject creates obj in table and returns the record as stored.
// Encoding failures are reported without issuing a request.
func (c *Client[T]) CreateObject(ctx context.Context, obj T, table string) <-chan Result[T] {
	return deliver(func() (T, error) {
		return c.write(ctx, http.MethodPost, obj, table, "", false)
	})
}

// UpdateObject replaces the fields of the record with obj's id.
func (c *Client[T]) UpdateObject(ctx context.Context, obj T, table string) <-chan Result[T] {
	return deliver(func() (T, error) {
		return c.write(ctx, http.MethodPut, obj, table, obj.ID(), true)
	})
}

// DeleteObject deletes the record with obj's id and reports the server's
// "deleted" flag.
func (c *Client[T]) DeleteObject(ctx context.Context, obj T, table string) <-chan Result[bool] {
	return deliver(func() (bool, error) {
		target, err := c.endpoint(table, obj.ID(), true)
		if err != nil {
			return false, err
		}
		body, err := c.transport.Do(ctx, transport.Request{Method: http.MethodDelete, URL: target})
		if err != nil {
			return false, err
		}
		return codec.DecodeDeleted(body)
	})
}

func (c *Client[T]) write(ctx context.Context, method string, obj T, table, id string, withID bool) (T, error) {
	var zero T
	target, err := c.endpoint(table, id, withID)
	if err != nil {
		return zero, err
	}
	payload, err := c.codec.Encode(obj)
	if err != nil {
		return zero, err
	}
	body, err := c.transport.Do(ctx, transport.Request{Method: method, URL: target, Body: payload})
	if err != nil {
		return zero, err
	}
	objects, err := codec.DecodeObjects(c.codec, body, c.factory)
	if err != nil {
		return zero, err
	}
	if len(objects) == 0 {
		return zero, types.ErrNoObject
	}
	return objects[0], nil
}

// endpoint builds base/table or base/table/id with both segments
// percent-encoded.
func (c *Client[T]) endpoint(table, id string, withID bool) (string, error) {
	if table == "" {
		return "", types.ErrInvalidTable
	}
	target := c.baseURL + "/" + url.PathEscape(table)
	if withID {
		if id == "" {
			return "", types.ErrInvalidID
		}
		target += "/" + url.PathEscape(id)
	}
	return target, nil
}

// deliver runs fn on its own goroutine and sends exactly one Result.
func deliver[V any](fn func() (V, error)) <-chan Result[V] {
	ch := make(chan Result[V], 1)
	go func() {
		defer close(ch)
		v, err := fn()
		if err != nil {
			var zero V
			ch <- Result[V]{Value: zero, Err: err}
			return
		}
		ch <- Result[V]{Value: v}
	}()
	return ch
}
