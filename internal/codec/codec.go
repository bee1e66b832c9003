// Package codec converts between Airtable wire records and typed domain
// objects, driven by a table Schema. Decoding and encoding are pure: a
// Codec holds only its schema and logger and is safe for concurrent use.
package codec

import (
	"log"

	"github.com/mesh-intelligence/airtable/pkg/types"
)

// Codec decodes wire rows into Records and encodes Objects into write bodies
// for one table schema.
type Codec struct {
	schema types.Schema
	logger *log.Logger
}

// Option configures a Codec.
type Option func(*Codec)

// WithLogger sets the logger used for non-fatal diagnostics such as fields
// missing from a wire row. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *Codec) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Codec for schema.
func New(schema types.Schema, opts ...Option) *Codec {
	c := &Codec{
		schema: schema,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Schema returns the schema the codec was built with.
func (c *Codec) Schema() types.Schema {
	return c.schema
}
