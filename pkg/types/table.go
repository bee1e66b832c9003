package types

import "errors"

// Wire and client errors.
var (
	// ErrInvalidFormat is returned when a response payload matches none of
	// the expected shapes, or a delete response lacks a boolean "deleted".
	ErrInvalidFormat = errors.New("airtable response with invalid format")

	// ErrEncoding is returned when a write body cannot be built. No request
	// is issued.
	ErrEncoding = errors.New("encoding record")

	// ErrNoObject is returned when a create or update response decodes to
	// no object.
	ErrNoObject = errors.New("response contained no object")

	ErrInvalidID    = errors.New("invalid record ID")
	ErrInvalidTable = errors.New("invalid table name")
)

// Schema errors.
var (
	ErrEmptySchema      = errors.New("schema has no fields")
	ErrInvalidName      = errors.New("invalid field name")
	ErrInvalidFieldKind = errors.New("invalid field kind")
	ErrDuplicateField   = errors.New("duplicate field name")
)
