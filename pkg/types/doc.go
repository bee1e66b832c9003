// Package types defines the field kinds, schemas, value capabilities and the
// Object contract that domain types implement to be stored in Airtable.
// It also holds the client Config and the standard error values.
package types
