package types

import (
	"errors"
	"net/url"
	"time"
)

// Config holds the connection parameters for a table client.
type Config struct {
	// APIKey is the token generated in the Airtable dashboard.
	APIKey string `json:"api_key" yaml:"api_key"`

	// BaseURL is the base endpoint, e.g. https://api.airtable.com/v0/appXXXX.
	// Table names are appended to it.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// Timeout bounds each HTTP request when the default transport is used.
	// Zero means no timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// Config validation errors.
var (
	ErrAPIKeyEmpty    = errors.New("api key must not be empty")
	ErrBaseURLEmpty   = errors.New("base url must not be empty")
	ErrBaseURLInvalid = errors.New("base url must be an absolute http or https url")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrAPIKeyEmpty
	}
	if c.BaseURL == "" {
		return ErrBaseURLEmpty
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ErrBaseURLInvalid
	}
	return nil
}
