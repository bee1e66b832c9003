package types

import (
	"errors"
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty api key returns ErrAPIKeyEmpty",
			config:  Config{BaseURL: "https://api.airtable.com/v0/app1"},
			wantErr: ErrAPIKeyEmpty,
		},
		{
			name:    "empty base url returns ErrBaseURLEmpty",
			config:  Config{APIKey: "key"},
			wantErr: ErrBaseURLEmpty,
		},
		{
			name:    "relative base url is invalid",
			config:  Config{APIKey: "key", BaseURL: "v0/app1"},
			wantErr: ErrBaseURLInvalid,
		},
		{
			name:    "non-http scheme is invalid",
			config:  Config{APIKey: "key", BaseURL: "ftp://example.com/v0"},
			wantErr: ErrBaseURLInvalid,
		},
		{
			name:    "unparseable base url is invalid",
			config:  Config{APIKey: "key", BaseURL: "http://[::1"},
			wantErr: ErrBaseURLInvalid,
		},
		{
			name:    "valid https config",
			config:  Config{APIKey: "key", BaseURL: "https://api.airtable.com/v0/app1"},
			wantErr: nil,
		},
		{
			name:    "valid http config with timeout",
			config:  Config{APIKey: "key", BaseURL: "http://127.0.0.1:8080/v0/app1", Timeout: 5 * time.Second},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
