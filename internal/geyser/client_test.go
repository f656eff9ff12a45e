package geyser

import (
	"context"
	"errors"
	"testing"
)

func TestValidateXToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		wantErr bool
	}{
		{
			name:    "empty token",
			token:   "",
			wantErr: false,
		},
		{
			name:    "plain token",
			token:   "abc123-def456",
			wantErr: false,
		},
		{
			name:    "token with spaces",
			token:   "token with spaces",
			wantErr: false,
		},
		{
			name:    "newline in token",
			token:   "abc\ndef",
			wantErr: true,
		},
		{
			name:    "non-ascii byte",
			token:   "tok\xc3\xa9n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateXToken(tt.token)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateXToken(%q) error = %v, wantErr %v", tt.token, err, tt.wantErr)
			}
			if err != nil {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Errorf("expected *ConfigError, got %T", err)
				}
			}
		})
	}
}

func TestNewClientRejectsBadToken(t *testing.T) {
	// Must fail during validation, before any dial attempt.
	_, err := NewClient(context.Background(), "localhost:10000", "bad\x00token")
	if err == nil {
		t.Fatal("expected error for non-encodable token")
	}
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected *ConfigError, got %T: %v", err, err)
	}
	if cfgErr.Field != "x-token" {
		t.Errorf("ConfigError.Field = %q, want %q", cfgErr.Field, "x-token")
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		endpoint   string
		wantTarget string
		wantTLS    bool
	}{
		{"https://grpc.example.com:443", "grpc.example.com:443", true},
		{"http://localhost:10000", "localhost:10000", false},
		{"grpc.example.com:443", "grpc.example.com:443", true},
		{"localhost:10000", "localhost:10000", false},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			target, useTLS := parseTarget(tt.endpoint)
			if target != tt.wantTarget {
				t.Errorf("target = %q, want %q", target, tt.wantTarget)
			}
			if useTLS != tt.wantTLS {
				t.Errorf("useTLS = %v, want %v", useTLS, tt.wantTLS)
			}
		})
	}
}
