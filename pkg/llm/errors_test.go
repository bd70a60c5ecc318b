package llm

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorInterface(t *testing.T) {
	var _ error = &Error{}
}

func TestErrorString(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			"with code",
			&Error{Kind: ErrorKindUpstream, Code: "rate_limited", Message: "slow down"},
			"upstream: slow down (code: rate_limited)",
		},
		{
			"without code",
			&Error{Kind: ErrorKindTimeout, Message: "deadline exceeded"},
			"timeout: deadline exceeded",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		wantKind ErrorKind
		wantCode string
	}{
		{"configuration", NewConfigurationError("APIKey is required"), ErrorKindConfiguration, ""},
		{"validation", NewValidationError("schema conversion failed"), ErrorKindValidation, ""},
		{"transport", NewTransportError("connection refused"), ErrorKindTransport, ""},
		{"timeout", NewTimeoutError("deadline exceeded"), ErrorKindTimeout, ""},
		{"upstream", NewUpstreamError("rate_limited", "slow down"), ErrorKindUpstream, "rate_limited"},
		{"empty response", NewEmptyResponseError("no text in response"), ErrorKindEmptyResponse, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Kind != tt.wantKind {
				t.Errorf("Kind = %q, want %q", tt.err.Kind, tt.wantKind)
			}
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
		})
	}
}

func TestKindOf(t *testing.T) {
	kind, ok := KindOf(NewTimeoutError("deadline exceeded"))
	if !ok || kind != ErrorKindTimeout {
		t.Errorf("KindOf = %q, %v, want %q, true", kind, ok, ErrorKindTimeout)
	}

	// Wrapped adapter errors are still recognized.
	wrapped := fmt.Errorf("generate: %w", NewUpstreamError("500", "boom"))
	kind, ok = KindOf(wrapped)
	if !ok || kind != ErrorKindUpstream {
		t.Errorf("KindOf(wrapped) = %q, %v, want %q, true", kind, ok, ErrorKindUpstream)
	}

	if _, ok := KindOf(errors.New("plain")); ok {
		t.Error("KindOf should not match a plain error")
	}
	if _, ok := KindOf(nil); ok {
		t.Error("KindOf should not match nil")
	}
}

func TestIsKind(t *testing.T) {
	err := NewEmptyResponseError("nothing extractable")
	if !IsKind(err, ErrorKindEmptyResponse) {
		t.Error("IsKind should match the error's own kind")
	}
	if IsKind(err, ErrorKindTransport) {
		t.Error("IsKind should not match a different kind")
	}
}
