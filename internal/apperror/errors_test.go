package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestIs_WrappedAppError(t *testing.T) {
	err := fmt.Errorf("registering: %w", NewDuplicateUsername())

	if !Is(err, TypeDuplicateUsername) {
		t.Error("expected wrapped duplicate error to match")
	}
	if Is(err, TypeValidation) {
		t.Error("expected type mismatch to be false")
	}
	if Is(errors.New("plain"), TypeInternal) {
		t.Error("expected plain error not to match")
	}
}

func TestSafeMessageAndCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"missing input", NewMissingInput("No message provided"), http.StatusBadRequest, "No message provided"},
		{"credentials", NewInvalidCredentials(), http.StatusUnauthorized, "invalid username or password"},
		{"internal hides cause", NewInternal(errors.New("dial tcp: refused")), http.StatusInternalServerError, "An unexpected error occurred. Please try again."},
		{"described internal", NewInternalDescribed(errors.New("phrase table empty")), http.StatusInternalServerError, "phrase table empty"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "an unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SafeCode(tt.err); got != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, got)
			}
			if got := SafeMessage(tt.err); got != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, got)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("db gone")
	err := NewInternal(cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the internal cause")
	}
}
