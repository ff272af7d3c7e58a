package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestDisplayReason(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"server reason", &AuthError{Reason: "Email already registered"}, "Email already registered"},
		{"empty reason falls back", &AuthError{}, GenericAuthFailure},
		{"transport falls back", &TransportError{Op: "POST /api/auth/login", Err: errors.New("refused")}, GenericAuthFailure},
		{"missing credentials", ErrMissingCredentials, ErrMissingCredentials.Error()},
		{"wrapped auth error", fmt.Errorf("login: %w", &AuthError{Reason: "nope"}), "nope"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := DisplayReason(tc.err); got != tc.want {
				t.Fatalf("DisplayReason() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "GET /api/auth/me", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatalf("expected unwrap to reach the cause")
	}
}

func TestValidationErrors_ByField(t *testing.T) {
	ve := ValidationErrors{
		{Field: "email", Message: "email is required"},
		{Field: "email", Message: "email must be a valid email"},
		{Field: "password", Message: "password is required"},
	}
	m := ve.ByField()
	if m["email"] != "email is required" {
		t.Fatalf("first message per field must win, got %q", m["email"])
	}
	if m["password"] != "password is required" {
		t.Fatalf("missing password message")
	}
}
