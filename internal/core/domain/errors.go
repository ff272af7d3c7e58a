package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingCredentials rejects login attempts with an empty identifier
	// or secret before any network call is made.
	ErrMissingCredentials = errors.New("email and password are required")

	// ErrSuperseded marks the outcome of an auth operation whose result
	// arrived after a newer operation already committed. The session keeps
	// the newer state; the stale result is discarded.
	ErrSuperseded = errors.New("superseded by a newer session operation")

	// ErrNoToken is returned by token stores when no token is persisted.
	ErrNoToken = errors.New("no session token stored")
)

// GenericAuthFailure is shown when the service gives no usable reason.
const GenericAuthFailure = "Something went wrong. Please try again."

// AuthError is a rejection by the authentication service: bad credentials,
// duplicate email, weak password per server policy. Reason is
// user-displayable and rendered verbatim by the auth controllers.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	if e.Reason == "" {
		return "authentication rejected"
	}
	return e.Reason
}

// TransportError covers network or service failure while talking to the
// authentication service. It is shown like an AuthError on login/register
// and only logged during session restore.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("auth service unreachable during %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DisplayReason extracts the banner message for a failed login/register:
// the server-provided reason when available, a generic fallback otherwise.
func DisplayReason(err error) string {
	var ae *AuthError
	if errors.As(err, &ae) && ae.Reason != "" {
		return ae.Reason
	}
	if errors.Is(err, ErrMissingCredentials) {
		return ErrMissingCredentials.Error()
	}
	return GenericAuthFailure
}

// FieldError is a single client-side validation failure, surfaced inline
// next to the offending field. It never reaches the session service.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors groups per-field failures for one submission.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	if len(v) == 0 {
		return "validation failed"
	}
	return v[0].Error()
}

// ByField indexes messages by field name for template rendering.
func (v ValidationErrors) ByField() map[string]string {
	m := make(map[string]string, len(v))
	for _, fe := range v {
		if _, seen := m[fe.Field]; !seen {
			m[fe.Field] = fe.Message
		}
	}
	return m
}
