package client

import (
	"errors"
	"fmt"
	"net/http"
)

// FieldError is a server-side validation failure tied to a single form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// APIError represents a non-2xx response (or a success:false envelope) from
// one of the authenticated data endpoints. Error() returns the server message
// verbatim so it can be surfaced to the user unchanged.
type APIError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []FieldError
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// AuthError represents a rejected sign-in or sign-up attempt. It is never
// retried automatically; Details, when present, map onto form fields by name.
type AuthError struct {
	StatusCode int
	Message    string
	Code       string
	Details    []FieldError
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// FieldMessages returns the per-field validation messages keyed by field name.
func (e *AuthError) FieldMessages() map[string]string {
	if len(e.Details) == 0 {
		return nil
	}
	m := make(map[string]string, len(e.Details))
	for _, d := range e.Details {
		if d.Field != "" && d.Message != "" {
			m[d.Field] = d.Message
		}
	}
	return m
}

// IsStatus returns true if err (or any wrapped error) carries the given HTTP
// status code, whether it came from a data endpoint or an auth endpoint.
func IsStatus(err error, code int) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == code
	}
	var authErr *AuthError
	if errors.As(err, &authErr) {
		return authErr.StatusCode == code
	}
	return false
}

// IsUnauthorized reports whether err is a 401 from any endpoint.
func IsUnauthorized(err error) bool {
	return IsStatus(err, http.StatusUnauthorized)
}
