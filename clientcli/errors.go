package clientcli

import (
	"errors"
	"fmt"
	"net/http"
)

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration validation.
var (
	ErrAdminTokenRequired = errors.New("admin token is required")
	ErrConfigRequired     = errors.New("config is required")
)

// Errors for input validation.
var (
	ErrEmptyPath = errors.New("path is required")
)

// APIError is a non-2xx answer from the gateway.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Is reports whether target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common gateway answers. Use errors.Is to check for them.
var (
	// ErrUnauthorized is returned when the admin token is missing or wrong (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrBadRequest is returned for rejected input such as an unsafe key (400).
	ErrBadRequest = &APIError{StatusCode: http.StatusBadRequest}

	// ErrTooLarge is returned when the body exceeds the upload ceiling (413).
	ErrTooLarge = &APIError{StatusCode: http.StatusRequestEntityTooLarge}

	// ErrNotFound is returned for unknown routes (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}
)
