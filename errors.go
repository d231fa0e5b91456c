package stowgate

import (
	"errors"
	"fmt"
)

var (
	// ErrNotConfigured is returned when a required backing service is not bound
	ErrNotConfigured = errors.New("not configured")
	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnauthorized is returned when the admin token is missing or wrong
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPayloadTooLarge is returned when the declared body size exceeds MaxUploadBytes
	ErrPayloadTooLarge = errors.New("payload too large")
)

var (
	// ErrContentTypeRequired is returned by Prepare when no content type is given
	ErrContentTypeRequired = fmt.Errorf("content type required: %w", ErrInvalidInput)
	// ErrBadKey is returned by Put when the key is missing or unsafe
	ErrBadKey = fmt.Errorf("bad key: %w", ErrInvalidInput)
)
