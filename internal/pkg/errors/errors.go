package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnavailable marks a dependency that could not be reached or
	// kept failing after retries.
	ErrUnavailable = errors.New("service unavailable")
	// ErrSchemaMismatch marks a structured model response that did not
	// match the requested schema.
	ErrSchemaMismatch = errors.New("schema mismatch")
)
