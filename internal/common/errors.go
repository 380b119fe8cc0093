// Package common defines shared constants and sentinel errors used across
// client layers of eventdesk. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Validation errors are raised client-side before any request is sent.
	ErrValidation = errors.New("validation error")

	// ErrNoSession is returned when an operation needs a logged-in admin.
	ErrNoSession = errors.New("no active session")

	// ErrConfirmationRequired is returned by destructive operations invoked
	// without a confirmation prompt.
	ErrConfirmationRequired = errors.New("confirmation required")

	// ErrInvalidToken is returned when a bearer token cannot be decoded.
	ErrInvalidToken = errors.New("invalid token")
)
