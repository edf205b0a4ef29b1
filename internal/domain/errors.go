// Package domain defines the core business entities and errors.
package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrMissingServiceID is returned when an application is created
	// without a service_id reference.
	ErrMissingServiceID = errors.New("missing service_id")

	// ErrInvalidStatus is returned when an application status is not one
	// of the known values.
	ErrInvalidStatus = errors.New("invalid application status")

	// ErrInvalidTransition is returned when a status update would move an
	// application out of a terminal state.
	ErrInvalidTransition = errors.New("invalid status transition")
)
