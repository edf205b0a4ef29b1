package api

import (
	"errors"
	"net/http"

	"github.com/servicereview/service-review-api/internal/api/shared"
	"github.com/servicereview/service-review-api/internal/domain"
	"github.com/servicereview/service-review-api/internal/service/auth"
	"github.com/servicereview/service-review-api/internal/store"
)

// Stable machine-readable error codes exposed to clients, one per error
// kind. Part of the API contract.
const (
	CodeValidationFailed = "validation_failed"
	CodeUnauthorized     = "unauthorized"
	CodeNotFound         = "not_found"
	CodeInternal         = "internal"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors, normalized to 404 on every route
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, store.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMissingServiceID),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, auth.ErrMissingEmail):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorCode returns the stable machine-readable code for an error.
func ErrorCode(err error) string {
	switch MapErrorToStatusCode(err) {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusBadRequest:
		return CodeValidationFailed
	default:
		return CodeInternal
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrExpiredToken):
		return "Session expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid session"
	case errors.Is(err, auth.ErrMissingEmail):
		return "Email is required"

	// Not found errors
	case errors.Is(err, store.ErrServiceNotFound):
		return "Service not found"
	case errors.Is(err, store.ErrApplicationNotFound):
		return "Application not found"
	case store.IsNotFoundError(err):
		return "Not found"

	// Bad request errors
	case errors.Is(err, store.ErrInvalidID):
		return "Invalid id format"
	case errors.Is(err, domain.ErrMissingServiceID):
		return "Missing service_id in application"
	case errors.Is(err, domain.ErrInvalidStatus):
		return "Invalid status value"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "Invalid status transition"
	case errors.Is(err, domain.ErrValidation):
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// respondError is the single exit path handlers use for failed operations:
// status, code, and safe message all derive from the error kind, and the
// raw error goes to the logs only.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	code := ErrorCode(err)
	message := GetSafeErrorMessage(err)
	shared.RespondWithErrorAndLog(w, r, status, code, message, err)
}
