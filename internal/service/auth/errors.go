package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or signature doesn't match
	ErrInvalidToken = errors.New("invalid session token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("session token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("session token not yet valid")

	// ErrMissingToken indicates a session cookie was expected but not provided
	ErrMissingToken = errors.New("session token is missing")

	// ErrMissingEmail indicates the claims to sign carry no email identity
	ErrMissingEmail = errors.New("session claims are missing an email")
)
