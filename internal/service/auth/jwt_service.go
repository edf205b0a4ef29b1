// Package auth implements the session gate: a stateless, signed JWT
// carried in an HTTP-only cookie. Verification is purely cryptographic —
// there is no server-side session store, so compromise of the signing
// secret compromises all sessions and expiry is the only revocation
// mechanism.
package auth

import (
	"context"
	"time"
)

// JWTService defines operations for managing signed session tokens.
type JWTService interface {
	// IssueToken creates a signed session token encoding the
	// caller-supplied claims. The claims must include a non-empty email
	// identity; any additional claims are carried through verbatim.
	// Returns the token string or an error if signing fails.
	IssueToken(ctx context.Context, email string, custom map[string]interface{}) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken for an expired token and
	// ErrInvalidToken for a malformed token or bad signature.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims represents the decoded contents of a session token.
type Claims struct {
	// Email is the caller identity the session proves.
	Email string

	// Custom carries the caller-supplied claims other than the email and
	// the registered JWT claims.
	Custom map[string]interface{}

	// Standard registered JWT claims
	IssuedAt  time.Time
	ExpiresAt time.Time
	ID        string
}
