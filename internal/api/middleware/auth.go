package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/servicereview/service-review-api/internal/api/shared"
	"github.com/servicereview/service-review-api/internal/service/auth"
)

// AuthMiddleware gates routes behind the session cookie.
type AuthMiddleware struct {
	jwtService auth.JWTService
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(jwtService auth.JWTService) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
	}
}

// RequireSession validates the session token from the request's cookie and
// adds the caller's identity to the request context. Requests without a
// valid session are rejected with 401; the gate is applied to every
// mutating route.
func (m *AuthMiddleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(auth.SessionCookieName)
		if err != nil || cookie.Value == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized,
				"unauthorized", "Authentication required")
			return
		}

		claims, err := m.jwtService.ValidateToken(r.Context(), cookie.Value)
		if err != nil {
			switch {
			case errors.Is(err, auth.ErrExpiredToken):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"unauthorized", "Session expired")
			case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrTokenNotYetValid):
				shared.RespondWithError(w, r, http.StatusUnauthorized,
					"unauthorized", "Invalid session")
			default:
				slog.Error("failed to validate session token", "error", err)
				shared.RespondWithError(w, r, http.StatusInternalServerError,
					"internal", "Authentication error")
			}
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserEmailContextKey, claims.Email)
		ctx = context.WithValue(ctx, shared.SessionClaimsContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserEmail extracts the authenticated caller's email from the request
// context. Returns the email and a boolean indicating if it was found.
func GetUserEmail(r *http.Request) (string, bool) {
	email, ok := r.Context().Value(shared.UserEmailContextKey).(string)
	return email, ok
}
