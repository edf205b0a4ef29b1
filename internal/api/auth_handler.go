package api

import (
	"log/slog"
	"net/http"

	"github.com/servicereview/service-review-api/internal/api/shared"
	"github.com/servicereview/service-review-api/internal/platform/logger"
	"github.com/servicereview/service-review-api/internal/service/auth"
)

// AuthHandler handles session-related API requests.
type AuthHandler struct {
	jwtService   auth.JWTService
	cookieSecure bool
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(jwtService auth.JWTService, cookieSecure bool, log *slog.Logger) *AuthHandler {
	if log == nil {
		log = slog.Default()
	}

	return &AuthHandler{
		jwtService:   jwtService,
		cookieSecure: cookieSecure,
		logger:       log.With(slog.String("component", "auth_handler")),
	}
}

// IssueSession handles POST /jwt.
// The body is a free-form claims object that must include an email
// identity; the signed token is set as the HTTP-only session cookie.
func (h *AuthHandler) IssueSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var claims map[string]interface{}
	if err := shared.DecodeJSON(r, &claims); err != nil {
		log.Warn("invalid session request format", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Invalid request format")
		return
	}

	email, _ := claims["email"].(string)
	if email == "" {
		log.Warn("session request missing email claim")
		shared.RespondWithError(w, r, http.StatusBadRequest,
			CodeValidationFailed, "Email is required")
		return
	}

	token, err := h.jwtService.IssueToken(r.Context(), email, claims)
	if err != nil {
		respondError(w, r, err)
		return
	}

	auth.SetSessionCookie(w, token, h.cookieSecure)

	log.Debug("session issued", slog.String("email", email))
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Success: true})
}

// ClearSession handles POST /logout.
// Clears the session cookie; the token itself stays valid until expiry
// (stateless verification has no revocation list).
func (h *AuthHandler) ClearSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	auth.ClearSessionCookie(w, h.cookieSecure)

	log.Debug("session cleared")
	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{Success: true})
}
