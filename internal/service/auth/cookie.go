package auth

import "net/http"

// SessionCookieName is the cookie the session token travels in. The name
// is part of the contract with the paired front end.
const SessionCookieName = "token"

// SetSessionCookie attaches the signed token as an HTTP-only session
// cookie. No Max-Age is set: the cookie lives for the browser session and
// the token's own expiry bounds its validity.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie from the client.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
