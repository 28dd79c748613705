package handler

import (
	"net/http"
	"time"

	"vidstream/internal/middleware"
)

const refreshTokenCookie = "refresh_token"

// CookieConfig controls the session cookie attributes. Secure stays on
// outside local development.
type CookieConfig struct {
	Secure bool
	Domain string
}

func (c CookieConfig) set(w http.ResponseWriter, name string, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (c CookieConfig) setSession(w http.ResponseWriter, accessToken string, accessTTL time.Duration, refreshToken string, refreshTTL time.Duration) {
	c.set(w, middleware.AccessTokenCookie, accessToken, accessTTL)
	c.set(w, refreshTokenCookie, refreshToken, refreshTTL)
}

func (c CookieConfig) clearSession(w http.ResponseWriter) {
	c.clear(w, middleware.AccessTokenCookie)
	c.clear(w, refreshTokenCookie)
}
