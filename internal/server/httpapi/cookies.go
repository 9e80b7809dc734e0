package httpapi

import (
	"net/http"
	"strings"
	"time"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name     string
	Secure   bool
	SameSite http.SameSite
	Domain   string
	TTL      time.Duration
}

// ParseSameSite maps "none", "lax", "strict" and "default" to http.SameSite.
// Unknown values fall back to SameSiteDefaultMode.
func ParseSameSite(s string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "none":
		return http.SameSiteNoneMode
	case "lax":
		return http.SameSiteLaxMode
	case "strict":
		return http.SameSiteStrictMode
	default:
		return http.SameSiteDefaultMode
	}
}

func (c CookieConfig) set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Domain:   c.Domain,
		Expires:  expiresAt,
		MaxAge:   int(c.TTL / time.Second),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

func (c CookieConfig) clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		Domain:   c.Domain,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: c.SameSite,
	})
}

// tokenFromRequest returns the session cookie value or "".
func tokenFromRequest(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}
