package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
)

// Cookies names and scopes the browser's session cookie. The cookie only ever carries the
// opaque session id.
type Cookies struct {
	Name   string
	Secure bool
}

func (k Cookies) name() string {
	if k.Name == "" {
		return "storefront_session"
	}
	return k.Name
}

func (k Cookies) Read(c echo.Context) string {
	ck, err := c.Cookie(k.name())
	if err != nil {
		return ""
	}
	return ck.Value
}

// Set writes the cookie for s. Remembered sessions get a persistent cookie; the rest last
// until the browser closes.
func (k Cookies) Set(c echo.Context, s *session.Session) {
	ck := &http.Cookie{
		Name:     k.name(),
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Remember && !s.ExpiresAt.IsZero() {
		ck.Expires = s.ExpiresAt
		ck.MaxAge = int(time.Until(s.ExpiresAt).Seconds())
	}
	c.SetCookie(ck)
}

func (k Cookies) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     k.name(),
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   k.Secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
