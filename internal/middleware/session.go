package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
)

const sessionKey = "session"

// ErrLoginRequired is returned by RequireAuth; the error handler turns it into a redirect.
var ErrLoginRequired = errors.New("login required")

// Session loads the browser's cached session on every request and puts its id and bearer
// token on the request context, where the API client and the 401 hook pick them up.
func Session(m session.Manager, cookies Cookies) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := cookies.Read(c)
			req := c.Request()
			ctx := req.Context()

			s := m.Load(ctx, id)
			if id != "" {
				ctx = session.WithID(ctx, id)
			}
			if s.IsAuthenticated() {
				ctx = apiclient.WithToken(ctx, s.Token)
			}

			c.SetRequest(req.WithContext(ctx))
			SetSession(c, s)
			return next(c)
		}
	}
}

func SetSession(c echo.Context, s *session.Session) {
	c.Set(sessionKey, s)
}

// CurrentSession never returns nil.
func CurrentSession(c echo.Context) *session.Session {
	if s, ok := c.Get(sessionKey).(*session.Session); ok && s != nil {
		return s
	}
	return session.Anonymous()
}

func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentSession(c).IsAuthenticated() {
				return ErrLoginRequired
			}
			return next(c)
		}
	}
}

// RequireAdmin sends anonymous visitors to login and rejects signed-in non-admins.
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := CurrentSession(c)
			if !s.IsAuthenticated() {
				return ErrLoginRequired
			}
			if !s.IsAdmin() {
				return echo.NewHTTPError(http.StatusForbidden, "Access denied. Administrator privileges required.")
			}
			return next(c)
		}
	}
}
