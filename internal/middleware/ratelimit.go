package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const msgTooManyAttempts = "Too many login attempts. Please wait a minute and try again."

// LoginRateLimit allows perMinute login attempts per client IP, refilled evenly.
func LoginRateLimit(perMinute int) echo.MiddlewareFunc {
	store := echoMw.NewRateLimiterMemoryStoreWithConfig(echoMw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return echoMw.RateLimiterWithConfig(echoMw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "Unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, msgTooManyAttempts)
		},
	})
}
