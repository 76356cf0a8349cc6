package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/dto"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

const (
	msgSessionExpired = "Your session has expired. Please log in again."
	msgValidation     = "Please correct the highlighted fields."
	msgInternal       = "Something went wrong. Please try again."
)

// ErrorHandler renders every error as {"message": ...}. Field errors add "fields"; a missing
// or rejected credential clears the cookie and points the browser at the login page.
func ErrorHandler(log *zap.Logger, cookies Cookies) echo.HTTPErrorHandler {
	log = logger.OrNop(log)
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if fe, ok := validation.AsFieldErrors(err); ok {
			_ = c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{Message: msgValidation, Fields: fe})
			return
		}

		if errors.Is(err, ErrLoginRequired) || errors.Is(err, apiclient.ErrUnauthorized) {
			cookies.Clear(c)
			if wantsHTML(c) {
				_ = c.Redirect(http.StatusSeeOther, dto.LoginPath)
				return
			}
			_ = c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: msgSessionExpired, Redirect: dto.LoginPath})
			return
		}

		code := http.StatusInternalServerError
		msg := msgInternal
		var he *echo.HTTPError
		if errors.As(err, &he) {
			code = he.Code
			if m, ok := he.Message.(string); ok {
				msg = m
			} else {
				msg = http.StatusText(code)
			}
			if he.Internal != nil && code >= http.StatusInternalServerError {
				log.Warn("request failed",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Int("status", code),
					zap.Error(he.Internal),
				)
			}
		} else {
			log.Error("unhandled error",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, dto.ErrorResponse{Message: msg})
	}
}

func wantsHTML(c echo.Context) bool {
	accept := c.Request().Header.Get(echo.HeaderAccept)
	return strings.Contains(accept, echo.MIMETextHTML)
}
