package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

type localError struct {
	err  error
	code int
	msg  string
}

// Errors raised before or instead of a backend call.
var localErrors = []localError{
	{booking.ErrStartTooEarly, http.StatusUnprocessableEntity, "Start date must be tomorrow or later"},
	{booking.ErrEndBeforeStart, http.StatusUnprocessableEntity, "End date must be on or after the start date"},
	{booking.ErrMissingDates, http.StatusUnprocessableEntity, "Start and end dates are required"},
	{booking.ErrNegativePrice, http.StatusUnprocessableEntity, "Daily price must not be negative"},
	{booking.ErrTransitionNotAllowed, http.StatusConflict, "This booking can no longer be changed."},
	{booking.ErrNotPayable, http.StatusConflict, "This booking cannot be paid."},
	{booking.ErrNotRefundable, http.StatusConflict, "Only completed payments can be refunded."},
	{booking.ErrNotPermitted, http.StatusForbidden, "You are not allowed to perform this action."},
	{service.ErrVehicleUnavailable, http.StatusConflict, service.MsgVehicleUnavailable},
	{service.ErrConfirmationRequired, http.StatusPreconditionRequired, "Please confirm the cancellation."},
	{service.ErrPaymentNotFound, http.StatusNotFound, "Payment not found"},
	{service.ErrStatusUpdated, http.StatusBadGateway, service.MsgStatusUpdatedReload},
}

// backendError maps a service error to the HTTP answer. Field errors and credential
// failures pass through untouched so the error handler can render them.
func backendError(err error, fallback string) error {
	if err == nil {
		return nil
	}
	if _, ok := validation.AsFieldErrors(err); ok {
		return err
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		return err
	}
	for _, le := range localErrors {
		if errors.Is(err, le.err) {
			return echo.NewHTTPError(le.code, le.msg)
		}
	}

	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.StatusCode
		if code >= http.StatusInternalServerError || code < http.StatusBadRequest {
			code = http.StatusBadGateway
		}
		return echo.NewHTTPError(code, apiclient.UserMessage(err, fallback)).SetInternal(err)
	}

	var netErr *apiclient.NetworkError
	if errors.As(err, &netErr) {
		return echo.NewHTTPError(http.StatusBadGateway, apiclient.NetworkMessage).SetInternal(err)
	}

	return echo.NewHTTPError(http.StatusInternalServerError, fallback).SetInternal(err)
}

// statusOf is the code of an error already mapped by backendError.
func statusOf(err error) int {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func messageOf(err error) string {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if m, ok := he.Message.(string); ok {
			return m
		}
	}
	return err.Error()
}

func parseID(c echo.Context, name, what string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+what+" id")
	}
	return uint(id), nil
}

func viewerOf(s *session.Session) booking.Viewer {
	return booking.Viewer{UserID: s.UserID(), Admin: s.IsAdmin()}
}

func currentViewer(c echo.Context) booking.Viewer {
	return viewerOf(middleware.CurrentSession(c))
}

func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return nil
}
