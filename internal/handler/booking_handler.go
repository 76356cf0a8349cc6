package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/dto"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

const (
	msgLoadBookingsFailed = "Failed to load bookings. Please try again."
	msgQuoteFailed        = "Could not calculate the price."
	msgCorrectFields      = "Please correct the highlighted fields."
)

type cancelRequest struct {
	Confirm bool `json:"confirm"`
}

// BookingHandler serves the customer side of bookings and payments.
type BookingHandler struct {
	bookings service.BookingService
	payments service.PaymentService
}

func NewBookingHandler(bookings service.BookingService, payments service.PaymentService) *BookingHandler {
	return &BookingHandler{bookings: bookings, payments: payments}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	auth := middleware.RequireAuth()

	g.GET("/cars/:id/quote", h.Quote)
	g.GET("/cars/:id/booking-form", h.Form, auth)
	g.GET("/my-bookings", h.Mine, auth)

	bookings := g.Group("/bookings", auth)
	bookings.POST("", h.Create)
	bookings.GET("/:id", h.Get)
	bookings.POST("/:id/cancel", h.Cancel)
	bookings.GET("/:id/payment-form", h.PaymentForm)
	bookings.POST("/:id/payments", h.Pay)
}

// Form answers 409 with the blocking state when the car cannot be booked.
func (h *BookingHandler) Form(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	form, err := h.bookings.Form(c.Request().Context(), id)
	if errors.Is(err, service.ErrVehicleUnavailable) {
		return c.JSON(http.StatusConflict, blocked(id))
	}
	if err != nil {
		return backendError(err, msgLoadCarFailed)
	}
	return c.JSON(http.StatusOK, form)
}

func (h *BookingHandler) Quote(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}

	errs := validation.FieldErrors{}
	start, err := models.ParseDate(c.QueryParam("start"))
	if err != nil {
		errs.Add("start", "Start date must be a date in YYYY-MM-DD format")
	}
	end, err := models.ParseDate(c.QueryParam("end"))
	if err != nil {
		errs.Add("end", "End date must be a date in YYYY-MM-DD format")
	}
	if err := errs.Err(); err != nil {
		return err
	}

	q, err := h.bookings.Quote(c.Request().Context(), id, start, end)
	if err != nil {
		return backendError(err, msgQuoteFailed)
	}
	return c.JSON(http.StatusOK, q)
}

func (h *BookingHandler) Create(c echo.Context) error {
	var form validation.BookingForm
	if err := bind(c, &form); err != nil {
		return err
	}

	created, err := h.bookings.Create(c.Request().Context(), currentViewer(c), form)
	if errors.Is(err, service.ErrVehicleUnavailable) {
		return c.JSON(http.StatusConflict, blocked(form.VehicleID))
	}
	if err != nil {
		return backendError(err, service.MsgCreateBookingFailed)
	}
	return c.JSON(http.StatusCreated, dto.BookingCreatedResponse{
		Booking:  created,
		Redirect: dto.BookingPath(created.ID),
	})
}

func (h *BookingHandler) Mine(c echo.Context) error {
	bookings, err := h.bookings.Mine(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadBookingsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(bookings))
}

func (h *BookingHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	detail, err := h.bookings.Detail(c.Request().Context(), currentViewer(c), id)
	if err != nil {
		return backendError(err, service.MsgLoadBookingFailed)
	}
	return c.JSON(http.StatusOK, detail)
}

// Cancel needs an explicit {"confirm": true}; anything else is refused before the backend
// is contacted.
func (h *BookingHandler) Cancel(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	var req cancelRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	if !req.Confirm {
		return backendError(service.ErrConfirmationRequired, service.MsgCancelBookingFailed)
	}

	b, err := h.bookings.Cancel(c.Request().Context(), currentViewer(c), id)
	if err != nil {
		return backendError(err, service.MsgCancelBookingFailed)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) PaymentForm(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	form, err := h.payments.Form(c.Request().Context(), currentViewer(c), id)
	if err != nil {
		return backendError(err, service.MsgLoadBookingFailed)
	}
	return c.JSON(http.StatusOK, form)
}

// Pay echoes the submitted card details back, minus the CVV, on every failure so the form
// can be refilled.
func (h *BookingHandler) Pay(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	var form validation.PaymentForm
	if err := bind(c, &form); err != nil {
		return err
	}

	payment, err := h.payments.Pay(c.Request().Context(), currentViewer(c), id, form)
	if err != nil {
		mapped := backendError(err, service.MsgPaymentFailed)
		if errors.Is(mapped, apiclient.ErrUnauthorized) {
			return mapped
		}
		if fe, ok := validation.AsFieldErrors(mapped); ok {
			return c.JSON(http.StatusUnprocessableEntity, dto.ErrorResponse{
				Message: msgCorrectFields,
				Fields:  fe,
				Form:    form.Redacted(),
			})
		}
		return c.JSON(statusOf(mapped), dto.ErrorResponse{Message: messageOf(mapped), Form: form.Redacted()})
	}

	return c.JSON(http.StatusCreated, dto.PaymentResponse{Payment: payment, Redirect: dto.BookingPath(id)})
}

func blocked(vehicleID uint) dto.BlockedResponse {
	return dto.BlockedResponse{
		Blocked: true,
		Message: service.MsgVehicleUnavailable,
		BackURL: dto.CarPath(vehicleID),
	}
}
