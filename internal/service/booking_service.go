package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/events"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

var (
	ErrVehicleUnavailable   = errors.New("car is not available for booking")
	ErrConfirmationRequired = errors.New("cancellation must be confirmed")
	// ErrStatusUpdated means the PATCH went through but the booking could not be re-read.
	ErrStatusUpdated = errors.New("booking status updated but could not be reloaded")
)

const (
	MsgVehicleUnavailable  = "This car is not available for booking"
	MsgCreateBookingFailed = "Failed to create booking. Please try again."
	MsgCancelBookingFailed = "Failed to cancel booking. Please try again."
	MsgUpdateStatusFailed  = "Failed to update booking status. Please try again."
	MsgLoadBookingFailed   = "Failed to load booking details."
	MsgStatusUpdatedReload = "Booking status updated. Please reload the page to see the latest details."
)

// BookingFormModel is what the booking form needs before it renders.
type BookingFormModel struct {
	Vehicle       *models.Vehicle `json:"vehicle"`
	EarliestStart models.Date     `json:"earliestStart"`
	MinEnd        models.Date     `json:"minEnd"`
}

type BookingDetail struct {
	Booking *models.Booking `json:"booking"`
	Payment *models.Payment `json:"payment"`
	Actions booking.Actions `json:"actions"`
}

type BookingService interface {
	// Form returns ErrVehicleUnavailable (with the vehicle still filled in) when the car
	// cannot be booked.
	Form(ctx context.Context, vehicleID uint) (*BookingFormModel, error)
	Quote(ctx context.Context, vehicleID uint, start, end models.Date) (*booking.Quote, error)
	Create(ctx context.Context, v booking.Viewer, form validation.BookingForm) (*models.Booking, error)
	Detail(ctx context.Context, v booking.Viewer, id uint) (*BookingDetail, error)
	Mine(ctx context.Context) ([]models.Booking, error)
	Cancel(ctx context.Context, v booking.Viewer, id uint) (*models.Booking, error)
	ChangeStatus(ctx context.Context, v booking.Viewer, id uint, to models.BookingStatus) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error)
	Delete(ctx context.Context, v booking.Viewer, id uint) error
}

type bookingService struct {
	vehicles apiclient.VehicleAPI
	bookings apiclient.BookingAPI
	payments apiclient.PaymentAPI
	events   *events.Emitter
	now      func() time.Time
	logger   *zap.Logger
}

// NewBookingService wires the booking workflow. now must return the current time in the
// rental timezone; it decides what "tomorrow" is.
func NewBookingService(
	vehicles apiclient.VehicleAPI,
	bookings apiclient.BookingAPI,
	payments apiclient.PaymentAPI,
	emitter *events.Emitter,
	now func() time.Time,
	log *zap.Logger,
) BookingService {
	if now == nil {
		now = time.Now
	}
	return &bookingService{
		vehicles: vehicles,
		bookings: bookings,
		payments: payments,
		events:   emitter,
		now:      now,
		logger:   logger.OrNop(log).Named("booking"),
	}
}

func (s *bookingService) Form(ctx context.Context, vehicleID uint) (*BookingFormModel, error) {
	vehicle, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	earliest := booking.EarliestStart(s.now())
	form := &BookingFormModel{Vehicle: vehicle, EarliestStart: earliest, MinEnd: earliest}
	if !vehicle.Available {
		return form, ErrVehicleUnavailable
	}
	return form, nil
}

func (s *bookingService) Quote(ctx context.Context, vehicleID uint, start, end models.Date) (*booking.Quote, error) {
	if err := booking.ValidateRange(start, end, s.now()); err != nil {
		return nil, err
	}
	vehicle, err := s.vehicles.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	q, err := booking.NewQuote(vehicle.DailyPrice, start, end)
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (s *bookingService) Create(ctx context.Context, v booking.Viewer, form validation.BookingForm) (*models.Booking, error) {
	// 1. Schema and date range, before any network call
	if errs := validation.Booking(form, s.now()); len(errs) > 0 {
		return nil, errs
	}

	// 2. The selected car must still report itself available
	vehicle, err := s.vehicles.Get(ctx, form.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.Available {
		return nil, ErrVehicleUnavailable
	}

	// 3. Submit; nothing is kept locally if this fails
	start, end := form.Dates()
	created, err := s.bookings.Create(ctx, apiclient.CreateBookingRequest{
		VehicleID:       form.VehicleID,
		StartDate:       start,
		EndDate:         end,
		PickupLocation:  form.PickupLocation,
		DropOffLocation: form.DropOffLocation,
	})
	if err != nil {
		s.logger.Info("booking rejected", zap.Uint("vehicle_id", form.VehicleID), zap.Error(err))
		return nil, err
	}

	s.events.Emit(events.BookingCreated, v.UserID, map[string]any{
		"bookingId":  created.ID,
		"vehicleId":  form.VehicleID,
		"startDate":  start,
		"endDate":    end,
		"totalPrice": created.TotalPrice,
	})
	return created, nil
}

func (s *bookingService) Detail(ctx context.Context, v booking.Viewer, id uint) (*BookingDetail, error) {
	b, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payment, err := s.payments.ForBooking(ctx, id)
	hasPayment := payment != nil
	if err != nil {
		// Unknown payment state: hide the pay action rather than risk a double charge.
		s.logger.Warn("load payment for booking", zap.Uint("booking_id", id), zap.Error(err))
		hasPayment = true
	}

	return &BookingDetail{
		Booking: b,
		Payment: payment,
		Actions: booking.AvailableActions(b, v, hasPayment),
	}, nil
}

func (s *bookingService) Mine(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.Mine(ctx)
}

func (s *bookingService) Cancel(ctx context.Context, v booking.Viewer, id uint) (*models.Booking, error) {
	return s.transition(ctx, v, id, models.BookingCancelled)
}

func (s *bookingService) ChangeStatus(ctx context.Context, v booking.Viewer, id uint, to models.BookingStatus) (*models.Booking, error) {
	return s.transition(ctx, v, id, to)
}

// transition checks the guard against a fresh read, sends the PATCH, then re-reads the
// booking so the caller only ever sees the backend's version of the result.
func (s *bookingService) transition(ctx context.Context, v booking.Viewer, id uint, to models.BookingStatus) (*models.Booking, error) {
	current, err := s.bookings.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := booking.CanTransition(current, to, v); err != nil {
		return nil, err
	}

	if _, err := s.bookings.UpdateStatus(ctx, id, to); err != nil {
		s.logger.Info("status change rejected", zap.Uint("booking_id", id), zap.String("to", string(to)), zap.Error(err))
		return nil, err
	}

	reconciled, err := s.bookings.Get(ctx, id)
	if err != nil {
		s.logger.Warn("reload after status change", zap.Uint("booking_id", id), zap.Error(err))
		s.events.Emit(events.BookingStatusChanged, v.UserID, map[string]any{
			"bookingId": id,
			"from":      current.Status,
			"to":        to,
		})
		return nil, fmt.Errorf("reload booking %d: %w: %w", id, ErrStatusUpdated, err)
	}

	s.events.Emit(events.BookingStatusChanged, v.UserID, map[string]any{
		"bookingId": id,
		"from":      current.Status,
		"to":        reconciled.Status,
	})
	return reconciled, nil
}

func (s *bookingService) List(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.List(ctx)
}

func (s *bookingService) ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error) {
	return s.bookings.ForVehicle(ctx, vehicleID)
}

func (s *bookingService) Delete(ctx context.Context, v booking.Viewer, id uint) error {
	if !v.Admin {
		return booking.ErrNotPermitted
	}
	if err := s.bookings.Delete(ctx, id); err != nil {
		return err
	}
	s.events.Emit(events.BookingDeleted, v.UserID, map[string]any{"bookingId": id})
	return nil
}
