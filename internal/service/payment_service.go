package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/events"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

var ErrPaymentNotFound = errors.New("payment not found")

const (
	MsgPaymentFailed = "Payment failed. Please try again."
	MsgRefundFailed  = "Failed to refund payment. Please try again."
)

type PaymentFormModel struct {
	Booking         *models.Booking `json:"booking"`
	Amount          float64         `json:"amount"`
	AmountFormatted string          `json:"amountFormatted"`
}

type PaymentService interface {
	// Form returns booking.ErrNotPayable unless the booking is PENDING with no payment, and
	// booking.ErrNotPermitted when v does not own it.
	Form(ctx context.Context, v booking.Viewer, bookingID uint) (*PaymentFormModel, error)
	Pay(ctx context.Context, v booking.Viewer, bookingID uint, form validation.PaymentForm) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	Refund(ctx context.Context, v booking.Viewer, paymentID uint) (*models.Payment, error)
}

type paymentService struct {
	bookings apiclient.BookingAPI
	payments apiclient.PaymentAPI
	events   *events.Emitter
	logger   *zap.Logger
}

func NewPaymentService(bookings apiclient.BookingAPI, payments apiclient.PaymentAPI, emitter *events.Emitter, log *zap.Logger) PaymentService {
	return &paymentService{
		bookings: bookings,
		payments: payments,
		events:   emitter,
		logger:   logger.OrNop(log).Named("payment"),
	}
}

// payable reads the booking and its payment fresh and applies the joint guard.
func (s *paymentService) payable(ctx context.Context, v booking.Viewer, bookingID uint) (*models.Booking, error) {
	b, err := s.bookings.Get(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	existing, err := s.payments.ForBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := booking.CanPay(b, existing, v); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *paymentService) Form(ctx context.Context, v booking.Viewer, bookingID uint) (*PaymentFormModel, error) {
	b, err := s.payable(ctx, v, bookingID)
	if err != nil {
		return nil, err
	}
	return &PaymentFormModel{
		Booking:         b,
		Amount:          booking.RoundCents(b.TotalPrice),
		AmountFormatted: booking.FormatAmount(b.TotalPrice),
	}, nil
}

func (s *paymentService) Pay(ctx context.Context, v booking.Viewer, bookingID uint, form validation.PaymentForm) (*models.Payment, error) {
	// 1. Card fields are checked before anything is sent
	if errs := validation.Payment(form); len(errs) > 0 {
		return nil, errs
	}
	method, err := models.ParsePaymentMethod(form.Method)
	if err != nil {
		return nil, validation.FieldErrors{"method": err.Error()}
	}

	// 2. Re-check the guard against the backend's current view
	b, err := s.payable(ctx, v, bookingID)
	if err != nil {
		return nil, err
	}

	// 3. Settlement happens in the backend
	payment, err := s.payments.Process(ctx, apiclient.ProcessPaymentRequest{
		BookingID:      bookingID,
		Amount:         booking.RoundCents(b.TotalPrice),
		PaymentMethod:  method,
		CardNumber:     form.CardNumber,
		CardHolderName: form.CardHolder,
		ExpiryDate:     form.Expiry,
		CVV:            form.CVV,
	})
	if err != nil {
		s.logger.Info("payment rejected", zap.Uint("booking_id", bookingID), zap.Error(err))
		return nil, err
	}

	s.events.Emit(events.PaymentProcessed, v.UserID, map[string]any{
		"paymentId": payment.ID,
		"bookingId": bookingID,
		"amount":    payment.Amount,
		"status":    payment.Status,
	})
	return payment, nil
}

func (s *paymentService) List(ctx context.Context) ([]models.Payment, error) {
	return s.payments.List(ctx)
}

func (s *paymentService) Refund(ctx context.Context, v booking.Viewer, paymentID uint) (*models.Payment, error) {
	if !v.Admin {
		return nil, booking.ErrNotPermitted
	}

	all, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	var current *models.Payment
	for i := range all {
		if all[i].ID == paymentID {
			current = &all[i]
			break
		}
	}
	if current == nil {
		return nil, ErrPaymentNotFound
	}
	if err := booking.CanRefund(current); err != nil {
		return nil, err
	}

	refunded, err := s.payments.Refund(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	s.events.Emit(events.PaymentRefunded, v.UserID, map[string]any{
		"paymentId": paymentID,
		"bookingId": refunded.BookingID,
		"amount":    refunded.Amount,
	})
	return refunded, nil
}
