package booking

import (
	"errors"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

var (
	ErrTransitionNotAllowed = errors.New("booking status transition is not allowed")
	ErrNotPermitted         = errors.New("you are not allowed to perform this action")
	ErrNotPayable           = errors.New("only pending bookings without a payment can be paid")
	ErrNotRefundable        = errors.New("only completed payments can be refunded")
)

// Viewer is whoever is looking at a booking.
type Viewer struct {
	UserID uint
	Admin  bool
}

// Actions lists which buttons the booking detail view may render.
type Actions struct {
	CanCancel   bool `json:"canCancel"`
	CanPay      bool `json:"canPay"`
	CanConfirm  bool `json:"canConfirm"`
	CanComplete bool `json:"canComplete"`
}

func AvailableActions(b *models.Booking, v Viewer, hasPayment bool) Actions {
	if b == nil {
		return Actions{}
	}
	return Actions{
		CanCancel:   CanTransition(b, models.BookingCancelled, v) == nil,
		CanPay:      canPay(b, hasPayment, v) == nil,
		CanConfirm:  CanTransition(b, models.BookingConfirmed, v) == nil,
		CanComplete: CanTransition(b, models.BookingCompleted, v) == nil,
	}
}

// CanTransition checks the client-side transition table:
//
//	PENDING   -> CONFIRMED  admin
//	PENDING   -> CANCELLED  owner or admin
//	CONFIRMED -> COMPLETED  admin
func CanTransition(b *models.Booking, to models.BookingStatus, v Viewer) error {
	if b == nil {
		return ErrTransitionNotAllowed
	}
	switch b.Status {
	case models.BookingPending:
		switch to {
		case models.BookingConfirmed:
			return requireAdmin(v)
		case models.BookingCancelled:
			if v.Admin || b.OwnedBy(v.UserID) {
				return nil
			}
			return ErrNotPermitted
		case models.BookingPending, models.BookingCompleted:
			return ErrTransitionNotAllowed
		}
	case models.BookingConfirmed:
		switch to {
		case models.BookingCompleted:
			return requireAdmin(v)
		case models.BookingPending, models.BookingConfirmed, models.BookingCancelled:
			return ErrTransitionNotAllowed
		}
	case models.BookingCancelled, models.BookingCompleted:
		return ErrTransitionNotAllowed
	}
	return ErrTransitionNotAllowed
}

// CanPay is the joint condition guarding the payment form: a PENDING booking with no
// payment, paid by its owner.
func CanPay(b *models.Booking, existing *models.Payment, v Viewer) error {
	return canPay(b, existing != nil, v)
}

func canPay(b *models.Booking, hasPayment bool, v Viewer) error {
	if b == nil || b.Status != models.BookingPending || hasPayment {
		return ErrNotPayable
	}
	if !b.OwnedBy(v.UserID) {
		return ErrNotPermitted
	}
	return nil
}

func CanRefund(p *models.Payment) error {
	if p == nil || !p.Status.Refundable() {
		return ErrNotRefundable
	}
	return nil
}

func requireAdmin(v Viewer) error {
	if !v.Admin {
		return ErrNotPermitted
	}
	return nil
}
