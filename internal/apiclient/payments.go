package apiclient

import (
	"context"
	"errors"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

type ProcessPaymentRequest struct {
	BookingID      uint                 `json:"bookingId"`
	Amount         float64              `json:"amount"`
	PaymentMethod  models.PaymentMethod `json:"paymentMethod"`
	CardNumber     string               `json:"cardNumber"`
	CardHolderName string               `json:"cardHolderName"`
	ExpiryDate     string               `json:"expiryDate"`
	CVV            string               `json:"cvv"`
}

type PaymentAPI interface {
	Process(ctx context.Context, req ProcessPaymentRequest) (*models.Payment, error)
	// ForBooking returns (nil, nil) when the booking has no payment yet.
	ForBooking(ctx context.Context, bookingID uint) (*models.Payment, error)
	List(ctx context.Context) ([]models.Payment, error)
	Refund(ctx context.Context, id uint) (*models.Payment, error)
}

type paymentAPI struct {
	c *Client
}

func NewPaymentAPI(c *Client) PaymentAPI {
	return &paymentAPI{c: c}
}

func (a *paymentAPI) Process(ctx context.Context, req ProcessPaymentRequest) (*models.Payment, error) {
	var p models.Payment
	if err := a.c.post(ctx, "/payments/process", "/payments/process", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (a *paymentAPI) ForBooking(ctx context.Context, bookingID uint) (*models.Payment, error) {
	var p models.Payment
	err := a.c.get(ctx, "/payments/booking/:bookingId", idPath("/payments/booking/%d", bookingID), nil, &p)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (a *paymentAPI) List(ctx context.Context) ([]models.Payment, error) {
	var payments []models.Payment
	if err := a.c.get(ctx, "/payments", "/payments", nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (a *paymentAPI) Refund(ctx context.Context, id uint) (*models.Payment, error) {
	var p models.Payment
	if err := a.c.post(ctx, "/payments/:id/refund", idPath("/payments/%d/refund", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
