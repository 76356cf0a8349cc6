package apiclient

import (
	"context"
	"net/url"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

// CreateBookingRequest is the body of POST /bookings. Dates go out as YYYY-MM-DD.
type CreateBookingRequest struct {
	VehicleID       uint        `json:"vehicleId"`
	StartDate       models.Date `json:"startDate"`
	EndDate         models.Date `json:"endDate"`
	PickupLocation  string      `json:"pickupLocation"`
	DropOffLocation string      `json:"dropOffLocation"`
}

type BookingAPI interface {
	Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error)
	Mine(ctx context.Context) ([]models.Booking, error)
	Get(ctx context.Context, id uint) (*models.Booking, error)
	UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error)
	List(ctx context.Context) ([]models.Booking, error)
	ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error)
	Delete(ctx context.Context, id uint) error
}

type bookingAPI struct {
	c *Client
}

func NewBookingAPI(c *Client) BookingAPI {
	return &bookingAPI{c: c}
}

func (a *bookingAPI) Create(ctx context.Context, req CreateBookingRequest) (*models.Booking, error) {
	var b models.Booking
	if err := a.c.post(ctx, "/bookings", "/bookings", req, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *bookingAPI) Mine(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := a.c.get(ctx, "/bookings/my-bookings", "/bookings/my-bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (a *bookingAPI) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var b models.Booking
	if err := a.c.get(ctx, "/bookings/:id", idPath("/bookings/%d", id), nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *bookingAPI) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	var b models.Booking
	q := url.Values{"status": []string{string(status)}}
	if err := a.c.patch(ctx, "/bookings/:id/status", idPath("/bookings/%d/status", id), q, nil, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (a *bookingAPI) List(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := a.c.get(ctx, "/bookings", "/bookings", nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (a *bookingAPI) ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := a.c.get(ctx, "/bookings/car/:id", idPath("/bookings/car/%d", vehicleID), nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (a *bookingAPI) Delete(ctx context.Context, id uint) error {
	return a.c.delete(ctx, "/bookings/:id", idPath("/bookings/%d", id), nil)
}
