package service

import (
	"context"
	"io"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

// Dashboard is the data behind the admin console's summary cards and charts.
type Dashboard struct {
	Vehicles         VehicleCounts                `json:"vehicles"`
	Bookings         map[models.BookingStatus]int `json:"bookings"`
	BookingsTotal    int                          `json:"bookingsTotal"`
	Users            int                          `json:"users"`
	Revenue          float64                      `json:"revenue"`
	RevenueFormatted string                       `json:"revenueFormatted"`
}

type VehicleCounts struct {
	Total     int `json:"total"`
	Available int `json:"available"`
}

type AdminService interface {
	Dashboard(ctx context.Context) (*Dashboard, error)
	Users(ctx context.Context) ([]models.User, error)
	User(ctx context.Context, id uint) (*models.User, error)
	UpdateUser(ctx context.Context, id uint, form validation.ProfileForm) (*models.User, error)
	CreateAdmin(ctx context.Context, form validation.AdminUserForm) (*models.User, error)
	DeleteUser(ctx context.Context, id uint) error
	UploadUserPicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error)
}

type adminService struct {
	vehicles apiclient.VehicleAPI
	bookings apiclient.BookingAPI
	payments apiclient.PaymentAPI
	users    apiclient.UserAPI
}

func NewAdminService(vehicles apiclient.VehicleAPI, bookings apiclient.BookingAPI, payments apiclient.PaymentAPI, users apiclient.UserAPI) AdminService {
	return &adminService{vehicles: vehicles, bookings: bookings, payments: payments, users: users}
}

func (s *adminService) Dashboard(ctx context.Context) (*Dashboard, error) {
	vehicles, err := s.vehicles.List(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.List(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(vehicles, bookings, payments, users), nil
}

func summarize(vehicles []models.Vehicle, bookings []models.Booking, payments []models.Payment, users []models.User) *Dashboard {
	d := &Dashboard{
		Bookings: map[models.BookingStatus]int{
			models.BookingPending:   0,
			models.BookingConfirmed: 0,
			models.BookingCancelled: 0,
			models.BookingCompleted: 0,
		},
		BookingsTotal: len(bookings),
		Users:         len(users),
	}
	d.Vehicles.Total = len(vehicles)
	for _, v := range vehicles {
		if v.Available {
			d.Vehicles.Available++
		}
	}
	for _, b := range bookings {
		d.Bookings[b.Status]++
	}

	var revenue float64
	for _, p := range payments {
		if p.Status == models.PaymentCompleted {
			revenue += p.Amount
		}
	}
	d.Revenue = booking.RoundCents(revenue)
	d.RevenueFormatted = booking.FormatAmount(revenue)
	return d
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *adminService) User(ctx context.Context, id uint) (*models.User, error) {
	return s.users.Get(ctx, id)
}

func (s *adminService) UpdateUser(ctx context.Context, id uint, form validation.ProfileForm) (*models.User, error) {
	if errs := validation.Profile(form); len(errs) > 0 {
		return nil, errs
	}
	return s.users.Update(ctx, id, apiclient.UpdateUserRequest{
		Name:     form.Name,
		Email:    form.Email,
		Phone:    form.Phone,
		Password: form.Password,
	})
}

func (s *adminService) CreateAdmin(ctx context.Context, form validation.AdminUserForm) (*models.User, error) {
	if errs := validation.AdminUser(form); len(errs) > 0 {
		return nil, errs
	}
	return s.users.CreateAdmin(ctx, apiclient.CreateAdminRequest{
		Name:     form.Name,
		Email:    form.Email,
		Password: form.Password,
		Phone:    form.Phone,
	})
}

func (s *adminService) DeleteUser(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}

func (s *adminService) UploadUserPicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error) {
	return s.users.UploadProfilePicture(ctx, id, filename, content)
}
