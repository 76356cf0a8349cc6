package service

import (
	"context"
	"io"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

// --- Mock VehicleAPI ---

type mockVehicleAPI struct {
	listFn      func(ctx context.Context) ([]models.Vehicle, error)
	availableFn func(ctx context.Context) ([]models.Vehicle, error)
	getFn       func(ctx context.Context, id uint) (*models.Vehicle, error)
	searchFn    func(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error)
	createFn    func(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	updateFn    func(ctx context.Context, id uint, v *models.Vehicle) (*models.Vehicle, error)
	deleteFn    func(ctx context.Context, id uint) error
	imageFn     func(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error)
}

func (m *mockVehicleAPI) List(ctx context.Context) ([]models.Vehicle, error) { return m.listFn(ctx) }
func (m *mockVehicleAPI) ListAvailable(ctx context.Context) ([]models.Vehicle, error) {
	return m.availableFn(ctx)
}
func (m *mockVehicleAPI) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	return m.getFn(ctx, id)
}
func (m *mockVehicleAPI) Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error) {
	return m.searchFn(ctx, f)
}
func (m *mockVehicleAPI) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	return m.createFn(ctx, v)
}
func (m *mockVehicleAPI) Update(ctx context.Context, id uint, v *models.Vehicle) (*models.Vehicle, error) {
	return m.updateFn(ctx, id, v)
}
func (m *mockVehicleAPI) Delete(ctx context.Context, id uint) error { return m.deleteFn(ctx, id) }
func (m *mockVehicleAPI) UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error) {
	return m.imageFn(ctx, id, filename, content)
}

// --- Mock BookingAPI ---

type mockBookingAPI struct {
	createFn     func(ctx context.Context, req apiclient.CreateBookingRequest) (*models.Booking, error)
	mineFn       func(ctx context.Context) ([]models.Booking, error)
	getFn        func(ctx context.Context, id uint) (*models.Booking, error)
	updateFn     func(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error)
	listFn       func(ctx context.Context) ([]models.Booking, error)
	forVehicleFn func(ctx context.Context, vehicleID uint) ([]models.Booking, error)
	deleteFn     func(ctx context.Context, id uint) error
}

func (m *mockBookingAPI) Create(ctx context.Context, req apiclient.CreateBookingRequest) (*models.Booking, error) {
	return m.createFn(ctx, req)
}
func (m *mockBookingAPI) Mine(ctx context.Context) ([]models.Booking, error) { return m.mineFn(ctx) }
func (m *mockBookingAPI) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return m.getFn(ctx, id)
}
func (m *mockBookingAPI) UpdateStatus(ctx context.Context, id uint, status models.BookingStatus) (*models.Booking, error) {
	return m.updateFn(ctx, id, status)
}
func (m *mockBookingAPI) List(ctx context.Context) ([]models.Booking, error) { return m.listFn(ctx) }
func (m *mockBookingAPI) ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error) {
	return m.forVehicleFn(ctx, vehicleID)
}
func (m *mockBookingAPI) Delete(ctx context.Context, id uint) error { return m.deleteFn(ctx, id) }

// --- Mock PaymentAPI ---

type mockPaymentAPI struct {
	processFn    func(ctx context.Context, req apiclient.ProcessPaymentRequest) (*models.Payment, error)
	forBookingFn func(ctx context.Context, bookingID uint) (*models.Payment, error)
	listFn       func(ctx context.Context) ([]models.Payment, error)
	refundFn     func(ctx context.Context, id uint) (*models.Payment, error)
}

func (m *mockPaymentAPI) Process(ctx context.Context, req apiclient.ProcessPaymentRequest) (*models.Payment, error) {
	return m.processFn(ctx, req)
}
func (m *mockPaymentAPI) ForBooking(ctx context.Context, bookingID uint) (*models.Payment, error) {
	return m.forBookingFn(ctx, bookingID)
}
func (m *mockPaymentAPI) List(ctx context.Context) ([]models.Payment, error) { return m.listFn(ctx) }
func (m *mockPaymentAPI) Refund(ctx context.Context, id uint) (*models.Payment, error) {
	return m.refundFn(ctx, id)
}

// --- Mock UserAPI ---

type mockUserAPI struct {
	listFn        func(ctx context.Context) ([]models.User, error)
	getFn         func(ctx context.Context, id uint) (*models.User, error)
	updateFn      func(ctx context.Context, id uint, req apiclient.UpdateUserRequest) (*models.User, error)
	createAdminFn func(ctx context.Context, req apiclient.CreateAdminRequest) (*models.User, error)
	deleteFn      func(ctx context.Context, id uint) error
}

func (m *mockUserAPI) Me(context.Context) (*models.User, error)        { return nil, nil }
func (m *mockUserAPI) List(ctx context.Context) ([]models.User, error) { return m.listFn(ctx) }
func (m *mockUserAPI) Get(ctx context.Context, id uint) (*models.User, error) {
	return m.getFn(ctx, id)
}
func (m *mockUserAPI) Update(ctx context.Context, id uint, req apiclient.UpdateUserRequest) (*models.User, error) {
	return m.updateFn(ctx, id, req)
}
func (m *mockUserAPI) CreateAdmin(ctx context.Context, req apiclient.CreateAdminRequest) (*models.User, error) {
	return m.createAdminFn(ctx, req)
}
func (m *mockUserAPI) Delete(ctx context.Context, id uint) error { return m.deleteFn(ctx, id) }
func (m *mockUserAPI) UploadProfilePicture(context.Context, uint, string, io.Reader) (*models.User, error) {
	return nil, nil
}

// --- Recording publisher ---

type recordingPublisher struct {
	keys []string
}

func (p *recordingPublisher) Publish(routingKey string, _ any) error {
	p.keys = append(p.keys, routingKey)
	return nil
}
