package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

var errNotMocked = errors.New("not mocked")

// --- Mock BookingService ---

type mockBookingService struct {
	formFn         func(ctx context.Context, vehicleID uint) (*service.BookingFormModel, error)
	quoteFn        func(ctx context.Context, vehicleID uint, start, end models.Date) (*booking.Quote, error)
	createFn       func(ctx context.Context, v booking.Viewer, form validation.BookingForm) (*models.Booking, error)
	detailFn       func(ctx context.Context, v booking.Viewer, id uint) (*service.BookingDetail, error)
	mineFn         func(ctx context.Context) ([]models.Booking, error)
	cancelFn       func(ctx context.Context, v booking.Viewer, id uint) (*models.Booking, error)
	changeStatusFn func(ctx context.Context, v booking.Viewer, id uint, to models.BookingStatus) (*models.Booking, error)
	listFn         func(ctx context.Context) ([]models.Booking, error)
	forVehicleFn   func(ctx context.Context, vehicleID uint) ([]models.Booking, error)
	deleteFn       func(ctx context.Context, v booking.Viewer, id uint) error
}

func (m *mockBookingService) Form(ctx context.Context, vehicleID uint) (*service.BookingFormModel, error) {
	return m.formFn(ctx, vehicleID)
}
func (m *mockBookingService) Quote(ctx context.Context, vehicleID uint, start, end models.Date) (*booking.Quote, error) {
	return m.quoteFn(ctx, vehicleID, start, end)
}
func (m *mockBookingService) Create(ctx context.Context, v booking.Viewer, form validation.BookingForm) (*models.Booking, error) {
	return m.createFn(ctx, v, form)
}
func (m *mockBookingService) Detail(ctx context.Context, v booking.Viewer, id uint) (*service.BookingDetail, error) {
	return m.detailFn(ctx, v, id)
}
func (m *mockBookingService) Mine(ctx context.Context) ([]models.Booking, error) {
	return m.mineFn(ctx)
}
func (m *mockBookingService) Cancel(ctx context.Context, v booking.Viewer, id uint) (*models.Booking, error) {
	return m.cancelFn(ctx, v, id)
}
func (m *mockBookingService) ChangeStatus(ctx context.Context, v booking.Viewer, id uint, to models.BookingStatus) (*models.Booking, error) {
	return m.changeStatusFn(ctx, v, id, to)
}
func (m *mockBookingService) List(ctx context.Context) ([]models.Booking, error) {
	return m.listFn(ctx)
}
func (m *mockBookingService) ForVehicle(ctx context.Context, vehicleID uint) ([]models.Booking, error) {
	return m.forVehicleFn(ctx, vehicleID)
}
func (m *mockBookingService) Delete(ctx context.Context, v booking.Viewer, id uint) error {
	return m.deleteFn(ctx, v, id)
}

// --- Mock PaymentService ---

type mockPaymentService struct {
	formFn   func(ctx context.Context, v booking.Viewer, bookingID uint) (*service.PaymentFormModel, error)
	payFn    func(ctx context.Context, v booking.Viewer, bookingID uint, form validation.PaymentForm) (*models.Payment, error)
	listFn   func(ctx context.Context) ([]models.Payment, error)
	refundFn func(ctx context.Context, v booking.Viewer, paymentID uint) (*models.Payment, error)
}

func (m *mockPaymentService) Form(ctx context.Context, v booking.Viewer, bookingID uint) (*service.PaymentFormModel, error) {
	return m.formFn(ctx, v, bookingID)
}
func (m *mockPaymentService) Pay(ctx context.Context, v booking.Viewer, bookingID uint, form validation.PaymentForm) (*models.Payment, error) {
	return m.payFn(ctx, v, bookingID, form)
}
func (m *mockPaymentService) List(ctx context.Context) ([]models.Payment, error) {
	return m.listFn(ctx)
}
func (m *mockPaymentService) Refund(ctx context.Context, v booking.Viewer, paymentID uint) (*models.Payment, error) {
	return m.refundFn(ctx, v, paymentID)
}

// --- Mock VehicleService ---

type mockVehicleService struct {
	listFn      func(ctx context.Context) ([]models.Vehicle, error)
	availableFn func(ctx context.Context) ([]models.Vehicle, error)
	searchFn    func(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error)
	detailFn    func(ctx context.Context, id uint) (*service.VehicleDetail, error)
	createFn    func(ctx context.Context, form validation.VehicleForm) (*models.Vehicle, error)
	updateFn    func(ctx context.Context, id uint, form validation.VehicleForm) (*models.Vehicle, error)
	deleteFn    func(ctx context.Context, id uint) error
	uploadFn    func(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error)
}

func (m *mockVehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	return m.listFn(ctx)
}
func (m *mockVehicleService) Available(ctx context.Context) ([]models.Vehicle, error) {
	return m.availableFn(ctx)
}
func (m *mockVehicleService) Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error) {
	return m.searchFn(ctx, f)
}
func (m *mockVehicleService) Detail(ctx context.Context, id uint) (*service.VehicleDetail, error) {
	return m.detailFn(ctx, id)
}
func (m *mockVehicleService) Create(ctx context.Context, form validation.VehicleForm) (*models.Vehicle, error) {
	return m.createFn(ctx, form)
}
func (m *mockVehicleService) Update(ctx context.Context, id uint, form validation.VehicleForm) (*models.Vehicle, error) {
	return m.updateFn(ctx, id, form)
}
func (m *mockVehicleService) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}
func (m *mockVehicleService) UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error) {
	return m.uploadFn(ctx, id, filename, content)
}

// --- Mock AdminService ---

type mockAdminService struct {
	dashboardFn   func(ctx context.Context) (*service.Dashboard, error)
	usersFn       func(ctx context.Context) ([]models.User, error)
	userFn        func(ctx context.Context, id uint) (*models.User, error)
	updateUserFn  func(ctx context.Context, id uint, form validation.ProfileForm) (*models.User, error)
	createAdminFn func(ctx context.Context, form validation.AdminUserForm) (*models.User, error)
	deleteUserFn  func(ctx context.Context, id uint) error
	uploadFn      func(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error)
}

func (m *mockAdminService) Dashboard(ctx context.Context) (*service.Dashboard, error) {
	return m.dashboardFn(ctx)
}
func (m *mockAdminService) Users(ctx context.Context) ([]models.User, error) {
	return m.usersFn(ctx)
}
func (m *mockAdminService) User(ctx context.Context, id uint) (*models.User, error) {
	return m.userFn(ctx, id)
}
func (m *mockAdminService) UpdateUser(ctx context.Context, id uint, form validation.ProfileForm) (*models.User, error) {
	return m.updateUserFn(ctx, id, form)
}
func (m *mockAdminService) CreateAdmin(ctx context.Context, form validation.AdminUserForm) (*models.User, error) {
	return m.createAdminFn(ctx, form)
}
func (m *mockAdminService) DeleteUser(ctx context.Context, id uint) error {
	return m.deleteUserFn(ctx, id)
}
func (m *mockAdminService) UploadUserPicture(ctx context.Context, id uint, filename string, content io.Reader) (*models.User, error) {
	return m.uploadFn(ctx, id, filename, content)
}

// --- Mock session.Manager ---

type mockManager struct {
	loadFn          func(ctx context.Context, id string) *session.Session
	restoreFn       func(ctx context.Context, id string) *session.Session
	loginFn         func(ctx context.Context, email, password string, remember bool) session.LoginResult
	registerFn      func(ctx context.Context, req apiclient.SignupRequest, remember bool) session.LoginResult
	refreshFn       func(ctx context.Context, s *session.Session) (*session.Session, error)
	refreshTokenFn  func(ctx context.Context, s *session.Session) (*session.Session, error)
	updateProfileFn func(ctx context.Context, s *session.Session, req apiclient.UpdateUserRequest) (*session.Session, error)
	uploadFn        func(ctx context.Context, s *session.Session, filename string, content io.Reader) (*session.Session, error)
	resetRequestFn  func(ctx context.Context, email string) (string, error)
	resetFn         func(ctx context.Context, token, newPassword string) (string, error)
	logoutFn        func(ctx context.Context, s *session.Session) error
}

func (m *mockManager) Load(ctx context.Context, id string) *session.Session {
	return m.loadFn(ctx, id)
}
func (m *mockManager) Restore(ctx context.Context, id string) *session.Session {
	return m.restoreFn(ctx, id)
}
func (m *mockManager) Login(ctx context.Context, email, password string, remember bool) session.LoginResult {
	return m.loginFn(ctx, email, password, remember)
}
func (m *mockManager) Register(ctx context.Context, req apiclient.SignupRequest, remember bool) session.LoginResult {
	return m.registerFn(ctx, req, remember)
}
func (m *mockManager) Refresh(ctx context.Context, s *session.Session) (*session.Session, error) {
	return m.refreshFn(ctx, s)
}
func (m *mockManager) RefreshToken(ctx context.Context, s *session.Session) (*session.Session, error) {
	return m.refreshTokenFn(ctx, s)
}
func (m *mockManager) UpdateProfile(ctx context.Context, s *session.Session, req apiclient.UpdateUserRequest) (*session.Session, error) {
	return m.updateProfileFn(ctx, s, req)
}
func (m *mockManager) UploadProfilePicture(ctx context.Context, s *session.Session, filename string, content io.Reader) (*session.Session, error) {
	return m.uploadFn(ctx, s, filename, content)
}
func (m *mockManager) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return m.resetRequestFn(ctx, email)
}
func (m *mockManager) ResetPassword(ctx context.Context, token, newPassword string) (string, error) {
	return m.resetFn(ctx, token, newPassword)
}
func (m *mockManager) Logout(ctx context.Context, s *session.Session) error {
	return m.logoutFn(ctx, s)
}
func (m *mockManager) Unauthorized(ctx context.Context)     {}
func (m *mockManager) Purge(ctx context.Context, id string) {}
func (m *mockManager) RevokeUser(ctx context.Context, userID uint) (int, error) {
	return 0, errNotMocked
}
func (m *mockManager) PurgeExpired(ctx context.Context) (int, error) {
	return 0, errNotMocked
}

// --- Helpers ---

func newCtx(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validation.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withParam(c echo.Context, name, value string) {
	c.SetParamNames(name)
	c.SetParamValues(value)
}

func signedIn(c echo.Context, id uint, role models.Role) *session.Session {
	s := &session.Session{
		ID:    "sid-1",
		State: session.Authenticated,
		Token: "tok",
		User:  &models.User{ID: id, Name: "Ada", Email: "ada@example.com", Role: role},
	}
	middleware.SetSession(c, s)
	return s
}

// httpCode returns the status of a handler error the way the error handler would see it.
func httpCode(t *testing.T, err error) int {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	return he.Code
}

func httpMessage(t *testing.T, err error) string {
	t.Helper()
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	msg, _ := he.Message.(string)
	return msg
}

func backendErr(status int, msg string) error {
	return &apiclient.APIError{StatusCode: status, Message: msg, Method: http.MethodGet, Path: "/x"}
}
