package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/dto"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/middleware"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

const (
	msgDashboardFailed  = "Failed to load dashboard data."
	msgSaveCarFailed    = "Failed to save car. Please try again."
	msgDeleteCarFailed  = "Failed to delete car. Please try again."
	msgImageFailed      = "Failed to upload image. Please try again."
	msgDeleteBookFailed = "Failed to delete booking. Please try again."
	msgLoadUsersFailed  = "Failed to load users. Please try again."
	msgSaveUserFailed   = "Failed to save user. Please try again."
	msgDeleteUserFailed = "Failed to delete user. Please try again."
	msgLoadPayFailed    = "Failed to load payments. Please try again."
	msgDeleted          = "Deleted successfully."
)

// AdminHandler serves the administration console. Every route requires an admin session.
type AdminHandler struct {
	admin    service.AdminService
	vehicles service.VehicleService
	bookings service.BookingService
	payments service.PaymentService
}

func NewAdminHandler(admin service.AdminService, vehicles service.VehicleService, bookings service.BookingService, payments service.PaymentService) *AdminHandler {
	return &AdminHandler{admin: admin, vehicles: vehicles, bookings: bookings, payments: payments}
}

func (h *AdminHandler) RegisterRoutes(g *echo.Group) {
	admin := g.Group("/admin", middleware.RequireAdmin())
	admin.GET("/dashboard", h.Dashboard)

	admin.GET("/cars", h.ListCars)
	admin.POST("/cars", h.CreateCar)
	admin.PUT("/cars/:id", h.UpdateCar)
	admin.DELETE("/cars/:id", h.DeleteCar)
	admin.POST("/cars/:id/image", h.UploadCarImage)
	admin.GET("/cars/:id/bookings", h.CarBookings)

	admin.GET("/bookings", h.ListBookings)
	admin.DELETE("/bookings/:id", h.DeleteBooking)
	admin.POST("/bookings/:id/status", h.ChangeStatus)

	admin.GET("/users", h.ListUsers)
	admin.POST("/users", h.CreateAdmin)
	admin.GET("/users/:id", h.GetUser)
	admin.PATCH("/users/:id", h.UpdateUser)
	admin.DELETE("/users/:id", h.DeleteUser)
	admin.POST("/users/:id/picture", h.UploadUserPicture)

	admin.GET("/payments", h.ListPayments)
	admin.POST("/payments/:id/refund", h.Refund)
}

func (h *AdminHandler) Dashboard(c echo.Context) error {
	d, err := h.admin.Dashboard(c.Request().Context())
	if err != nil {
		return backendError(err, msgDashboardFailed)
	}
	return c.JSON(http.StatusOK, d)
}

func (h *AdminHandler) ListCars(c echo.Context) error {
	vehicles, err := h.vehicles.List(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadCarsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(vehicles))
}

func (h *AdminHandler) CreateCar(c echo.Context) error {
	var form validation.VehicleForm
	if err := bind(c, &form); err != nil {
		return err
	}
	v, err := h.vehicles.Create(c.Request().Context(), form)
	if err != nil {
		return backendError(err, msgSaveCarFailed)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *AdminHandler) UpdateCar(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}
	var form validation.VehicleForm
	if err := bind(c, &form); err != nil {
		return err
	}
	v, err := h.vehicles.Update(c.Request().Context(), id, form)
	if err != nil {
		return backendError(err, msgSaveCarFailed)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *AdminHandler) DeleteCar(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}
	if err := h.vehicles.Delete(c.Request().Context(), id); err != nil {
		return backendError(err, msgDeleteCarFailed)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

func (h *AdminHandler) UploadCarImage(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	defer src.Close()

	v, err := h.vehicles.UploadImage(c.Request().Context(), id, file.Filename, src)
	if err != nil {
		return backendError(err, msgImageFailed)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *AdminHandler) CarBookings(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}
	bookings, err := h.bookings.ForVehicle(c.Request().Context(), id)
	if err != nil {
		return backendError(err, msgLoadBookingsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(bookings))
}

func (h *AdminHandler) ListBookings(c echo.Context) error {
	bookings, err := h.bookings.List(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadBookingsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(bookings))
}

func (h *AdminHandler) DeleteBooking(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	if err := h.bookings.Delete(c.Request().Context(), currentViewer(c), id); err != nil {
		return backendError(err, msgDeleteBookFailed)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

// ChangeStatus applies the transition table, then answers with the backend's re-read copy.
func (h *AdminHandler) ChangeStatus(c echo.Context) error {
	id, err := parseID(c, "id", "booking")
	if err != nil {
		return err
	}
	var form validation.StatusForm
	if err := bind(c, &form); err != nil {
		return err
	}
	if errs := validation.Status(form); len(errs) > 0 {
		return errs
	}
	to, err := models.ParseBookingStatus(form.Status)
	if err != nil {
		return validation.FieldErrors{"status": err.Error()}
	}

	b, err := h.bookings.ChangeStatus(c.Request().Context(), currentViewer(c), id, to)
	if err != nil {
		return backendError(err, service.MsgUpdateStatusFailed)
	}
	return c.JSON(http.StatusOK, b)
}

func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.admin.Users(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadUsersFailed)
	}
	return c.JSON(http.StatusOK, nonNil(users))
}

func (h *AdminHandler) GetUser(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	u, err := h.admin.User(c.Request().Context(), id)
	if err != nil {
		return backendError(err, msgLoadUsersFailed)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) CreateAdmin(c echo.Context) error {
	var form validation.AdminUserForm
	if err := bind(c, &form); err != nil {
		return err
	}
	u, err := h.admin.CreateAdmin(c.Request().Context(), form)
	if err != nil {
		return backendError(err, msgSaveUserFailed)
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *AdminHandler) UpdateUser(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	var form validation.ProfileForm
	if err := bind(c, &form); err != nil {
		return err
	}
	u, err := h.admin.UpdateUser(c.Request().Context(), id, form)
	if err != nil {
		return backendError(err, msgSaveUserFailed)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) DeleteUser(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	if err := h.admin.DeleteUser(c.Request().Context(), id); err != nil {
		return backendError(err, msgDeleteUserFailed)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: msgDeleted})
}

func (h *AdminHandler) UploadUserPicture(c echo.Context) error {
	id, err := parseID(c, "id", "user")
	if err != nil {
		return err
	}
	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, msgFileRequired)
	}
	defer src.Close()

	u, err := h.admin.UploadUserPicture(c.Request().Context(), id, file.Filename, src)
	if err != nil {
		return backendError(err, msgPictureFailed)
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AdminHandler) ListPayments(c echo.Context) error {
	payments, err := h.payments.List(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadPayFailed)
	}
	return c.JSON(http.StatusOK, nonNil(payments))
}

func (h *AdminHandler) Refund(c echo.Context) error {
	id, err := parseID(c, "id", "payment")
	if err != nil {
		return err
	}
	p, err := h.payments.Refund(c.Request().Context(), currentViewer(c), id)
	if err != nil {
		return backendError(err, service.MsgRefundFailed)
	}
	return c.JSON(http.StatusOK, p)
}
