package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/service"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

const (
	msgLoadCarsFailed = "Failed to load cars. Please try again."
	msgLoadCarFailed  = "Failed to load car details."
)

// VehicleHandler serves the public catalog.
type VehicleHandler struct {
	svc service.VehicleService
}

func NewVehicleHandler(svc service.VehicleService) *VehicleHandler {
	return &VehicleHandler{svc: svc}
}

func (h *VehicleHandler) RegisterRoutes(g *echo.Group) {
	cars := g.Group("/cars")
	cars.GET("", h.List)
	cars.GET("/available", h.Available)
	cars.GET("/search", h.Search)
	cars.GET("/:id", h.Get)
}

func (h *VehicleHandler) List(c echo.Context) error {
	vehicles, err := h.svc.List(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadCarsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(vehicles))
}

func (h *VehicleHandler) Available(c echo.Context) error {
	vehicles, err := h.svc.Available(c.Request().Context())
	if err != nil {
		return backendError(err, msgLoadCarsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(vehicles))
}

func (h *VehicleHandler) Search(c echo.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return err
	}
	vehicles, err := h.svc.Search(c.Request().Context(), filter)
	if err != nil {
		return backendError(err, msgLoadCarsFailed)
	}
	return c.JSON(http.StatusOK, nonNil(vehicles))
}

func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := parseID(c, "id", "car")
	if err != nil {
		return err
	}
	detail, err := h.svc.Detail(c.Request().Context(), id)
	if err != nil {
		return backendError(err, msgLoadCarFailed)
	}
	return c.JSON(http.StatusOK, detail)
}

func parseFilter(c echo.Context) (models.VehicleFilter, error) {
	f := models.VehicleFilter{
		Make:         strings.TrimSpace(c.QueryParam("make")),
		Model:        strings.TrimSpace(c.QueryParam("model")),
		Transmission: strings.TrimSpace(c.QueryParam("transmission")),
		FuelType:     strings.TrimSpace(c.QueryParam("fuelType")),
	}
	errs := validation.FieldErrors{}

	if s := c.QueryParam("minPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			errs.Add("minPrice", "Minimum price must be a positive number")
		}
		f.MinPrice = v
	}
	if s := c.QueryParam("maxPrice"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v < 0 {
			errs.Add("maxPrice", "Maximum price must be a positive number")
		}
		f.MaxPrice = v
	}
	if s := c.QueryParam("seats"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			errs.Add("seats", "Seats must be a whole number")
		}
		f.Seats = v
	}
	return f, errs.Err()
}

// nonNil keeps empty lists rendering as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
