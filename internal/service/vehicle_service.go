package service

import (
	"context"
	"io"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/apiclient"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

type VehicleDetail struct {
	Vehicle *models.Vehicle `json:"vehicle"`
	CanBook bool            `json:"canBook"`
}

type VehicleService interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	Available(ctx context.Context) ([]models.Vehicle, error)
	Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error)
	Detail(ctx context.Context, id uint) (*VehicleDetail, error)
	Create(ctx context.Context, form validation.VehicleForm) (*models.Vehicle, error)
	Update(ctx context.Context, id uint, form validation.VehicleForm) (*models.Vehicle, error)
	Delete(ctx context.Context, id uint) error
	UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error)
}

type vehicleService struct {
	vehicles apiclient.VehicleAPI
}

func NewVehicleService(vehicles apiclient.VehicleAPI) VehicleService {
	return &vehicleService{vehicles: vehicles}
}

func (s *vehicleService) List(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles.List(ctx)
}

func (s *vehicleService) Available(ctx context.Context) ([]models.Vehicle, error) {
	return s.vehicles.ListAvailable(ctx)
}

func (s *vehicleService) Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error) {
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return nil, validation.FieldErrors{"maxPrice": "Maximum price must be at least the minimum price"}
	}
	return s.vehicles.Search(ctx, f)
}

func (s *vehicleService) Detail(ctx context.Context, id uint) (*VehicleDetail, error) {
	v, err := s.vehicles.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &VehicleDetail{Vehicle: v, CanBook: v.Available}, nil
}

func (s *vehicleService) Create(ctx context.Context, form validation.VehicleForm) (*models.Vehicle, error) {
	if errs := validation.Vehicle(form); len(errs) > 0 {
		return nil, errs
	}
	return s.vehicles.Create(ctx, form.Vehicle())
}

func (s *vehicleService) Update(ctx context.Context, id uint, form validation.VehicleForm) (*models.Vehicle, error) {
	if errs := validation.Vehicle(form); len(errs) > 0 {
		return nil, errs
	}
	v := form.Vehicle()
	v.ID = id
	return s.vehicles.Update(ctx, id, v)
}

func (s *vehicleService) Delete(ctx context.Context, id uint) error {
	return s.vehicles.Delete(ctx, id)
}

func (s *vehicleService) UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error) {
	return s.vehicles.UploadImage(ctx, id, filename, content)
}
