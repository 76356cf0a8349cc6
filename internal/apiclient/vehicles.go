package apiclient

import (
	"context"
	"io"
	"net/url"
	"strconv"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

type VehicleAPI interface {
	List(ctx context.Context) ([]models.Vehicle, error)
	ListAvailable(ctx context.Context) ([]models.Vehicle, error)
	Get(ctx context.Context, id uint) (*models.Vehicle, error)
	Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error)
	Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Update(ctx context.Context, id uint, v *models.Vehicle) (*models.Vehicle, error)
	Delete(ctx context.Context, id uint) error
	UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error)
}

type vehicleAPI struct {
	c *Client
}

func NewVehicleAPI(c *Client) VehicleAPI {
	return &vehicleAPI{c: c}
}

func (a *vehicleAPI) List(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := a.c.get(ctx, "/cars", "/cars", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (a *vehicleAPI) ListAvailable(ctx context.Context) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := a.c.get(ctx, "/cars/available", "/cars/available", nil, &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (a *vehicleAPI) Get(ctx context.Context, id uint) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := a.c.get(ctx, "/cars/:id", idPath("/cars/%d", id), nil, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (a *vehicleAPI) Search(ctx context.Context, f models.VehicleFilter) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := a.c.get(ctx, "/cars/search", "/cars/search", searchQuery(f), &vehicles); err != nil {
		return nil, err
	}
	return vehicles, nil
}

func (a *vehicleAPI) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	var created models.Vehicle
	if err := a.c.post(ctx, "/cars", "/cars", v, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (a *vehicleAPI) Update(ctx context.Context, id uint, v *models.Vehicle) (*models.Vehicle, error) {
	var updated models.Vehicle
	if err := a.c.put(ctx, "/cars/:id", idPath("/cars/%d", id), v, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (a *vehicleAPI) Delete(ctx context.Context, id uint) error {
	return a.c.delete(ctx, "/cars/:id", idPath("/cars/%d", id), nil)
}

func (a *vehicleAPI) UploadImage(ctx context.Context, id uint, filename string, content io.Reader) (*models.Vehicle, error) {
	var v models.Vehicle
	if err := a.c.upload(ctx, "/cars/:id/image", idPath("/cars/%d/image", id), filename, content, &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func searchQuery(f models.VehicleFilter) url.Values {
	q := url.Values{}
	if f.Make != "" {
		q.Set("make", f.Make)
	}
	if f.Model != "" {
		q.Set("model", f.Model)
	}
	if f.MinPrice > 0 {
		q.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice > 0 {
		q.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Transmission != "" {
		q.Set("transmission", f.Transmission)
	}
	if f.FuelType != "" {
		q.Set("fuelType", f.FuelType)
	}
	if f.Seats > 0 {
		q.Set("seats", strconv.Itoa(f.Seats))
	}
	return q
}
