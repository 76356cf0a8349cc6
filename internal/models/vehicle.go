package models

import "strconv"

type Vehicle struct {
	ID           uint    `json:"id"`
	Make         string  `json:"make"`
	Model        string  `json:"model"`
	Year         int     `json:"year"`
	DailyPrice   float64 `json:"dailyPrice"`
	Available    bool    `json:"available"`
	Transmission string  `json:"transmission,omitempty"`
	FuelType     string  `json:"fuelType,omitempty"`
	Seats        int     `json:"seats,omitempty"`
	Color        string  `json:"color,omitempty"`
	LicensePlate string  `json:"licensePlate,omitempty"`
	ImageURL     string  `json:"imageUrl,omitempty"`
	Description  string  `json:"description,omitempty"`
}

// DisplayName is the "Make Model (Year)" label used across listings.
func (v *Vehicle) DisplayName() string {
	if v.Year == 0 {
		return v.Make + " " + v.Model
	}
	return v.Make + " " + v.Model + " (" + strconv.Itoa(v.Year) + ")"
}

// VehicleFilter carries the query parameters of GET /cars/search.
type VehicleFilter struct {
	Make         string
	Model        string
	MinPrice     float64
	MaxPrice     float64
	Transmission string
	FuelType     string
	Seats        int
}
