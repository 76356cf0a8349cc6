package models

import (
	"fmt"
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// ParseBookingStatus accepts only the four statuses the backend emits.
func ParseBookingStatus(s string) (BookingStatus, error) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("unknown booking status %q", s)
	}
}

// IsTerminal reports whether no further transition is possible.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingCancelled, BookingCompleted:
		return true
	case BookingPending, BookingConfirmed:
		return false
	}
	return false
}

type Booking struct {
	ID              uint          `json:"id"`
	UserID          uint          `json:"userId"`
	VehicleID       uint          `json:"vehicleId"`
	Vehicle         *Vehicle      `json:"vehicle,omitempty"`
	User            *User         `json:"user,omitempty"`
	StartDate       Date          `json:"startDate"`
	EndDate         Date          `json:"endDate"`
	TotalPrice      float64       `json:"totalPrice"`
	Status          BookingStatus `json:"status"`
	PickupLocation  string        `json:"pickupLocation"`
	DropOffLocation string        `json:"dropOffLocation"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// OwnedBy reports whether the booking belongs to the given user id.
func (b *Booking) OwnedBy(userID uint) bool {
	if b.UserID != 0 {
		return b.UserID == userID
	}
	return b.User != nil && b.User.ID == userID
}
