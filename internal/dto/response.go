package dto

import (
	"fmt"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/session"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/validation"
)

const LoginPath = "/login"

type ErrorResponse struct {
	Message  string                 `json:"message"`
	Fields   validation.FieldErrors `json:"fields,omitempty"`
	Redirect string                 `json:"redirect,omitempty"`
	Form     any                    `json:"form,omitempty"`
}

type MessageResponse struct {
	Message  string `json:"message"`
	Redirect string `json:"redirect,omitempty"`
}

// BlockedResponse is the terminal "not available" state of the booking form.
type BlockedResponse struct {
	Blocked bool   `json:"blocked"`
	Message string `json:"message"`
	BackURL string `json:"backUrl"`
}

type SessionResponse struct {
	State         session.State `json:"state"`
	Authenticated bool          `json:"authenticated"`
	Admin         bool          `json:"admin"`
	User          *models.User  `json:"user,omitempty"`
}

type LoginResponse struct {
	Success  bool         `json:"success"`
	Message  string       `json:"message,omitempty"`
	Admin    bool         `json:"admin,omitempty"`
	User     *models.User `json:"user,omitempty"`
	Redirect string       `json:"redirect,omitempty"`
}

type BookingCreatedResponse struct {
	Booking  *models.Booking `json:"booking"`
	Redirect string          `json:"redirect"`
}

type PaymentResponse struct {
	Payment  *models.Payment `json:"payment"`
	Redirect string          `json:"redirect"`
}

func ToSessionResponse(s *session.Session) SessionResponse {
	if s == nil {
		s = session.Anonymous()
	}
	resp := SessionResponse{
		State:         s.State,
		Authenticated: s.IsAuthenticated(),
		Admin:         s.IsAdmin(),
	}
	if resp.Authenticated {
		resp.User = s.User
	}
	return resp
}

func ToLoginResponse(r session.LoginResult) LoginResponse {
	if !r.Success || r.Session == nil {
		return LoginResponse{Success: false, Message: r.Message}
	}
	redirect := "/"
	if r.Session.IsAdmin() {
		redirect = "/admin"
	}
	return LoginResponse{
		Success:  true,
		Admin:    r.Session.IsAdmin(),
		User:     r.Session.User,
		Redirect: redirect,
	}
}

func BookingPath(id uint) string {
	return fmt.Sprintf("/bookings/%d", id)
}

func CarPath(id uint) string {
	return fmt.Sprintf("/cars/%d", id)
}
