package validation

import (
	"errors"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/booking"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

type LoginForm struct {
	Email      string `json:"email" validate:"required,email" label:"Email"`
	Password   string `json:"password" validate:"required,min=6" label:"Password"`
	RememberMe bool   `json:"rememberMe"`
}

type SignupForm struct {
	Name            string `json:"name" validate:"required,max=100" label:"Name"`
	Email           string `json:"email" validate:"required,email" label:"Email"`
	Password        string `json:"password" validate:"required,min=6" label:"Password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password" label:"Confirm password"`
	Phone           string `json:"phone" validate:"omitempty,max=20" label:"Phone"`
}

type PasswordResetRequestForm struct {
	Email string `json:"email" validate:"required,email" label:"Email"`
}

type PasswordResetForm struct {
	Token           string `json:"token" validate:"required" label:"Reset token"`
	NewPassword     string `json:"newPassword" validate:"required,min=6" label:"New password"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword" label:"Confirm password"`
}

type ProfileForm struct {
	Name     string `json:"name" validate:"required,max=100" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Phone    string `json:"phone" validate:"omitempty,max=20" label:"Phone"`
	Password string `json:"password" validate:"omitempty,min=6" label:"Password"`
}

type BookingForm struct {
	VehicleID       uint   `json:"vehicleId" validate:"required" label:"Car"`
	StartDate       string `json:"startDate" validate:"required,isodate" label:"Start date"`
	EndDate         string `json:"endDate" validate:"required,isodate" label:"End date"`
	PickupLocation  string `json:"pickupLocation" validate:"required" label:"Pickup location"`
	DropOffLocation string `json:"dropOffLocation" validate:"required" label:"Drop-off location"`
}

// Dates returns the parsed start and end. Only meaningful once the form validated.
func (f BookingForm) Dates() (models.Date, models.Date) {
	start, _ := models.ParseDate(f.StartDate)
	end, _ := models.ParseDate(f.EndDate)
	return start, end
}

type PaymentForm struct {
	CardNumber string `json:"cardNumber" validate:"required,cardnumber" label:"Card number"`
	CardHolder string `json:"cardHolder" validate:"required" label:"Card holder name"`
	Expiry     string `json:"expiry" validate:"required,expiry" label:"Expiry date"`
	CVV        string `json:"cvv" validate:"required,cvv" label:"CVV"`
	Method     string `json:"method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD" label:"Payment method"`
}

// Redacted returns the form without the CVV, for echoing back after a failed attempt.
func (f PaymentForm) Redacted() PaymentForm {
	f.CVV = ""
	return f
}

type VehicleForm struct {
	Make         string  `json:"make" validate:"required" label:"Make"`
	Model        string  `json:"model" validate:"required" label:"Model"`
	Year         int     `json:"year" validate:"required,gte=1900,lte=2100" label:"Year"`
	DailyPrice   float64 `json:"dailyPrice" validate:"gt=0" label:"Daily price"`
	Available    bool    `json:"available"`
	Transmission string  `json:"transmission" label:"Transmission"`
	FuelType     string  `json:"fuelType" label:"Fuel type"`
	Seats        int     `json:"seats" validate:"omitempty,gte=1,lte=20" label:"Seats"`
	Color        string  `json:"color"`
	LicensePlate string  `json:"licensePlate"`
	Description  string  `json:"description"`
}

func (f VehicleForm) Vehicle() *models.Vehicle {
	return &models.Vehicle{
		Make:         f.Make,
		Model:        f.Model,
		Year:         f.Year,
		DailyPrice:   f.DailyPrice,
		Available:    f.Available,
		Transmission: f.Transmission,
		FuelType:     f.FuelType,
		Seats:        f.Seats,
		Color:        f.Color,
		LicensePlate: f.LicensePlate,
		Description:  f.Description,
	}
}

type AdminUserForm struct {
	Name     string `json:"name" validate:"required,max=100" label:"Name"`
	Email    string `json:"email" validate:"required,email" label:"Email"`
	Password string `json:"password" validate:"required,min=6" label:"Password"`
	Phone    string `json:"phone" validate:"omitempty,max=20" label:"Phone"`
}

type StatusForm struct {
	Status string `json:"status" validate:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED" label:"Status"`
}

func Login(f LoginForm) FieldErrors { return std.Fields(&f) }

func Signup(f SignupForm) FieldErrors { return std.Fields(&f) }

func PasswordResetRequest(f PasswordResetRequestForm) FieldErrors { return std.Fields(&f) }

func PasswordReset(f PasswordResetForm) FieldErrors { return std.Fields(&f) }

func Profile(f ProfileForm) FieldErrors { return std.Fields(&f) }

func Payment(f PaymentForm) FieldErrors { return std.Fields(&f) }

func Vehicle(f VehicleForm) FieldErrors { return std.Fields(&f) }

func AdminUser(f AdminUserForm) FieldErrors { return std.Fields(&f) }

func Status(f StatusForm) FieldErrors { return std.Fields(&f) }

// Booking checks the booking form, including the date range against now: the start must be
// tomorrow or later and the end on or after the start.
func Booking(f BookingForm, now time.Time) FieldErrors {
	errs := std.Fields(&f)
	if _, bad := errs["startDate"]; bad {
		return errs
	}
	if _, bad := errs["endDate"]; bad {
		return errs
	}

	start, end := f.Dates()
	switch err := booking.ValidateRange(start, end, now); {
	case errors.Is(err, booking.ErrStartTooEarly):
		errs.Add("startDate", "Start date must be tomorrow or later")
	case errors.Is(err, booking.ErrEndBeforeStart):
		errs.Add("endDate", "End date must be on or after the start date")
	}
	return errs
}
