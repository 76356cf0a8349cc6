// Package validation holds the storefront's form schemas. Each form is checked by a pure
// function that returns field errors keyed by the JSON field name; nothing here touches the
// network.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

var (
	cardNumberRe = regexp.MustCompile(`^\d{16}$`)
	expiryRe     = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{2}$`)
	cvvRe        = regexp.MustCompile(`^\d{3,4}$`)
)

// FieldErrors maps a form field to the message shown next to it.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + f[k]
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add records msg for field unless the field already has an error.
func (f FieldErrors) Add(field, msg string) {
	if _, ok := f[field]; !ok {
		f[field] = msg
	}
}

// Err returns nil when there are no field errors.
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return f
}

// AsFieldErrors extracts FieldErrors from err.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

// Validator adapts go-playground/validator to echo.Validator.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		name := strings.SplitN(sf.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return sf.Name
		}
		return name
	})
	mustRegister(v, "cardnumber", func(fl validator.FieldLevel) bool {
		return cardNumberRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "expiry", func(fl validator.FieldLevel) bool {
		return expiryRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "cvv", func(fl validator.FieldLevel) bool {
		return cvvRe.MatchString(fl.Field().String())
	})
	mustRegister(v, "isodate", func(fl validator.FieldLevel) bool {
		_, err := models.ParseDate(fl.Field().String())
		return err == nil
	})
	return &Validator{v: v}
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s: %v", tag, err))
	}
}

// Validate implements echo.Validator. The returned error is always FieldErrors or nil.
func (v *Validator) Validate(i any) error {
	return v.Fields(i).Err()
}

// Fields runs the struct rules on i and converts failures to FieldErrors.
func (v *Validator) Fields(i any) FieldErrors {
	out := FieldErrors{}
	err := v.v.Struct(i)
	if err == nil {
		return out
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("form", err.Error())
		return out
	}

	t := reflect.Indirect(reflect.ValueOf(i)).Type()
	for _, fe := range verrs {
		label := fe.Field()
		if sf, ok := t.FieldByName(fe.StructField()); ok {
			if l := sf.Tag.Get("label"); l != "" {
				label = l
			}
		}
		out.Add(fe.Field(), message(fe, label))
	}
	return out
}

func message(fe validator.FieldError, label string) string {
	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Invalid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", label, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", label, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		return "Passwords do not match"
	case "cardnumber":
		return "Card number must be 16 digits"
	case "expiry":
		return "Expiry date must be in MM/YY format"
	case "cvv":
		return "CVV must be 3 or 4 digits"
	case "isodate":
		return label + " must be a date in YYYY-MM-DD format"
	}
	return label + " is invalid"
}

var std = New()

// Default is the process-wide validator used by the per-form functions.
func Default() *Validator { return std }
