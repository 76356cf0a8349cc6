// Package booking holds the rental rules the storefront evaluates on its own: date-range
// arithmetic, the price preview and the status transition guards. Nothing here performs I/O.
package booking

import (
	"errors"
	"math"
	"strconv"
	"time"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

var (
	ErrEndBeforeStart = errors.New("end date must be on or after the start date")
	ErrStartTooEarly  = errors.New("start date must be tomorrow or later")
	ErrNegativePrice  = errors.New("daily price must not be negative")
	ErrMissingDates   = errors.New("start and end dates are required")
)

const day = 24 * time.Hour

// InclusiveDayCount counts both endpoints, so a same-day rental is one day.
func InclusiveDayCount(start, end models.Date) (int, error) {
	if start.IsZero() || end.IsZero() {
		return 0, ErrMissingDates
	}
	if end.Before(start) {
		return 0, ErrEndBeforeStart
	}
	return int(end.Time.Sub(start.Time)/day) + 1, nil
}

// EarliestStart is the first selectable start date: the calendar day after now, in now's location.
func EarliestStart(now time.Time) models.Date {
	return models.NewDate(now).AddDays(1)
}

// ValidateRange applies the date-picker constraints: start no earlier than tomorrow and
// end no earlier than start.
func ValidateRange(start, end models.Date, now time.Time) error {
	if start.IsZero() || end.IsZero() {
		return ErrMissingDates
	}
	if start.Before(EarliestStart(now)) {
		return ErrStartTooEarly
	}
	if end.Before(start) {
		return ErrEndBeforeStart
	}
	return nil
}

// Quote is the price preview shown next to the date pickers.
type Quote struct {
	StartDate      models.Date `json:"startDate"`
	EndDate        models.Date `json:"endDate"`
	Days           int         `json:"days"`
	DailyPrice     float64     `json:"dailyPrice"`
	Total          float64     `json:"total"`
	TotalFormatted string      `json:"totalFormatted"`
}

func NewQuote(dailyPrice float64, start, end models.Date) (Quote, error) {
	if dailyPrice < 0 || math.IsNaN(dailyPrice) || math.IsInf(dailyPrice, 0) {
		return Quote{}, ErrNegativePrice
	}
	days, err := InclusiveDayCount(start, end)
	if err != nil {
		return Quote{}, err
	}
	total := RoundCents(dailyPrice * float64(days))
	return Quote{
		StartDate:      start,
		EndDate:        end,
		Days:           days,
		DailyPrice:     dailyPrice,
		Total:          total,
		TotalFormatted: FormatAmount(total),
	}, nil
}

// RoundCents rounds half away from zero to two decimals.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatAmount renders v with exactly two decimals, e.g. "150.00".
func FormatAmount(v float64) string {
	return strconv.FormatFloat(RoundCents(v), 'f', 2, 64)
}
