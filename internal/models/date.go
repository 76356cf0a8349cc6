package models

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the wire format the rental backend uses for booking dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without time of day. It is stored as UTC midnight.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date in t's own location.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses YYYY-MM-DD. A full RFC3339 timestamp is accepted and cut to the date it
// names in its own offset; anything else longer than a date is rejected.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
		}
		return NewDate(t), nil
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

// AddDays returns the date n calendar days later.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// Before reports whether d is an earlier calendar date than o.
func (d Date) Before(o Date) bool { return d.Time.Before(o.Time) }

// After reports whether d is a later calendar date than o.
func (d Date) After(o Date) bool { return d.Time.After(o.Time) }

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
