package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d.String())

	d, err = ParseDate("2026-03-14T22:10:00Z")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d.String())

	d, err = ParseDate("2026-03-14T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", d.String())

	_, err = ParseDate("14/03/2026")
	assert.Error(t, err)

	for _, junk := range []string{"2026-03-14Tgarbage", "2026-03-14TXX", "2026-03-14 extra"} {
		_, err = ParseDate(junk)
		assert.Error(t, err, junk)
	}
}

func TestDate_JSON(t *testing.T) {
	var b struct {
		Start Date `json:"start"`
		End   Date `json:"end"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"2026-01-30","end":null}`), &b))
	assert.Equal(t, "2026-01-30", b.Start.String())
	assert.True(t, b.End.IsZero())

	out, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"2026-01-30","end":null}`, string(out))
}

func TestNewDate_DropsTimeOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*3600)
	d := NewDate(time.Date(2026, 2, 20, 23, 59, 0, 0, loc))
	assert.Equal(t, "2026-02-20", d.String())
	assert.Equal(t, "2026-02-21", d.AddDays(1).String())
}

func TestParseBookingStatus(t *testing.T) {
	st, err := ParseBookingStatus("CONFIRMED")
	require.NoError(t, err)
	assert.Equal(t, BookingConfirmed, st)

	_, err = ParseBookingStatus("confirmed")
	assert.Error(t, err)
}

func TestBookingStatus_IsTerminal(t *testing.T) {
	assert.False(t, BookingPending.IsTerminal())
	assert.False(t, BookingConfirmed.IsTerminal())
	assert.True(t, BookingCancelled.IsTerminal())
	assert.True(t, BookingCompleted.IsTerminal())
}

func TestBooking_OwnedBy(t *testing.T) {
	assert.True(t, (&Booking{UserID: 7}).OwnedBy(7))
	assert.False(t, (&Booking{UserID: 7}).OwnedBy(8))
	assert.True(t, (&Booking{User: &User{ID: 3}}).OwnedBy(3))
	assert.False(t, (&Booking{}).OwnedBy(3))
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("ROLE_ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)
	assert.True(t, (&User{Role: r}).IsAdmin())

	var nobody *User
	assert.False(t, nobody.IsAdmin())
}

func TestPaymentStatus_Refundable(t *testing.T) {
	assert.True(t, PaymentCompleted.Refundable())
	assert.False(t, PaymentPending.Refundable())
	assert.False(t, PaymentRefunded.Refundable())
}
