package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	publishFn func(routingKey string, payload any) error
}

func (m *mockPublisher) Publish(routingKey string, payload any) error {
	return m.publishFn(routingKey, payload)
}

func TestEmitter_PublishesUnderEventType(t *testing.T) {
	var gotKey string
	var got Event
	pub := &mockPublisher{publishFn: func(key string, payload any) error {
		gotKey = key
		got = payload.(Event)
		return nil
	}}

	NewEmitter(pub, nil).Emit(BookingCreated, 4, map[string]uint{"bookingId": 9})

	assert.Equal(t, BookingCreated, gotKey)
	assert.Equal(t, BookingCreated, got.Type)
	assert.Equal(t, uint(4), got.UserID)
	require.NotEmpty(t, got.ID)
	assert.False(t, got.OccurredAt.IsZero())
}

func TestEmitter_SwallowsErrors(t *testing.T) {
	pub := &mockPublisher{publishFn: func(string, any) error { return errors.New("channel closed") }}
	assert.NotPanics(t, func() { NewEmitter(pub, nil).Emit(SessionLogout, 1, nil) })
}

func TestEmitter_NilSafe(t *testing.T) {
	var e *Emitter
	assert.NotPanics(t, func() { e.Emit(SessionLogin, 1, nil) })
	assert.NotPanics(t, func() { NewEmitter(nil, nil).Emit(SessionLogin, 1, nil) })
}
