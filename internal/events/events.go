// Package events describes the workflow notifications the storefront emits after a backend
// call succeeds. Delivery is best effort and never fails the user's request.
package events

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
	BookingDeleted       = "booking.deleted"
	PaymentProcessed     = "payment.processed"
	PaymentRefunded      = "payment.refunded"
	SessionLogin         = "session.login"
	SessionLogout        = "session.logout"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	UserID     uint      `json:"userId,omitempty"`
	Data       any       `json:"data,omitempty"`
}

func New(eventType string, userID uint, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
		Data:       data,
	}
}

// Publisher is satisfied by *rabbitmq.Publisher.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Emitter publishes events, tolerating a nil publisher.
type Emitter struct {
	pub    Publisher
	logger *zap.Logger
}

func NewEmitter(pub Publisher, log *zap.Logger) *Emitter {
	return &Emitter{pub: pub, logger: logger.OrNop(log).Named("events")}
}

func (e *Emitter) Emit(eventType string, userID uint, data any) {
	if e == nil || e.pub == nil {
		return
	}
	ev := New(eventType, userID, data)
	if err := e.pub.Publish(eventType, ev); err != nil {
		e.logger.Warn("publish event failed", zap.String("type", eventType), zap.String("event_id", ev.ID), zap.Error(err))
	}
}
