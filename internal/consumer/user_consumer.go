package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

// Routing keys published by the rental backend.
const (
	UserDeleted     = "user.deleted"
	UserRoleChanged = "user.role_changed"
)

var errMissingUserID = errors.New("message carries no user id")

// Revoker drops every stored session of a user.
type Revoker interface {
	RevokeUser(ctx context.Context, userID uint) (int, error)
}

type userEvent struct {
	UserID uint `json:"userId"`
	ID     uint `json:"id"`
}

func (e userEvent) user() uint {
	if e.UserID != 0 {
		return e.UserID
	}
	return e.ID
}

// UserConsumer ends the sessions of users the backend deleted or re-roled, so a cached
// profile never outlives the account it describes.
type UserConsumer struct {
	sessions Revoker
	timeout  time.Duration
	logger   *zap.Logger
}

func NewUserConsumer(sessions Revoker, log *zap.Logger) *UserConsumer {
	return &UserConsumer{
		sessions: sessions,
		timeout:  10 * time.Second,
		logger:   logger.OrNop(log).Named("user_consumer"),
	}
}

// Start handles deliveries until msgs is closed. The returned channel closes with it.
func (uc *UserConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			uc.handleMessage(msg)
		}
		uc.logger.Info("channel closed, stopping consumer")
	}()
	return done
}

func (uc *UserConsumer) handleMessage(msg amqp.Delivery) {
	switch msg.RoutingKey {
	case UserDeleted, UserRoleChanged:
	default:
		// Other user.* events do not affect sessions.
		_ = msg.Ack(false)
		return
	}

	userID, err := decodeUser(msg.Body)
	if err != nil {
		uc.logger.Warn("discarding malformed message", zap.String("routing_key", msg.RoutingKey), zap.Error(err))
		_ = msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), uc.timeout)
	defer cancel()

	n, err := uc.sessions.RevokeUser(ctx, userID)
	if err != nil {
		uc.logger.Error("revoke sessions", zap.Uint("user_id", userID), zap.Error(err))
		_ = msg.Nack(false, true) // requeue
		return
	}

	uc.logger.Info("sessions revoked",
		zap.String("routing_key", msg.RoutingKey),
		zap.Uint("user_id", userID),
		zap.Int("count", n),
	)
	_ = msg.Ack(false)
}

func decodeUser(body []byte) (uint, error) {
	var ev userEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return 0, fmt.Errorf("decode user event: %w", err)
	}
	if ev.user() == 0 {
		return 0, errMissingUserID
	}
	return ev.user(), nil
}
