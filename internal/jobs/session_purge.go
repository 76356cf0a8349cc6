package jobs

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/pkg/logger"
)

type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Purger removes stored sessions whose expiry has passed.
type Purger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

type SessionPurge struct {
	sessions Purger
	logger   *zap.Logger
}

func NewSessionPurge(sessions Purger, log *zap.Logger) *SessionPurge {
	return &SessionPurge{sessions: sessions, logger: logger.OrNop(log).Named("session_purge")}
}

func (j *SessionPurge) Name() string { return "session_purge" }

func (j *SessionPurge) Run(ctx context.Context) error {
	n, err := j.sessions.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("purge expired sessions: %w", err)
	}
	if n > 0 {
		j.logger.Info("expired sessions purged", zap.Int("count", n))
	}
	return nil
}
