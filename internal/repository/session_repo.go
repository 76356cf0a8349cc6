package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/lokeshnagrikar/Car-Rental-Frontend-sub000/internal/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Save(ctx context.Context, s *models.StoredSession) error
	FindByID(ctx context.Context, id string) (*models.StoredSession, error)
	Delete(ctx context.Context, id string) error
	DeleteByUserID(ctx context.Context, userID uint) (int64, error)
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

type sessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Save inserts the session or overwrites the stored credentials of an existing id.
func (r *sessionRepository) Save(ctx context.Context, s *models.StoredSession) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"user_id", "token", "refresh_token", "user_json", "expires_at", "updated_at"}),
	}).Create(s).Error
}

func (r *sessionRepository) FindByID(ctx context.Context, id string) (*models.StoredSession, error) {
	var s models.StoredSession
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.StoredSession{}).Error
}

func (r *sessionRepository) DeleteByUserID(ctx context.Context, userID uint) (int64, error) {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.StoredSession{})
	return result.RowsAffected, result.Error
}

func (r *sessionRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("expires_at < ?", before).Delete(&models.StoredSession{})
	return result.RowsAffected, result.Error
}
