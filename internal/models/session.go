package models

import "time"

// StoredSession is a persisted "remember me" credential set. Session-only logins never reach
// this table.
type StoredSession struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	UserID       uint      `gorm:"index;not null" json:"user_id"`
	Token        string    `gorm:"type:text;not null" json:"-"`
	RefreshToken string    `gorm:"type:text" json:"-"`
	UserJSON     string    `gorm:"column:user_json;type:text" json:"-"`
	ExpiresAt    time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (StoredSession) TableName() string {
	return "storefront_sessions"
}
