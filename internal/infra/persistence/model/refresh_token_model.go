package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel mirrors the 'refresh_tokens' table. Only the SHA-256 of the bearer value is stored.
type RefreshTokenModel struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AccountID    uuid.UUID  `gorm:"type:uuid;not null;index:idx_refresh_tokens_account_expires,priority:1"`
	TokenHash    string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_refresh_tokens_token_hash"`
	ExpiresAt    time.Time  `gorm:"not null;index:idx_refresh_tokens_account_expires,priority:2"`
	RevokedAt    *time.Time `gorm:"index:idx_refresh_tokens_revoked_at"`
	ReplacedByID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}
