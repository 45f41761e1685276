package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. IDs are UUIDv7 values assigned by the application.
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(100);not null"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_accounts_email"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	Role         string    `gorm:"type:varchar(20);not null;index:idx_accounts_role"`

	EmailVerified bool `gorm:"not null;default:false"`
	VerifiedAt    *time.Time

	// NULL when nothing is outstanding, so the unique index only covers live tokens.
	VerificationTokenHash         *string `gorm:"type:varchar(64);uniqueIndex:idx_accounts_verification_token_hash"`
	VerificationTokenIssuedAt     *time.Time
	ConsumedVerificationTokenHash *string `gorm:"type:varchar(64);index:idx_accounts_consumed_verification_token_hash"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
