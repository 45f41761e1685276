package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, authorized session.
// It is used to obtain a new access token without re-entering credentials.
type RefreshToken struct {
	ID           uuid.UUID  // The unique ID for this refresh token record.
	AccountID    uuid.UUID  // Owner of the session.
	TokenHash    string     // SHA-256 of the raw bearer value; the raw value is never stored.
	ExpiresAt    time.Time  // CreatedAt + refresh TTL.
	RevokedAt    *time.Time // Set when superseded by rotation or logout.
	ReplacedByID *uuid.UUID // Rotation successor, if any.
	CreatedAt    time.Time
}

// IsExpired reports whether the token is past its expiry.
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}

// IsRevoked reports whether the token was superseded or logged out.
func (t *RefreshToken) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsActive reports whether the token can still be presented for renewal.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return !t.IsRevoked() && !t.IsExpired(now)
}
