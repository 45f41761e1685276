package repository

import (
	"context"
	"time"

	"finsync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when a refresh token is not found.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines session persistence. Expiry and revocation
// are decided by the caller; lookups return the record as stored.
type RefreshTokenRepository interface {
	// Create persists a new refresh token, representing a session.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// FindByHash retrieves a refresh token record by its securely stored hash.
	FindByHash(ctx context.Context, tokenHash string) (*entity.RefreshToken, error)

	// FindActiveByAccountID returns unrevoked, unexpired sessions, newest first.
	FindActiveByAccountID(ctx context.Context, accountID uuid.UUID, now time.Time) ([]*entity.RefreshToken, error)

	// Revoke marks the token revoked if it is not already. It reports whether this call revoked it.
	Revoke(ctx context.Context, id uuid.UUID, revokedAt time.Time, replacedBy *uuid.UUID) (bool, error)

	// RevokeAllByAccountID revokes every active session of the account.
	RevokeAllByAccountID(ctx context.Context, accountID uuid.UUID, revokedAt time.Time) (int64, error)

	// DeleteStale removes tokens that expired or were revoked before cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
