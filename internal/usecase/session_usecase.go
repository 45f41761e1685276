package usecase

import (
	"context"
	"time"

	"finsync/internal/domain/entity"
	"finsync/internal/domain/repository"

	"github.com/google/uuid"
)

// IssuedRefreshToken is a new session. Token is the raw bearer value and is
// never available again after it is returned.
type IssuedRefreshToken struct {
	Token     string
	ExpiresAt time.Time
	Session   *entity.RefreshToken
}

// RenewInput carries the refresh token and, optionally, the access token it was issued with.
type RenewInput struct {
	RefreshToken string
	AccessToken  string
}

// RenewOutput is the rotated token pair and the account's current state.
type RenewOutput struct {
	TokenPair
	Account *entity.Account
}

// SessionUsecase manages refresh tokens and their rotation.
type SessionUsecase interface {
	// IssueRefreshToken creates a session for account using repos' transaction.
	IssueRefreshToken(ctx context.Context, repos repository.RepositoryFactory, account *entity.Account) (*IssuedRefreshToken, error)

	// Renew rotates a refresh token and signs a new access token.
	Renew(ctx context.Context, input *RenewInput) (*RenewOutput, error)

	// Logout revokes one refresh token. Unknown or revoked tokens are ignored.
	Logout(ctx context.Context, refreshToken string) error

	// LogoutAll revokes every active session of the account.
	LogoutAll(ctx context.Context, accountID uuid.UUID) error

	// ListSessions returns the account's active sessions, newest first.
	ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshToken, error)

	// PurgeExpired deletes sessions that are long expired or revoked.
	PurgeExpired(ctx context.Context) (int64, error)
}
