// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"finsync/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// LoginInput defines the data required for an account to log in.
type LoginInput struct {
	Email    string
	Password string
}

// UpdateProfileInput is the owner's own update. Nil fields are left unchanged.
// A password change needs both CurrentPassword and NewPassword.
type UpdateProfileInput struct {
	Name            *string
	CurrentPassword string
	NewPassword     string
}

// UpdateAccountInput is the administrative update. Nil fields are left unchanged.
type UpdateAccountInput struct {
	Name  *string
	Email *string
	Role  *string
}

// ListAccountsInput selects a page of accounts. Page is 1-based.
type ListAccountsInput struct {
	Page     int
	PageSize int
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account.
// VerificationSent is false when the verification mail could not be handed off.
type RegisterOutput struct {
	Account          *entity.Account
	VerificationSent bool
	Message          string
}

// TokenPair is an access token and the refresh token issued with it.
type TokenPair struct {
	AccessToken           string
	AccessTokenExpiresAt  time.Time
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
}

// LoginOutput returns the generated tokens after a successful login.
type LoginOutput struct {
	TokenPair
	Account *entity.Account
}

// ListAccountsOutput is one page of accounts.
type ListAccountsOutput struct {
	Accounts []*entity.Account
	Total    int64
	Page     int
	PageSize int
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AccountUsecase interface {
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error)
	UpdateProfile(ctx context.Context, accountID uuid.UUID, input *UpdateProfileInput) (*entity.Account, error)
	UpdateAccount(ctx context.Context, actorID, targetID uuid.UUID, input *UpdateAccountInput) (*entity.Account, error)
	ListAccounts(ctx context.Context, actorID uuid.UUID, input *ListAccountsInput) (*ListAccountsOutput, error)
}
