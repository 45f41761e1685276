package usecase

import (
	"context"
	"time"

	"finsync/internal/domain/entity"
)

// VerificationTicket is the raw verification token handed to the notifier.
// Only its hash is stored.
type VerificationTicket struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ConfirmOutput reports the outcome of a verification link.
type ConfirmOutput struct {
	Account         *entity.Account
	AlreadyVerified bool
}

// VerificationUsecase runs the email verification flow.
type VerificationUsecase interface {
	// StartVerification puts a fresh token on account. The caller persists the account.
	StartVerification(ctx context.Context, account *entity.Account) (*VerificationTicket, error)

	// SendVerification hands the ticket to the notifier.
	SendVerification(ctx context.Context, account *entity.Account, ticket *VerificationTicket) error

	// Confirm consumes a verification token as received in the link.
	Confirm(ctx context.Context, rawToken string) (*ConfirmOutput, error)

	// Resend issues a new token for a pending account. Unknown or verified emails succeed silently.
	Resend(ctx context.Context, email string) error

	// IsVerified reports the verification state of the account registered with email.
	IsVerified(ctx context.Context, email string) (bool, error)
}
