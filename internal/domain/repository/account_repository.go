// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"time"

	"finsync/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists is returned when the store's email uniqueness constraint fires.
	ErrAccountAlreadyExists = errors.New("account already exists")
)

// AccountRepository defines the standard operations for account persistence.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves an account by its normalized email.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// FindByVerificationTokenHash retrieves the account whose outstanding token hashes to tokenHash.
	FindByVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.Account, error)

	// FindByConsumedVerificationTokenHash retrieves the account verified with the token hashing to tokenHash.
	FindByConsumedVerificationTokenHash(ctx context.Context, tokenHash string) (*entity.Account, error)

	// Create persists a new account. Returns ErrAccountAlreadyExists on an email collision.
	Create(ctx context.Context, account *entity.Account) error

	// Update writes every mutable column. Returns ErrAccountAlreadyExists on an email collision.
	Update(ctx context.Context, account *entity.Account) error

	// ConfirmVerification marks the account verified only if tokenHash is still outstanding.
	// Returns ErrAccountNotFound when the token was consumed concurrently.
	ConfirmVerification(ctx context.Context, id uuid.UUID, tokenHash string, verifiedAt time.Time) error

	// Count returns the number of accounts in the system.
	Count(ctx context.Context) (int64, error)

	// CountByRole returns the number of accounts holding role.
	CountByRole(ctx context.Context, role entity.Role) (int64, error)

	// List returns a page of accounts ordered by creation time and the total count.
	List(ctx context.Context, offset, limit int) ([]*entity.Account, int64, error)

	// LockRegistration serializes registrations for the rest of the current transaction.
	LockRegistration(ctx context.Context) error
}
