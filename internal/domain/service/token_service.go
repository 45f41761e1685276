package service

import (
	"time"

	"finsync/internal/domain/entity"

	"github.com/google/uuid"
)

// Claims are the identity facts carried by an access token.
type Claims struct {
	AccountID uuid.UUID
	Name      string
	Email     string
	Role      entity.Role

	// Set by the signer.
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// ClaimsFor builds the claims for an account's current state.
func ClaimsFor(account *entity.Account) *Claims {
	return &Claims{
		AccountID: account.ID,
		Name:      account.Name,
		Email:     account.Email,
		Role:      account.Role,
	}
}

// IssuedToken is a signed access token and its expiry.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	Claims    *Claims
}

// TokenSigner issues and validates signed access tokens.
// Implementations must refuse to start without a secret, issuer and audience.
type TokenSigner interface {
	// Issue signs claims with the configured access token lifetime.
	Issue(claims *Claims) (*IssuedToken, error)

	// Validate checks signature, algorithm, issuer, audience and expiry.
	// Expired tokens yield ErrAccessTokenExpired; every other failure ErrAccessTokenInvalid.
	Validate(token string) (*Claims, error)

	// ValidateIgnoringExpiry performs every check except the lifetime check.
	ValidateIgnoringExpiry(token string) (*Claims, error)
}
