// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Account is a registered identity. Email is the login name.
type Account struct {
	ID           uuid.UUID // Assigned at creation, immutable.
	Email        string    // Normalized (trimmed, lower-cased), unique.
	Name         string    // Display name, mutable by the owner.
	PasswordHash string    // bcrypt hash, never serialized.
	Role         Role      // Exactly one role per account.

	EmailVerified bool
	VerifiedAt    *time.Time

	// VerificationTokenHash is the SHA-256 of the outstanding verification token.
	// Empty means no verification is pending.
	VerificationTokenHash     string
	VerificationTokenIssuedAt *time.Time

	// ConsumedVerificationTokenHash is the hash of the token that completed verification.
	// It only lets a replayed link be answered with "already verified".
	ConsumedVerificationTokenHash string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail returns the canonical form used for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsAdmin reports whether the account holds the Admin role.
func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// HasPendingVerification reports whether a verification token is outstanding.
func (a *Account) HasPendingVerification() bool {
	return a.VerificationTokenHash != ""
}

// StartVerification records a new outstanding token, replacing any previous one.
func (a *Account) StartVerification(tokenHash string, now time.Time) {
	issuedAt := now
	a.VerificationTokenHash = tokenHash
	a.VerificationTokenIssuedAt = &issuedAt
	a.EmailVerified = false
	a.VerifiedAt = nil
	a.ConsumedVerificationTokenHash = ""
}

// VerificationExpired reports whether the outstanding token is older than ttl.
func (a *Account) VerificationExpired(now time.Time, ttl time.Duration) bool {
	if a.VerificationTokenIssuedAt == nil {
		return true
	}

	return now.After(a.VerificationTokenIssuedAt.Add(ttl))
}

// MarkVerified completes verification and clears the live token.
func (a *Account) MarkVerified(now time.Time) {
	verifiedAt := now
	a.EmailVerified = true
	a.VerifiedAt = &verifiedAt
	a.ConsumedVerificationTokenHash = a.VerificationTokenHash
	a.VerificationTokenHash = ""
}
