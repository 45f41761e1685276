package entity

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "alice@example.com", NormalizeEmail("  Alice@Example.COM "))
}

func TestAccount_VerificationLifecycle(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	account := &Account{ID: uuid.New(), Email: "alice@example.com"}

	account.StartVerification("hash-1", now)

	assert.True(t, account.HasPendingVerification())
	assert.False(t, account.EmailVerified)
	assert.False(t, account.VerificationExpired(now.Add(24*time.Hour), 24*time.Hour))
	assert.True(t, account.VerificationExpired(now.Add(24*time.Hour+time.Second), 24*time.Hour))

	account.MarkVerified(now.Add(time.Hour))

	assert.True(t, account.EmailVerified)
	require.NotNil(t, account.VerifiedAt)
	assert.False(t, account.HasPendingVerification())
	assert.Equal(t, "hash-1", account.ConsumedVerificationTokenHash)
}

func TestAccount_VerificationExpiredWithoutIssuedAt(t *testing.T) {
	account := &Account{}

	assert.True(t, account.VerificationExpired(time.Now(), time.Hour))
}

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{in: "Admin", want: RoleAdmin},
		{in: "admin", want: RoleAdmin},
		{in: " USER ", want: RoleUser},
		{in: "merchant", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRole)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleForNewAccount(t *testing.T) {
	assert.Equal(t, RoleAdmin, RoleForNewAccount(0))
	assert.Equal(t, RoleUser, RoleForNewAccount(1))
	assert.Equal(t, RoleUser, RoleForNewAccount(42))
}

func TestRefreshToken_State(t *testing.T) {
	now := time.Now()
	token := &RefreshToken{ExpiresAt: now.Add(time.Hour)}

	assert.True(t, token.IsActive(now))
	assert.True(t, token.IsExpired(now.Add(time.Hour)))

	revokedAt := now
	token.RevokedAt = &revokedAt
	assert.False(t, token.IsActive(now))
}
