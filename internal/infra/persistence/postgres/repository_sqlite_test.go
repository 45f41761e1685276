package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"finsync/config"
	"finsync/internal/domain/entity"
	"finsync/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := Open(&config.DBConfig{
		Driver:     "sqlite",
		SQLitePath: filepath.Join(t.TempDir(), "finsync.db"),
	}, logger.Discard)
	require.NoError(t, err)
	require.NoError(t, Migrate(context.Background(), db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func newTestAccount(email string) *entity.Account {
	now := time.Now().UTC()
	account := &entity.Account{
		Email:        email,
		Name:         "Test",
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleUser,
	}
	account.StartVerification("hash-"+email, now)

	return account
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))
	account := newTestAccount("alice@example.com")

	require.NoError(t, repo.Create(ctx, account))
	assert.NotEqual(t, uuid.Nil, account.ID)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, byEmail.ID)
	assert.Equal(t, entity.RoleUser, byEmail.Role)
	assert.False(t, byEmail.EmailVerified)
	assert.Equal(t, "hash-alice@example.com", byEmail.VerificationTokenHash)
	assert.Empty(t, byEmail.ConsumedVerificationTokenHash)

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", byID.Email)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
}

func TestAccountRepository_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	require.NoError(t, repo.Create(ctx, newTestAccount("dup@example.com")))
	err := repo.Create(ctx, newTestAccount("dup@example.com"))

	assert.ErrorIs(t, err, repository.ErrAccountAlreadyExists)
}

func TestAccountRepository_UpdateEmailCollision(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))
	first := newTestAccount("first@example.com")
	second := newTestAccount("second@example.com")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.Email = "first@example.com"
	err := repo.Update(ctx, second)
	assert.ErrorIs(t, err, repository.ErrAccountAlreadyExists)

	second.Email = "second@example.com"
	second.Name = "Renamed"
	second.Role = entity.RoleAdmin
	require.NoError(t, repo.Update(ctx, second))

	reloaded, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.Name)
	assert.Equal(t, entity.RoleAdmin, reloaded.Role)

	missing := newTestAccount("ghost@example.com")
	missing.ID = uuid.New()
	assert.ErrorIs(t, repo.Update(ctx, missing), repository.ErrAccountNotFound)
}

func TestAccountRepository_ConfirmVerificationIsSingleUse(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))
	account := newTestAccount("verify@example.com")
	require.NoError(t, repo.Create(ctx, account))

	found, err := repo.FindByVerificationTokenHash(ctx, "hash-verify@example.com")
	require.NoError(t, err)
	assert.Equal(t, account.ID, found.ID)

	now := time.Now().UTC()
	require.NoError(t, repo.ConfirmVerification(ctx, account.ID, "hash-verify@example.com", now))
	assert.ErrorIs(t, repo.ConfirmVerification(ctx, account.ID, "hash-verify@example.com", now), repository.ErrAccountNotFound)

	_, err = repo.FindByVerificationTokenHash(ctx, "hash-verify@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)

	consumed, err := repo.FindByConsumedVerificationTokenHash(ctx, "hash-verify@example.com")
	require.NoError(t, err)
	assert.True(t, consumed.EmailVerified)
	assert.NotNil(t, consumed.VerifiedAt)
	assert.Empty(t, consumed.VerificationTokenHash)
}

func TestAccountRepository_CountAndList(t *testing.T) {
	ctx := context.Background()
	repo := NewAccountRepository(newTestDB(t))

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	admin := newTestAccount("admin@example.com")
	admin.Role = entity.RoleAdmin
	require.NoError(t, repo.Create(ctx, admin))
	for _, email := range []string{"u1@example.com", "u2@example.com"} {
		require.NoError(t, repo.Create(ctx, newTestAccount(email)))
	}

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	admins, err := repo.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, admins)

	page, total, err := repo.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, page, 1)

	all, _, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, admin.ID, all[0].ID)
}

func TestAccountRepository_LockRegistrationIsNoopOnSQLite(t *testing.T) {
	repo := NewAccountRepository(newTestDB(t))

	assert.NoError(t, repo.LockRegistration(context.Background()))
}

func TestRoleRepository_EnsureRoleIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewRoleRepository(newTestDB(t))

	exists, err := repo.Exists(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, repo.EnsureRole(ctx, entity.RoleAdmin))
	require.NoError(t, repo.EnsureRole(ctx, entity.RoleAdmin))

	exists, err = repo.Exists(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.True(t, exists)

	assert.Error(t, repo.EnsureRole(ctx, entity.Role("Owner")))
}

func newTestRefreshToken(accountID uuid.UUID, hash string, expiresAt time.Time) *entity.RefreshToken {
	return &entity.RefreshToken{
		AccountID: accountID,
		TokenHash: hash,
		ExpiresAt: expiresAt,
	}
}

func TestRefreshTokenRepository_RevokeOnce(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newTestDB(t))
	now := time.Now().UTC()
	token := newTestRefreshToken(uuid.New(), "rt-1", now.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, token))

	found, err := repo.FindByHash(ctx, "rt-1")
	require.NoError(t, err)
	assert.True(t, found.IsActive(now))

	successor := uuid.New()
	revoked, err := repo.Revoke(ctx, token.ID, now, &successor)
	require.NoError(t, err)
	assert.True(t, revoked)

	revoked, err = repo.Revoke(ctx, token.ID, now, nil)
	require.NoError(t, err)
	assert.False(t, revoked, "second revoke must not win")

	found, err = repo.FindByHash(ctx, "rt-1")
	require.NoError(t, err)
	assert.True(t, found.IsRevoked())
	require.NotNil(t, found.ReplacedByID)
	assert.Equal(t, successor, *found.ReplacedByID)

	_, err = repo.FindByHash(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRepository_ActiveSessions(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newTestDB(t))
	now := time.Now().UTC()
	accountID := uuid.New()

	live := newTestRefreshToken(accountID, "live", now.Add(time.Hour))
	expired := newTestRefreshToken(accountID, "expired", now.Add(-time.Minute))
	revoked := newTestRefreshToken(accountID, "revoked", now.Add(time.Hour))
	other := newTestRefreshToken(uuid.New(), "other", now.Add(time.Hour))
	for _, token := range []*entity.RefreshToken{live, expired, revoked, other} {
		require.NoError(t, repo.Create(ctx, token))
	}
	_, err := repo.Revoke(ctx, revoked.ID, now, nil)
	require.NoError(t, err)

	active, err := repo.FindActiveByAccountID(ctx, accountID, now)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, live.ID, active[0].ID)

	n, err := repo.RevokeAllByAccountID(ctx, accountID, now)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n, "live and expired were still unrevoked")

	active, err = repo.FindActiveByAccountID(ctx, accountID, now)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestRefreshTokenRepository_DeleteStale(t *testing.T) {
	ctx := context.Background()
	repo := NewRefreshTokenRepository(newTestDB(t))
	now := time.Now().UTC()
	accountID := uuid.New()

	keep := newTestRefreshToken(accountID, "keep", now.Add(time.Hour))
	old := newTestRefreshToken(accountID, "old", now.Add(-48*time.Hour))
	for _, token := range []*entity.RefreshToken{keep, old} {
		require.NoError(t, repo.Create(ctx, token))
	}

	deleted, err := repo.DeleteStale(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	_, err = repo.FindByHash(ctx, "old")
	assert.ErrorIs(t, err, repository.ErrRefreshTokenNotFound)
	_, err = repo.FindByHash(ctx, "keep")
	assert.NoError(t, err)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	txManager := NewTransactionManager(db)
	errBoom := errors.New("boom")

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		if err := factory.RoleRepo().EnsureRole(ctx, entity.RoleUser); err != nil {
			return err
		}
		if err := factory.AccountRepo().Create(ctx, newTestAccount("tx@example.com")); err != nil {
			return err
		}

		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	_, err = NewAccountRepository(db).FindByEmail(ctx, "tx@example.com")
	assert.ErrorIs(t, err, repository.ErrAccountNotFound)
	exists, err := NewRoleRepository(db).Exists(ctx, entity.RoleUser)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	txManager := NewTransactionManager(db)

	err := txManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return factory.AccountRepo().Create(ctx, newTestAccount("commit@example.com"))
	})
	require.NoError(t, err)

	_, err = NewAccountRepository(db).FindByEmail(ctx, "commit@example.com")
	assert.NoError(t, err)
}
