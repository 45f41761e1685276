package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"finsync/config"
	"finsync/internal/domain/entity"
	"finsync/internal/domain/repository"
	mockRepo "finsync/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.Issuer = "finsync"
	cfg.JWT.Audience = "finsync-test"
	cfg.ApplyDefaults()

	return cfg
}

// txRepos are the repositories a mocked transaction hands to its callback.
type txRepos struct {
	factory     *mockRepo.MockRepositoryFactory
	accountRepo *mockRepo.MockAccountRepository
	refreshRepo *mockRepo.MockRefreshTokenRepository
	roleRepo    *mockRepo.MockRoleRepository
}

func newTxRepos(t *testing.T) *txRepos {
	repos := &txRepos{
		factory:     mockRepo.NewMockRepositoryFactory(t),
		accountRepo: mockRepo.NewMockAccountRepository(t),
		refreshRepo: mockRepo.NewMockRefreshTokenRepository(t),
		roleRepo:    mockRepo.NewMockRoleRepository(t),
	}
	repos.factory.EXPECT().AccountRepo().Return(repos.accountRepo).Maybe()
	repos.factory.EXPECT().RefreshTokenRepo().Return(repos.refreshRepo).Maybe()
	repos.factory.EXPECT().RoleRepo().Return(repos.roleRepo).Maybe()

	return repos
}

// expectTx makes every Execute call run its callback against repos.
func expectTx(txManager *mockRepo.MockTransactionManager, repos *txRepos) {
	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(repos.factory)
		})
}

func pendingAccount(email string) *entity.Account {
	issuedAt := fixedNow.Add(-time.Hour)

	return &entity.Account{
		ID:                        uuid.New(),
		Email:                     email,
		Name:                      "Pending",
		PasswordHash:              "stored-hash",
		Role:                      entity.RoleUser,
		VerificationTokenHash:     "live-hash",
		VerificationTokenIssuedAt: &issuedAt,
	}
}

func verifiedAccount(email string, role entity.Role) *entity.Account {
	verifiedAt := fixedNow.Add(-time.Hour)

	return &entity.Account{
		ID:            uuid.New(),
		Email:         email,
		Name:          "Verified",
		PasswordHash:  "stored-hash",
		Role:          role,
		EmailVerified: true,
		VerifiedAt:    &verifiedAt,
	}
}
