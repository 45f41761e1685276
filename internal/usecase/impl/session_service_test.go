package impl

import (
	"context"
	"strings"
	"testing"
	"time"

	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/domain/service"
	mockRepo "finsync/internal/mocks/repository"
	mockSvc "finsync/internal/mocks/service"
	"finsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	presentedToken = strings.Repeat("ab", 32)
	rotatedToken   = strings.Repeat("cd", 32)
)

type sessionServiceFixtures struct {
	service     *sessionService
	txManager   *mockRepo.MockTransactionManager
	refreshRepo *mockRepo.MockRefreshTokenRepository
	tx          *txRepos
	secrets     *mockSvc.MockSecretGenerator
	signer      *mockSvc.MockTokenSigner
}

func createTestSessionService(t *testing.T, maxActiveSessions int) sessionServiceFixtures {
	fx := sessionServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		refreshRepo: mockRepo.NewMockRefreshTokenRepository(t),
		tx:          newTxRepos(t),
		secrets:     mockSvc.NewMockSecretGenerator(t),
		signer:      mockSvc.NewMockTokenSigner(t),
	}

	cfg := newTestConfig()
	cfg.Auth.MaxActiveSessions = maxActiveSessions

	srv := NewSessionService(SessionServiceParams{
		TxManager:        fx.txManager,
		RefreshTokenRepo: fx.refreshRepo,
		Secrets:          fx.secrets,
		Signer:           fx.signer,
		Config:           cfg,
		Logger:           newDiscardLogger(),
	}).(*sessionService)
	srv.now = fixedClock
	fx.service = srv

	return fx
}

func storedSession(accountID uuid.UUID) *entity.RefreshToken {
	return &entity.RefreshToken{
		ID:        uuid.New(),
		AccountID: accountID,
		TokenHash: "presented-hash",
		ExpiresAt: fixedNow.Add(time.Hour),
		CreatedAt: fixedNow.Add(-time.Hour),
	}
}

func TestSessionService_IssueRefreshToken(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	account := verifiedAccount("alice@example.com", entity.RoleUser)

	fx.secrets.EXPECT().RefreshToken().Return(rotatedToken, nil)
	fx.secrets.EXPECT().Hash(rotatedToken).Return("rotated-hash")
	fx.tx.refreshRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(token *entity.RefreshToken) bool {
			return token.AccountID == account.ID &&
				token.TokenHash == "rotated-hash" &&
				token.ExpiresAt.Equal(fixedNow.Add(7*24*time.Hour))
		})).
		Return(nil)

	issued, err := fx.service.IssueRefreshToken(ctx, fx.tx.factory, account)

	require.NoError(t, err)
	assert.Equal(t, rotatedToken, issued.Token)
	assert.Equal(t, fixedNow.Add(7*24*time.Hour), issued.ExpiresAt)
}

func TestSessionService_IssueRefreshToken_EnforcesSessionLimit(t *testing.T) {
	fx := createTestSessionService(t, 2)
	ctx := context.Background()
	account := verifiedAccount("alice@example.com", entity.RoleUser)
	active := []*entity.RefreshToken{storedSession(account.ID), storedSession(account.ID), storedSession(account.ID)}

	fx.tx.refreshRepo.EXPECT().FindActiveByAccountID(ctx, account.ID, fixedNow).Return(active, nil)
	fx.tx.refreshRepo.EXPECT().Revoke(ctx, active[1].ID, fixedNow, (*uuid.UUID)(nil)).Return(true, nil)
	fx.tx.refreshRepo.EXPECT().Revoke(ctx, active[2].ID, fixedNow, (*uuid.UUID)(nil)).Return(true, nil)
	fx.secrets.EXPECT().RefreshToken().Return(rotatedToken, nil)
	fx.secrets.EXPECT().Hash(rotatedToken).Return("rotated-hash")
	fx.tx.refreshRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)

	_, err := fx.service.IssueRefreshToken(ctx, fx.tx.factory, account)

	require.NoError(t, err)
}

func TestSessionService_Renew_RotatesOnce(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	account := verifiedAccount("alice@example.com", entity.RoleAdmin)
	stored := storedSession(account.ID)
	newID := uuid.New()

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
	expectTx(fx.txManager, fx.tx)
	fx.secrets.EXPECT().RefreshToken().Return(rotatedToken, nil)
	fx.secrets.EXPECT().Hash(rotatedToken).Return("rotated-hash")
	fx.tx.refreshRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).
		RunAndReturn(func(_ context.Context, token *entity.RefreshToken) error {
			token.ID = newID

			return nil
		})
	fx.tx.refreshRepo.EXPECT().Revoke(ctx, stored.ID, fixedNow, &newID).Return(true, nil)
	fx.tx.accountRepo.EXPECT().FindByID(ctx, account.ID).Return(account, nil)
	fx.signer.EXPECT().
		Issue(mock.MatchedBy(func(claims *service.Claims) bool { return claims.AccountID == account.ID })).
		Return(&service.IssuedToken{Token: "new-access", ExpiresAt: fixedNow.Add(time.Hour)}, nil)

	output, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken})

	require.NoError(t, err)
	assert.Equal(t, "new-access", output.AccessToken)
	assert.Equal(t, rotatedToken, output.RefreshToken)
	assert.NotEqual(t, presentedToken, output.RefreshToken)
	assert.Equal(t, account, output.Account)
}

func TestSessionService_Renew_Malformed(t *testing.T) {
	fx := createTestSessionService(t, 0)

	for _, token := range []string{"", "short", strings.Repeat("zz", 32)} {
		_, err := fx.service.Renew(context.Background(), &usecase.RenewInput{RefreshToken: token})

		require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid, token)
	}
}

func TestSessionService_Renew_Unknown(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(nil, repository.ErrRefreshTokenNotFound)

	_, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken})

	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
	assert.Equal(t, domainerrors.KindAuthentication, domainerrors.KindOf(err))
}

func TestSessionService_Renew_Expired(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	stored := storedSession(uuid.New())
	stored.ExpiresAt = fixedNow

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)

	_, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenExpired)
}

func TestSessionService_Renew_ReplayRevokesAllSessions(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	stored := storedSession(uuid.New())
	revokedAt := fixedNow.Add(-time.Minute)
	stored.RevokedAt = &revokedAt

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
	fx.refreshRepo.EXPECT().RevokeAllByAccountID(ctx, stored.AccountID, fixedNow).Return(int64(1), nil)

	_, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenReused)
}

func TestSessionService_Renew_AccessTokenOwnerMismatch(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	stored := storedSession(uuid.New())

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
	fx.signer.EXPECT().ValidateIgnoringExpiry("someone-elses-token").Return(&service.Claims{AccountID: uuid.New()}, nil)

	_, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken, AccessToken: "someone-elses-token"})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Renew_ForgedAccessToken(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	stored := storedSession(uuid.New())

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
	fx.signer.EXPECT().ValidateIgnoringExpiry("forged").Return(nil, domainerrors.ErrAccessTokenInvalid)

	_, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken, AccessToken: "forged"})

	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestSessionService_Renew_LostRace(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	stored := storedSession(uuid.New())

	fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
	fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
	expectTx(fx.txManager, fx.tx)
	fx.secrets.EXPECT().RefreshToken().Return(rotatedToken, nil)
	fx.secrets.EXPECT().Hash(rotatedToken).Return("rotated-hash")
	fx.tx.refreshRepo.EXPECT().Create(ctx, mock.AnythingOfType("*entity.RefreshToken")).Return(nil)
	fx.tx.refreshRepo.EXPECT().Revoke(ctx, stored.ID, fixedNow, mock.AnythingOfType("*uuid.UUID")).Return(false, nil)

	output, err := fx.service.Renew(ctx, &usecase.RenewInput{RefreshToken: presentedToken})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, domainerrors.ErrRefreshTokenReused)
}

func TestSessionService_Logout(t *testing.T) {
	t.Run("revokes a known token", func(t *testing.T) {
		fx := createTestSessionService(t, 0)
		ctx := context.Background()
		stored := storedSession(uuid.New())

		fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
		fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(stored, nil)
		fx.refreshRepo.EXPECT().Revoke(ctx, stored.ID, fixedNow, (*uuid.UUID)(nil)).Return(true, nil)

		assert.NoError(t, fx.service.Logout(ctx, presentedToken))
	})

	t.Run("unknown token is a no-op", func(t *testing.T) {
		fx := createTestSessionService(t, 0)
		ctx := context.Background()

		fx.secrets.EXPECT().Hash(presentedToken).Return("presented-hash")
		fx.refreshRepo.EXPECT().FindByHash(ctx, "presented-hash").Return(nil, repository.ErrRefreshTokenNotFound)

		assert.NoError(t, fx.service.Logout(ctx, presentedToken))
	})

	t.Run("missing token is a no-op", func(t *testing.T) {
		fx := createTestSessionService(t, 0)

		assert.NoError(t, fx.service.Logout(context.Background(), ""))
	})
}

func TestSessionService_LogoutAll(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()
	accountID := uuid.New()

	fx.refreshRepo.EXPECT().RevokeAllByAccountID(ctx, accountID, fixedNow).Return(int64(3), nil)

	assert.NoError(t, fx.service.LogoutAll(ctx, accountID))
}

func TestSessionService_PurgeExpired(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()

	fx.refreshRepo.EXPECT().DeleteStale(ctx, fixedNow.Add(-sessionRetention)).Return(int64(4), nil)

	deleted, err := fx.service.PurgeExpired(ctx)

	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}

func TestSessionService_PurgeExpired_Error(t *testing.T) {
	fx := createTestSessionService(t, 0)
	ctx := context.Background()

	fx.refreshRepo.EXPECT().DeleteStale(ctx, mock.Anything).Return(int64(0), errors.New("db gone"))

	_, err := fx.service.PurgeExpired(ctx)

	assert.Error(t, err)
}
