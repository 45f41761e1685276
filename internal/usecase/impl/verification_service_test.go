package impl

import (
	"context"
	"net/url"
	"testing"
	"time"

	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/domain/service"
	mockRepo "finsync/internal/mocks/repository"
	mockSvc "finsync/internal/mocks/service"
	"finsync/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type verificationServiceFixtures struct {
	service     *verificationService
	txManager   *mockRepo.MockTransactionManager
	accountRepo *mockRepo.MockAccountRepository
	tx          *txRepos
	secrets     *mockSvc.MockSecretGenerator
	publisher   *mockSvc.MockEventPublisher
}

func createTestVerificationService(t *testing.T) verificationServiceFixtures {
	fx := verificationServiceFixtures{
		txManager:   mockRepo.NewMockTransactionManager(t),
		accountRepo: mockRepo.NewMockAccountRepository(t),
		tx:          newTxRepos(t),
		secrets:     mockSvc.NewMockSecretGenerator(t),
		publisher:   mockSvc.NewMockEventPublisher(t),
	}

	srv := NewVerificationService(VerificationServiceParams{
		TxManager:   fx.txManager,
		AccountRepo: fx.accountRepo,
		Secrets:     fx.secrets,
		Publisher:   fx.publisher,
		Config:      newTestConfig(),
		Logger:      newDiscardLogger(),
	}).(*verificationService)
	srv.now = fixedClock
	fx.service = srv

	return fx
}

func TestVerificationService_StartVerification(t *testing.T) {
	fx := createTestVerificationService(t)
	account := verifiedAccount("alice@example.com", entity.RoleUser)

	fx.secrets.EXPECT().VerificationToken().Return("a+b/c==", nil)
	fx.secrets.EXPECT().Hash("a+b/c==").Return("token-hash")

	ticket, err := fx.service.StartVerification(context.Background(), account)

	require.NoError(t, err)
	assert.Equal(t, "a+b/c==", ticket.Token)
	assert.Equal(t, fixedNow.Add(24*time.Hour), ticket.ExpiresAt)
	assert.Equal(t, "token-hash", account.VerificationTokenHash)
	assert.False(t, account.EmailVerified)
	require.NotNil(t, account.VerificationTokenIssuedAt)
	assert.Equal(t, fixedNow, *account.VerificationTokenIssuedAt)
}

func TestVerificationService_SendVerification_EncodesToken(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	account := pendingAccount("bob@example.com")
	ticket := &usecase.VerificationTicket{Token: "a+b/c==", IssuedAt: fixedNow}

	fx.publisher.EXPECT().
		PublishVerificationRequested(ctx, mock.MatchedBy(func(event *service.VerificationEvent) bool {
			link, err := url.Parse(event.VerifyURL)
			if err != nil {
				return false
			}

			return event.Token == "a%2Bb%2Fc%3D%3D" &&
				link.Query().Get("token") == "a+b/c==" &&
				event.Email == "bob@example.com" &&
				event.AccountID == account.ID.String() &&
				event.EventID != ""
		})).
		Return(nil)

	require.NoError(t, fx.service.SendVerification(ctx, account, ticket))
}

func TestVerificationService_SendVerification_PublishFailure(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()

	fx.publisher.EXPECT().PublishVerificationRequested(ctx, mock.Anything).Return(errors.New("unreachable"))

	err := fx.service.SendVerification(ctx, pendingAccount("bob@example.com"), &usecase.VerificationTicket{Token: "t"})

	assert.Error(t, err)
}

func TestVerificationService_Confirm_DecodesPlusAsSpace(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	account := pendingAccount("bob@example.com")

	// Form decoding already turned '+' into ' '.
	fx.secrets.EXPECT().Hash("a+b/c==").Return("live-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "live-hash").Return(account, nil)
	fx.tx.accountRepo.EXPECT().ConfirmVerification(ctx, account.ID, "live-hash", fixedNow).Return(nil)

	output, err := fx.service.Confirm(ctx, "a b/c==")

	require.NoError(t, err)
	assert.False(t, output.AlreadyVerified)
	assert.True(t, output.Account.EmailVerified)
	assert.False(t, output.Account.HasPendingVerification())
}

func TestDecodeVerificationToken(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{raw: "a%2Bb%2Fc%3D%3D", want: "a+b/c=="},
		{raw: "a+b/c==", want: "a+b/c=="},
		{raw: "a b/c==", want: "a+b/c=="},
		{raw: "a%20b", want: "a+b"},
		{raw: "bad%zzescape", want: "bad%zzescape"},
		{raw: " abc+ ", want: "abc+"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeVerificationToken(tt.raw))
		})
	}
}

func TestVerificationService_Confirm_Expired(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	account := pendingAccount("bob@example.com")
	issuedAt := fixedNow.Add(-25 * time.Hour)
	account.VerificationTokenIssuedAt = &issuedAt

	fx.secrets.EXPECT().Hash("token").Return("live-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "live-hash").Return(account, nil)

	output, err := fx.service.Confirm(ctx, "token")

	assert.Nil(t, output)
	require.ErrorIs(t, err, domainerrors.ErrVerificationTokenExpired)
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 410, appErr.HTTPCode())
	assert.False(t, account.EmailVerified)
}

func TestVerificationService_Confirm_ReplayWithinWindow(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	account := verifiedAccount("bob@example.com", entity.RoleUser)
	issuedAt := fixedNow.Add(-2 * time.Hour)
	account.VerificationTokenIssuedAt = &issuedAt
	account.ConsumedVerificationTokenHash = "used-hash"

	fx.secrets.EXPECT().Hash("token").Return("used-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "used-hash").Return(nil, repository.ErrAccountNotFound)
	fx.tx.accountRepo.EXPECT().FindByConsumedVerificationTokenHash(ctx, "used-hash").Return(account, nil)

	output, err := fx.service.Confirm(ctx, "token")

	require.NoError(t, err)
	assert.True(t, output.AlreadyVerified)
}

func TestVerificationService_Confirm_ReplayAfterWindow(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	account := verifiedAccount("bob@example.com", entity.RoleUser)
	issuedAt := fixedNow.Add(-48 * time.Hour)
	account.VerificationTokenIssuedAt = &issuedAt

	fx.secrets.EXPECT().Hash("token").Return("used-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "used-hash").Return(nil, repository.ErrAccountNotFound)
	fx.tx.accountRepo.EXPECT().FindByConsumedVerificationTokenHash(ctx, "used-hash").Return(account, nil)

	_, err := fx.service.Confirm(ctx, "token")

	assert.ErrorIs(t, err, domainerrors.ErrVerificationTokenNotFound)
}

func TestVerificationService_Confirm_ConcurrentConfirmation(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()
	pending := pendingAccount("bob@example.com")
	winner := verifiedAccount("bob@example.com", entity.RoleUser)
	winner.ID = pending.ID
	winner.VerificationTokenIssuedAt = pending.VerificationTokenIssuedAt

	fx.secrets.EXPECT().Hash("token").Return("live-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "live-hash").Return(pending, nil)
	fx.tx.accountRepo.EXPECT().
		ConfirmVerification(ctx, pending.ID, "live-hash", fixedNow).
		Return(repository.ErrAccountNotFound)
	fx.tx.accountRepo.EXPECT().FindByConsumedVerificationTokenHash(ctx, "live-hash").Return(winner, nil)

	output, err := fx.service.Confirm(ctx, "token")

	require.NoError(t, err)
	assert.True(t, output.AlreadyVerified)
}

func TestVerificationService_Confirm_NeverIssued(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()

	fx.secrets.EXPECT().Hash("forged").Return("forged-hash")
	expectTx(fx.txManager, fx.tx)
	fx.tx.accountRepo.EXPECT().FindByVerificationTokenHash(ctx, "forged-hash").Return(nil, repository.ErrAccountNotFound)
	fx.tx.accountRepo.EXPECT().FindByConsumedVerificationTokenHash(ctx, "forged-hash").Return(nil, repository.ErrAccountNotFound)

	_, err := fx.service.Confirm(ctx, "forged")

	require.ErrorIs(t, err, domainerrors.ErrVerificationTokenNotFound)
	assert.Equal(t, domainerrors.KindNotFound, domainerrors.KindOf(err))
}

func TestVerificationService_Confirm_Missing(t *testing.T) {
	fx := createTestVerificationService(t)

	_, err := fx.service.Confirm(context.Background(), "  ")

	assert.ErrorIs(t, err, domainerrors.ErrVerificationTokenMissing)
}

func TestVerificationService_Resend(t *testing.T) {
	t.Run("pending account gets a new token", func(t *testing.T) {
		fx := createTestVerificationService(t)
		ctx := context.Background()
		account := pendingAccount("bob@example.com")

		expectTx(fx.txManager, fx.tx)
		fx.tx.accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(account, nil)
		fx.secrets.EXPECT().VerificationToken().Return("fresh", nil)
		fx.secrets.EXPECT().Hash("fresh").Return("fresh-hash")
		fx.tx.accountRepo.EXPECT().
			Update(ctx, mock.MatchedBy(func(a *entity.Account) bool { return a.VerificationTokenHash == "fresh-hash" })).
			Return(nil)
		fx.publisher.EXPECT().PublishVerificationRequested(ctx, mock.AnythingOfType("*service.VerificationEvent")).Return(nil)

		require.NoError(t, fx.service.Resend(ctx, " Bob@Example.com "))
	})

	t.Run("unknown email succeeds silently", func(t *testing.T) {
		fx := createTestVerificationService(t)
		ctx := context.Background()

		expectTx(fx.txManager, fx.tx)
		fx.tx.accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound)

		require.NoError(t, fx.service.Resend(ctx, "ghost@example.com"))
	})

	t.Run("verified account succeeds silently", func(t *testing.T) {
		fx := createTestVerificationService(t)
		ctx := context.Background()

		expectTx(fx.txManager, fx.tx)
		fx.tx.accountRepo.EXPECT().
			FindByEmail(ctx, "alice@example.com").
			Return(verifiedAccount("alice@example.com", entity.RoleAdmin), nil)

		require.NoError(t, fx.service.Resend(ctx, "alice@example.com"))
	})

	t.Run("cool-down applies", func(t *testing.T) {
		fx := createTestVerificationService(t)
		ctx := context.Background()
		account := pendingAccount("bob@example.com")
		issuedAt := fixedNow.Add(-10 * time.Second)
		account.VerificationTokenIssuedAt = &issuedAt

		expectTx(fx.txManager, fx.tx)
		fx.tx.accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(account, nil)

		err := fx.service.Resend(ctx, "bob@example.com")

		assert.ErrorIs(t, err, domainerrors.ErrResendTooSoon)
	})
}

func TestVerificationService_IsVerified(t *testing.T) {
	fx := createTestVerificationService(t)
	ctx := context.Background()

	fx.accountRepo.EXPECT().FindByEmail(ctx, "bob@example.com").Return(pendingAccount("bob@example.com"), nil)
	fx.accountRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrAccountNotFound)

	verified, err := fx.service.IsVerified(ctx, "BOB@example.com")
	require.NoError(t, err)
	assert.False(t, verified)

	_, err = fx.service.IsVerified(ctx, "ghost@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}
