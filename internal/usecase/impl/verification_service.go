package impl

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"finsync/config"
	deliverycontext "finsync/internal/delivery/context"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/domain/service"
	"finsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// verificationService implements the VerificationUsecase interface.
type verificationService struct {
	txManager      repository.TransactionManager
	accountRepo    repository.AccountRepository
	secrets        service.SecretGenerator
	publisher      service.EventPublisher
	tokenTTL       time.Duration
	resendCooldown time.Duration
	verifyURLBase  string
	logger         *slog.Logger
	now            func() time.Time
}

// VerificationServiceParams holds dependencies for VerificationService, injected by Fx.
type VerificationServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	AccountRepo repository.AccountRepository
	Secrets     service.SecretGenerator
	Publisher   service.EventPublisher
	Config      *config.Config
	Logger      *slog.Logger
}

// NewVerificationService is the constructor for verificationService.
func NewVerificationService(params VerificationServiceParams) usecase.VerificationUsecase {
	return &verificationService{
		txManager:      params.TxManager,
		accountRepo:    params.AccountRepo,
		secrets:        params.Secrets,
		publisher:      params.Publisher,
		tokenTTL:       params.Config.Verification.TokenTTL,
		resendCooldown: params.Config.Verification.ResendCooldown,
		verifyURLBase:  params.Config.Verification.VerifyURLBase,
		logger:         params.Logger,
		now:            time.Now,
	}
}

func (srv *verificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// StartVerification replaces any outstanding token on account with a new one.
func (srv *verificationService) StartVerification(ctx context.Context, account *entity.Account) (*usecase.VerificationTicket, error) {
	token, err := srv.secrets.VerificationToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate verification token")
	}

	issuedAt := srv.now().UTC()
	account.StartVerification(srv.secrets.Hash(token), issuedAt)

	srv.log(ctx).Debug("Verification started", slog.String("email", account.Email))

	return &usecase.VerificationTicket{
		Token:     token,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(srv.tokenTTL),
	}, nil
}

// SendVerification publishes the verification event. The token travels URL-encoded.
func (srv *verificationService) SendVerification(ctx context.Context, account *entity.Account, ticket *usecase.VerificationTicket) error {
	verifyURL, err := srv.verifyURL(ticket.Token)
	if err != nil {
		return err
	}

	event := &service.VerificationEvent{
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EventID:    uuid.NewString(),
		AccountID:  account.ID.String(),
		Email:      account.Email,
		Name:       account.Name,
		Token:      url.QueryEscape(ticket.Token),
		VerifyURL:  verifyURL,
		OccurredAt: ticket.IssuedAt,
	}

	if err := srv.publisher.PublishVerificationRequested(ctx, event); err != nil {
		return errors.Wrap(err, "failed to publish verification event")
	}

	srv.log(ctx).Info("Verification event published",
		slog.String("event_id", event.EventID),
		slog.String("account_id", event.AccountID),
	)

	return nil
}

func (srv *verificationService) verifyURL(token string) (string, error) {
	link, err := url.Parse(srv.verifyURLBase)
	if err != nil {
		return "", domainerrors.ErrConfiguration.WrapMessage("invalid verification url base")
	}

	query := link.Query()
	query.Set("token", token)
	link.RawQuery = query.Encode()

	return link.String(), nil
}

// Confirm consumes the token. A link replayed after success answers "already
// verified" while it would still have been valid; a cleared token never verifies again.
func (srv *verificationService) Confirm(ctx context.Context, rawToken string) (*usecase.ConfirmOutput, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, domainerrors.ErrVerificationTokenMissing
	}

	tokenHash := srv.secrets.Hash(decodeVerificationToken(rawToken))
	now := srv.now().UTC()

	var output *usecase.ConfirmOutput
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByVerificationTokenHash(ctx, tokenHash)
		if errors.Is(err, repository.ErrAccountNotFound) {
			output, err = srv.confirmReplay(ctx, accountRepo, tokenHash, now)

			return err
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account by verification token")
		}

		if account.VerificationExpired(now, srv.tokenTTL) {
			return domainerrors.ErrVerificationTokenExpired.WrapMessage("verification token expired")
		}

		if account.EmailVerified {
			output = &usecase.ConfirmOutput{Account: account, AlreadyVerified: true}

			return nil
		}

		if err := accountRepo.ConfirmVerification(ctx, account.ID, tokenHash, now); err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				// A concurrent confirmation consumed the token first.
				output, err = srv.confirmReplay(ctx, accountRepo, tokenHash, now)

				return err
			}

			return errors.Wrap(err, "failed to confirm verification")
		}

		account.MarkVerified(now)
		output = &usecase.ConfirmOutput{Account: account}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Email verification failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to confirm email")
	}

	srv.log(ctx).Info("Email verification confirmed",
		slog.String("account_id", output.Account.ID.String()),
		slog.Bool("already_verified", output.AlreadyVerified),
	)

	return output, nil
}

func (srv *verificationService) confirmReplay(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	tokenHash string,
	now time.Time,
) (*usecase.ConfirmOutput, error) {
	account, err := accountRepo.FindByConsumedVerificationTokenHash(ctx, tokenHash)
	if errors.Is(err, repository.ErrAccountNotFound) {
		return nil, domainerrors.ErrVerificationTokenNotFound.WrapMessage("unknown verification token")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find account by consumed verification token")
	}

	if !account.EmailVerified || account.VerificationExpired(now, srv.tokenTTL) {
		return nil, domainerrors.ErrVerificationTokenNotFound.WrapMessage("verification token no longer valid")
	}

	return &usecase.ConfirmOutput{Account: account, AlreadyVerified: true}, nil
}

// Resend replaces the outstanding token of a pending account and notifies again.
func (srv *verificationService) Resend(ctx context.Context, email string) error {
	email = entity.NormalizeEmail(email)
	if email == "" {
		return domainerrors.NewValidationError("email is required",
			domainerrors.FieldError{Field: "email", Message: "email is required"})
	}

	now := srv.now().UTC()

	var (
		pending *entity.Account
		ticket  *usecase.VerificationTicket
	)
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByEmail(ctx, email)
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "failed to find account")
		}
		if account.EmailVerified {
			return nil
		}

		if issuedAt := account.VerificationTokenIssuedAt; issuedAt != nil && now.Before(issuedAt.Add(srv.resendCooldown)) {
			return domainerrors.ErrResendTooSoon
		}

		ticket, err = srv.StartVerification(ctx, account)
		if err != nil {
			return err
		}
		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store verification token")
		}
		pending = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Resend verification failed", slog.Any("error", err))

		return errors.Wrap(err, "failed to resend verification")
	}

	if pending == nil {
		srv.log(ctx).Debug("Resend verification ignored", slog.String("email", email))

		return nil
	}

	return srv.SendVerification(ctx, pending, ticket)
}

// IsVerified reports whether the account registered with email has been verified.
func (srv *verificationService) IsVerified(ctx context.Context, email string) (bool, error) {
	account, err := srv.accountRepo.FindByEmail(ctx, entity.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return false, domainerrors.ErrAccountNotFound.WrapMessage("check email verified")
		}

		return false, errors.Wrap(err, "failed to find account")
	}

	return account.EmailVerified, nil
}

// decodeVerificationToken undoes URL encoding. Standard base64 may contain '+',
// which form decoding turns into a space, so spaces are mapped back.
func decodeVerificationToken(raw string) string {
	raw = strings.TrimSpace(raw)

	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		decoded = raw
	}

	return strings.ReplaceAll(decoded, " ", "+")
}
