package impl

import (
	"context"
	"encoding/hex"
	"log/slog"
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

// sessionRetention is how long expired or revoked sessions are kept before
// PurgeExpired deletes them. Revoked rows are what reuse detection matches on.
const sessionRetention = 24 * time.Hour

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	txManager         repository.TransactionManager
	refreshTokenRepo  repository.RefreshTokenRepository
	secrets           service.SecretGenerator
	signer            service.TokenSigner
	refreshTokenTTL   time.Duration
	maxActiveSessions int
	logger            *slog.Logger
	now               func() time.Time
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	RefreshTokenRepo repository.RefreshTokenRepository
	Secrets          service.SecretGenerator
	Signer           service.TokenSigner
	Config           *config.Config
	Logger           *slog.Logger
}

// NewSessionService creates a new session service instance.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	maxActiveSessions := 0
	if params.Config.Auth != nil {
		maxActiveSessions = params.Config.Auth.MaxActiveSessions
	}

	return &sessionService{
		txManager:         params.TxManager,
		refreshTokenRepo:  params.RefreshTokenRepo,
		secrets:           params.Secrets,
		signer:            params.Signer,
		refreshTokenTTL:   params.Config.JWT.RefreshTokenTTL,
		maxActiveSessions: maxActiveSessions,
		logger:            params.Logger,
		now:               time.Now,
	}
}

func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// IssueRefreshToken creates a session. When a session limit is configured the
// oldest active sessions beyond it are revoked first.
func (srv *sessionService) IssueRefreshToken(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	account *entity.Account,
) (*usecase.IssuedRefreshToken, error) {
	now := srv.now().UTC()
	refreshRepo := repoFactory.RefreshTokenRepo()

	if srv.maxActiveSessions > 0 {
		if err := srv.enforceSessionLimit(ctx, refreshRepo, account.ID, now); err != nil {
			return nil, err
		}
	}

	return srv.createRefreshToken(ctx, refreshRepo, account.ID, now)
}

func (srv *sessionService) enforceSessionLimit(
	ctx context.Context,
	refreshRepo repository.RefreshTokenRepository,
	accountID uuid.UUID,
	now time.Time,
) error {
	active, err := refreshRepo.FindActiveByAccountID(ctx, accountID, now)
	if err != nil {
		return errors.Wrap(err, "failed to list active sessions")
	}

	// Newest first; keep room for the session about to be created.
	for i := srv.maxActiveSessions - 1; i < len(active); i++ {
		if _, err := refreshRepo.Revoke(ctx, active[i].ID, now, nil); err != nil {
			return errors.Wrap(err, "failed to revoke session over limit")
		}
		srv.log(ctx).Info("Revoked session over limit",
			slog.String("account_id", accountID.String()),
			slog.String("session_id", active[i].ID.String()),
		)
	}

	return nil
}

func (srv *sessionService) createRefreshToken(
	ctx context.Context,
	refreshRepo repository.RefreshTokenRepository,
	accountID uuid.UUID,
	now time.Time,
) (*usecase.IssuedRefreshToken, error) {
	raw, err := srv.secrets.RefreshToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate refresh token")
	}

	session := &entity.RefreshToken{
		AccountID: accountID,
		TokenHash: srv.secrets.Hash(raw),
		ExpiresAt: now.Add(srv.refreshTokenTTL),
		CreatedAt: now,
	}
	if err := refreshRepo.Create(ctx, session); err != nil {
		return nil, errors.Wrap(err, "failed to store refresh token")
	}

	return &usecase.IssuedRefreshToken{
		Token:     raw,
		ExpiresAt: session.ExpiresAt,
		Session:   session,
	}, nil
}

// Renew rotates the refresh token. Every value renews at most once; presenting
// a superseded value revokes all of the account's sessions.
func (srv *sessionService) Renew(ctx context.Context, input *usecase.RenewInput) (*usecase.RenewOutput, error) {
	srv.log(ctx).Debug("Starting token renewal")

	raw := strings.TrimSpace(input.RefreshToken)
	if !isRefreshTokenFormat(raw) {
		return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("malformed refresh token")
	}

	now := srv.now().UTC()

	stored, err := srv.refreshTokenRepo.FindByHash(ctx, srv.secrets.Hash(raw))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			srv.log(ctx).Warn("Renewal with unknown refresh token")

			return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("unknown refresh token")
		}

		return nil, errors.Wrap(err, "failed to find refresh token")
	}

	if stored.IsRevoked() {
		srv.revokeFamily(ctx, stored, now)

		return nil, domainerrors.ErrRefreshTokenReused.WrapMessage("revoked refresh token presented")
	}
	if stored.IsExpired(now) {
		return nil, domainerrors.ErrRefreshTokenExpired.WrapMessage("refresh token expired")
	}

	if accessToken := strings.TrimSpace(input.AccessToken); accessToken != "" {
		claims, err := srv.signer.ValidateIgnoringExpiry(accessToken)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "access token does not validate")
		}
		if claims.AccountID != stored.AccountID {
			srv.log(ctx).Warn("Access token subject does not own the refresh token",
				slog.String("account_id", stored.AccountID.String()))

			return nil, domainerrors.ErrRefreshTokenInvalid.WrapMessage("token owner mismatch")
		}
	}

	var (
		account *entity.Account
		issued  *usecase.IssuedRefreshToken
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		refreshRepo := repoFactory.RefreshTokenRepo()

		var txErr error
		issued, txErr = srv.createRefreshToken(ctx, refreshRepo, stored.AccountID, now)
		if txErr != nil {
			return txErr
		}

		revoked, txErr := refreshRepo.Revoke(ctx, stored.ID, now, &issued.Session.ID)
		if txErr != nil {
			return errors.Wrap(txErr, "failed to revoke rotated refresh token")
		}
		if !revoked {
			return domainerrors.ErrRefreshTokenReused.WrapMessage("refresh token rotated concurrently")
		}

		account, txErr = repoFactory.AccountRepo().FindByID(ctx, stored.AccountID)
		if txErr != nil {
			if errors.Is(txErr, repository.ErrAccountNotFound) {
				return domainerrors.ErrRefreshTokenInvalid.WrapMessage("refresh token owner no longer exists")
			}

			return errors.Wrap(txErr, "failed to load account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Token renewal failed", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to rotate refresh token")
	}

	access, err := srv.signer.Issue(service.ClaimsFor(account))
	if err != nil {
		srv.discardSession(ctx, issued.Session.ID, now)

		return nil, errors.Wrap(err, "failed to sign access token")
	}

	srv.log(ctx).Info("Token renewed", slog.String("account_id", account.ID.String()))

	return &usecase.RenewOutput{
		TokenPair: usecase.TokenPair{
			AccessToken:           access.Token,
			AccessTokenExpiresAt:  access.ExpiresAt,
			RefreshToken:          issued.Token,
			RefreshTokenExpiresAt: issued.ExpiresAt,
		},
		Account: account,
	}, nil
}

func (srv *sessionService) revokeFamily(ctx context.Context, stored *entity.RefreshToken, now time.Time) {
	count, err := srv.refreshTokenRepo.RevokeAllByAccountID(ctx, stored.AccountID, now)
	if err != nil {
		srv.log(ctx).Error("Failed to revoke sessions after refresh token reuse",
			slog.String("account_id", stored.AccountID.String()),
			slog.Any("error", err),
		)

		return
	}

	srv.log(ctx).Warn("Refresh token reuse detected, all sessions revoked",
		slog.String("account_id", stored.AccountID.String()),
		slog.String("session_id", stored.ID.String()),
		slog.Int64("revoked", count),
	)
}

// discardSession revokes a session whose access token could not be issued.
func (srv *sessionService) discardSession(ctx context.Context, sessionID uuid.UUID, now time.Time) {
	if _, err := srv.refreshTokenRepo.Revoke(ctx, sessionID, now, nil); err != nil {
		srv.log(ctx).Error("Failed to revoke orphaned session",
			slog.String("session_id", sessionID.String()),
			slog.Any("error", err),
		)
	}
}

// Logout revokes the session identified by refreshToken.
func (srv *sessionService) Logout(ctx context.Context, refreshToken string) error {
	raw := strings.TrimSpace(refreshToken)
	if !isRefreshTokenFormat(raw) {
		srv.log(ctx).Debug("Logout without a usable refresh token")

		return nil
	}

	stored, err := srv.refreshTokenRepo.FindByHash(ctx, srv.secrets.Hash(raw))
	if err != nil {
		if errors.Is(err, repository.ErrRefreshTokenNotFound) {
			return nil
		}

		return errors.Wrap(err, "failed to find refresh token")
	}

	if _, err := srv.refreshTokenRepo.Revoke(ctx, stored.ID, srv.now().UTC(), nil); err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	srv.log(ctx).Info("Logged out", slog.String("account_id", stored.AccountID.String()))

	return nil
}

// LogoutAll revokes every active session of the account.
func (srv *sessionService) LogoutAll(ctx context.Context, accountID uuid.UUID) error {
	srv.log(ctx).Info("Attempting to log out from all sessions", slog.String("account_id", accountID.String()))

	count, err := srv.refreshTokenRepo.RevokeAllByAccountID(ctx, accountID, srv.now().UTC())
	if err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke all sessions")
	}

	srv.log(ctx).Info("Logged out from all sessions",
		slog.String("account_id", accountID.String()),
		slog.Int64("revoked", count),
	)

	return nil
}

// ListSessions returns the account's active sessions.
func (srv *sessionService) ListSessions(ctx context.Context, accountID uuid.UUID) ([]*entity.RefreshToken, error) {
	sessions, err := srv.refreshTokenRepo.FindActiveByAccountID(ctx, accountID, srv.now().UTC())
	if err != nil {
		return nil, errors.Wrap(err, "failed to list sessions")
	}

	return sessions, nil
}

// PurgeExpired deletes sessions that expired or were revoked more than sessionRetention ago.
func (srv *sessionService) PurgeExpired(ctx context.Context) (int64, error) {
	cutoff := srv.now().UTC().Add(-sessionRetention)

	deleted, err := srv.refreshTokenRepo.DeleteStale(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to purge sessions")
	}

	if deleted > 0 {
		srv.log(ctx).Info("Purged stale sessions", slog.Int64("deleted", deleted))
	}

	return deleted, nil
}

// isRefreshTokenFormat accepts the 32-byte hex values issued by the SecretGenerator.
func isRefreshTokenFormat(raw string) bool {
	if len(raw) != 64 {
		return false
	}
	_, err := hex.DecodeString(raw)

	return err == nil
}
