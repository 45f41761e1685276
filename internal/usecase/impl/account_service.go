// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	deliverycontext "finsync/internal/delivery/context"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/repository"
	"finsync/internal/domain/service"
	"finsync/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	maxNameLength = 100

	defaultPageSize = 20
	maxPageSize     = 100

	registrationMessage = "Registration successful. Please verify your email to activate your account."
	// Shown when the account exists but the verification mail could not be queued.
	registrationMessageUnsent = "Registration successful, but the verification email could not be sent. " +
		"Please request a new one with resend verification."

	// Compared against when the email is unknown so the response time does not reveal it.
	dummyPassword = "finsync-dummy-password"
)

// Steps of an administrative account update, reported when one fails.
const (
	stepIdentity     = "identity"
	stepRole         = "role"
	stepVerification = "verification"
)

// accountService implements the AccountUsecase interface.
type accountService struct {
	txManager        repository.TransactionManager
	accountRepo      repository.AccountRepository
	refreshTokenRepo repository.RefreshTokenRepository
	hasher           service.PasswordHasher
	signer           service.TokenSigner
	verification     usecase.VerificationUsecase
	sessions         usecase.SessionUsecase
	validate         *validator.Validate
	logger           *slog.Logger
	now              func() time.Time

	dummyHashOnce sync.Once
	dummyHash     string
}

// AccountServiceParams holds dependencies for AccountService, injected by Fx.
type AccountServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	AccountRepo      repository.AccountRepository
	RefreshTokenRepo repository.RefreshTokenRepository
	Hasher           service.PasswordHasher
	Signer           service.TokenSigner
	Verification     usecase.VerificationUsecase
	Sessions         usecase.SessionUsecase
	Logger           *slog.Logger
}

// NewAccountService is the constructor for accountService. It receives all dependencies as interfaces.
func NewAccountService(params AccountServiceParams) usecase.AccountUsecase {
	return &accountService{
		txManager:        params.TxManager,
		accountRepo:      params.AccountRepo,
		refreshTokenRepo: params.RefreshTokenRepo,
		hasher:           params.Hasher,
		signer:           params.Signer,
		verification:     params.Verification,
		sessions:         params.Sessions,
		validate:         validator.New(),
		logger:           params.Logger,
		now:              time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *accountService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a pending account. The first account ever created becomes Admin.
func (srv *accountService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	name := strings.TrimSpace(input.Name)
	email := entity.NormalizeEmail(input.Email)

	srv.log(ctx).Info("Starting registration", slog.String("email", email))

	if err := srv.validateRegistration(name, email, input); err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.String("email", email), slog.Any("error", err))

		return nil, err
	}

	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}

	var ticket *usecase.VerificationTicket
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := accountRepo.LockRegistration(ctx); err != nil {
			return errors.Wrap(err, "failed to lock registration")
		}

		if _, err := accountRepo.FindByEmail(ctx, email); err == nil {
			return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
		} else if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check email")
		}

		count, err := accountRepo.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to count accounts")
		}
		account.Role = entity.RoleForNewAccount(count)

		if err := repoFactory.RoleRepo().EnsureRole(ctx, account.Role); err != nil {
			return errors.Wrap(err, "failed to ensure role")
		}

		ticket, err = srv.verification.StartVerification(ctx, account)
		if err != nil {
			return err
		}

		if err := accountRepo.Create(ctx, account); err != nil {
			if errors.Is(err, repository.ErrAccountAlreadyExists) {
				return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
			}

			return errors.Wrap(err, "failed to create account")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Registration failed", slog.String("email", email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute registration transaction")
	}

	output := &usecase.RegisterOutput{
		Account:          account,
		VerificationSent: true,
		Message:          registrationMessage,
	}

	if err := srv.verification.SendVerification(ctx, account, ticket); err != nil {
		srv.log(ctx).Error("Verification email not sent after registration",
			slog.String("account_id", account.ID.String()),
			slog.Any("error", err),
		)
		output.VerificationSent = false
		output.Message = registrationMessageUnsent
	}

	srv.log(ctx).Info("Registration completed",
		slog.String("account_id", account.ID.String()),
		slog.String("role", account.Role.String()),
	)

	return output, nil
}

func (srv *accountService) validateRegistration(name, email string, input *usecase.RegisterInput) error {
	fields := append(srv.validateName(name), srv.validateEmail(email)...)
	if len(fields) > 0 {
		return newFieldsError(fields)
	}

	if input.Password != input.ConfirmPassword {
		return domainerrors.ErrPasswordMismatch.WithDetails([]domainerrors.FieldError{
			{Field: "confirmPassword", Message: "must match password"},
		})
	}

	if err := srv.hasher.ValidatePasswordStrength(input.Password); err != nil {
		return withFieldDetail(err, "password")
	}

	return nil
}

func (srv *accountService) validateName(name string) []domainerrors.FieldError {
	if name == "" || utf8.RuneCountInString(name) > maxNameLength {
		return []domainerrors.FieldError{{Field: "name", Message: "name must be between 1 and 100 characters"}}
	}

	return nil
}

func (srv *accountService) validateEmail(email string) []domainerrors.FieldError {
	if err := srv.validate.Var(email, "required,email,max=254"); err != nil {
		return []domainerrors.FieldError{{Field: "email", Message: "email must be a valid email address"}}
	}

	return nil
}

// Login checks credentials and issues an access token with a refresh token.
func (srv *accountService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	email := entity.NormalizeEmail(input.Email)
	srv.log(ctx).Debug("Starting login process", slog.String("email", email))

	account, err := srv.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			srv.hasher.Check(input.Password, srv.getDummyHash())
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	if !account.EmailVerified {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "email not verified"))

		return nil, domainerrors.ErrEmailNotVerified.WrapMessage("login failed")
	}

	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "wrong password"))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("login failed")
	}

	var issued *usecase.IssuedRefreshToken
	if err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		var issueErr error
		issued, issueErr = srv.sessions.IssueRefreshToken(ctx, repoFactory, account)

		return issueErr
	}); err != nil {
		srv.log(ctx).Error("Failed to issue refresh token", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute login transaction")
	}

	access, err := srv.signer.Issue(service.ClaimsFor(account))
	if err != nil {
		if _, revokeErr := srv.refreshTokenRepo.Revoke(ctx, issued.Session.ID, srv.now().UTC(), nil); revokeErr != nil {
			srv.log(ctx).Error("Failed to revoke orphaned session", slog.Any("error", revokeErr))
		}

		return nil, errors.Wrap(err, "failed to sign access token")
	}

	srv.log(ctx).Info("Login successful", slog.String("account_id", account.ID.String()))

	return &usecase.LoginOutput{
		TokenPair: usecase.TokenPair{
			AccessToken:           access.Token,
			AccessTokenExpiresAt:  access.ExpiresAt,
			RefreshToken:          issued.Token,
			RefreshTokenExpiresAt: issued.ExpiresAt,
		},
		Account: account,
	}, nil
}

func (srv *accountService) getDummyHash() string {
	srv.dummyHashOnce.Do(func() {
		hash, err := srv.hasher.Hash(dummyPassword)
		if err != nil {
			srv.logger.Error("Failed to prepare dummy password hash", slog.Any("error", err))

			return
		}
		srv.dummyHash = hash
	})

	return srv.dummyHash
}

// GetAccount returns the account with accountID.
func (srv *accountService) GetAccount(ctx context.Context, accountID uuid.UUID) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, domainerrors.ErrAccountNotFound.WrapMessage("get account")
		}

		return nil, errors.Wrap(err, "failed to find account")
	}

	return account, nil
}

// UpdateProfile applies the owner's own changes. A password change revokes every session.
func (srv *accountService) UpdateProfile(
	ctx context.Context,
	accountID uuid.UUID,
	input *usecase.UpdateProfileInput,
) (*entity.Account, error) {
	changePassword := input.NewPassword != "" || input.CurrentPassword != ""
	if input.Name == nil && !changePassword {
		return nil, domainerrors.NewValidationError("nothing to update")
	}

	var name string
	if input.Name != nil {
		name = strings.TrimSpace(*input.Name)
		if fields := srv.validateName(name); len(fields) > 0 {
			return nil, newFieldsError(fields)
		}
	}

	var newHash string
	if changePassword {
		hash, err := srv.preparePasswordChange(ctx, accountID, input)
		if err != nil {
			return nil, err
		}
		newHash = hash
	}

	var updated *entity.Account
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("update profile")
			}

			return errors.Wrap(err, "failed to find account")
		}

		if input.Name != nil {
			account.Name = name
		}
		if newHash != "" {
			account.PasswordHash = newHash
		}
		account.UpdatedAt = srv.now().UTC()

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to update account")
		}

		if newHash != "" {
			if _, err := repoFactory.RefreshTokenRepo().RevokeAllByAccountID(ctx, accountID, account.UpdatedAt); err != nil {
				return errors.Wrap(err, "failed to revoke sessions")
			}
		}
		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.String("account_id", accountID.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to update profile")
	}

	srv.log(ctx).Info("Profile updated",
		slog.String("account_id", accountID.String()),
		slog.Bool("password_changed", newHash != ""),
	)

	return updated, nil
}

// preparePasswordChange verifies the current password and hashes the new one.
func (srv *accountService) preparePasswordChange(
	ctx context.Context,
	accountID uuid.UUID,
	input *usecase.UpdateProfileInput,
) (string, error) {
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return "", domainerrors.NewValidationError("current and new password are both required",
			domainerrors.FieldError{Field: "currentPassword", Message: "required to change the password"},
			domainerrors.FieldError{Field: "newPassword", Message: "required to change the password"},
		)
	}

	account, err := srv.GetAccount(ctx, accountID)
	if err != nil {
		return "", err
	}

	if !srv.hasher.Check(input.CurrentPassword, account.PasswordHash) {
		return "", domainerrors.NewValidationError("current password is incorrect",
			domainerrors.FieldError{Field: "currentPassword", Message: "current password is incorrect"})
	}

	if err := srv.hasher.ValidatePasswordStrength(input.NewPassword); err != nil {
		return "", withFieldDetail(err, "newPassword")
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return "", errors.Wrap(err, "failed to hash password")
	}

	return hash, nil
}

// UpdateAccount is the administrative update of another account's name, email or role.
// Everything is applied in one transaction; a failure names the step that failed.
func (srv *accountService) UpdateAccount(
	ctx context.Context,
	actorID, targetID uuid.UUID,
	input *usecase.UpdateAccountInput,
) (*entity.Account, error) {
	if input.Name == nil && input.Email == nil && input.Role == nil {
		return nil, domainerrors.NewValidationError("nothing to update")
	}

	changes, err := srv.parseAccountChanges(input)
	if err != nil {
		return nil, err
	}

	var (
		updated *entity.Account
		ticket  *usecase.VerificationTicket
		step    string
	)
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if err := requireAdmin(ctx, accountRepo, actorID); err != nil {
			return err
		}

		target, err := accountRepo.FindByID(ctx, targetID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound.WrapMessage("update account")
			}

			return errors.Wrap(err, "failed to find account")
		}

		step = stepIdentity
		emailChanged, err := srv.applyIdentityChanges(ctx, accountRepo, target, changes)
		if err != nil {
			return err
		}

		step = stepRole
		if err := srv.applyRoleChange(ctx, repoFactory, target, changes.role); err != nil {
			return err
		}

		step = stepVerification
		now := srv.now().UTC()
		if emailChanged {
			ticket, err = srv.verification.StartVerification(ctx, target)
			if err != nil {
				return err
			}
			if _, err := repoFactory.RefreshTokenRepo().RevokeAllByAccountID(ctx, target.ID, now); err != nil {
				return errors.Wrap(err, "failed to revoke sessions")
			}
		}

		step = stepIdentity
		target.UpdatedAt = now
		if err := accountRepo.Update(ctx, target); err != nil {
			if errors.Is(err, repository.ErrAccountAlreadyExists) {
				return domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
			}

			return errors.Wrap(err, "failed to update account")
		}
		updated = target

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Account update failed",
			slog.String("target_id", targetID.String()),
			slog.String("step", step),
			slog.Any("error", err),
		)
		if step == "" {
			return nil, errors.Wrap(err, "failed to update account")
		}

		return nil, errors.Wrapf(err, "failed to update account at step=%s", step)
	}

	if ticket != nil {
		if err := srv.verification.SendVerification(ctx, updated, ticket); err != nil {
			srv.log(ctx).Error("Verification email not sent after email change",
				slog.String("account_id", updated.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	srv.log(ctx).Info("Account updated",
		slog.String("actor_id", actorID.String()),
		slog.String("target_id", targetID.String()),
	)

	return updated, nil
}

type accountChanges struct {
	name  *string
	email *string
	role  *entity.Role
}

func (srv *accountService) parseAccountChanges(input *usecase.UpdateAccountInput) (*accountChanges, error) {
	changes := &accountChanges{}
	var fields []domainerrors.FieldError

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		fields = append(fields, srv.validateName(name)...)
		changes.name = &name
	}
	if input.Email != nil {
		email := entity.NormalizeEmail(*input.Email)
		fields = append(fields, srv.validateEmail(email)...)
		changes.email = &email
	}
	if len(fields) > 0 {
		return nil, newFieldsError(fields)
	}

	if input.Role != nil {
		role, err := entity.ParseRole(*input.Role)
		if err != nil {
			return nil, domainerrors.ErrInvalidRole.WithDetails([]domainerrors.FieldError{
				{Field: "role", Message: "role must be one of Admin, User"},
			})
		}
		changes.role = &role
	}

	return changes, nil
}

func (srv *accountService) applyIdentityChanges(
	ctx context.Context,
	accountRepo repository.AccountRepository,
	target *entity.Account,
	changes *accountChanges,
) (bool, error) {
	if changes.name != nil {
		target.Name = *changes.name
	}

	if changes.email == nil || *changes.email == target.Email {
		return false, nil
	}

	existing, err := accountRepo.FindByEmail(ctx, *changes.email)
	if err == nil && existing.ID != target.ID {
		return false, domainerrors.ErrEmailAlreadyRegistered.WrapMessage("email already registered")
	}
	if err != nil && !errors.Is(err, repository.ErrAccountNotFound) {
		return false, errors.Wrap(err, "failed to check email")
	}
	target.Email = *changes.email

	return true, nil
}

func (srv *accountService) applyRoleChange(
	ctx context.Context,
	repoFactory repository.RepositoryFactory,
	target *entity.Account,
	role *entity.Role,
) error {
	if role == nil || *role == target.Role {
		return nil
	}

	if target.IsAdmin() {
		admins, err := repoFactory.AccountRepo().CountByRole(ctx, entity.RoleAdmin)
		if err != nil {
			return errors.Wrap(err, "failed to count administrators")
		}
		if admins <= 1 {
			return domainerrors.ErrLastAdmin
		}
	}

	if err := repoFactory.RoleRepo().EnsureRole(ctx, *role); err != nil {
		return errors.Wrap(err, "failed to ensure role")
	}
	target.Role = *role

	return nil
}

// ListAccounts returns a page of accounts ordered by creation. Admin only.
func (srv *accountService) ListAccounts(
	ctx context.Context,
	actorID uuid.UUID,
	input *usecase.ListAccountsInput,
) (*usecase.ListAccountsOutput, error) {
	if err := requireAdmin(ctx, srv.accountRepo, actorID); err != nil {
		return nil, err
	}

	page := max(input.Page, 1)
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageSize = min(pageSize, maxPageSize)

	accounts, total, err := srv.accountRepo.List(ctx, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list accounts")
	}

	return &usecase.ListAccountsOutput{
		Accounts: accounts,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// requireAdmin checks the actor's stored role, not the one in their token.
func requireAdmin(ctx context.Context, accountRepo repository.AccountRepository, actorID uuid.UUID) error {
	actor, err := accountRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return domainerrors.ErrForbidden.WrapMessage("actor not found")
		}

		return errors.Wrap(err, "failed to find actor")
	}
	if !actor.IsAdmin() {
		return domainerrors.ErrForbidden.WrapMessage("admin role required")
	}

	return nil
}

func newFieldsError(fields []domainerrors.FieldError) error {
	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field.Message)
	}

	return domainerrors.NewValidationError(strings.Join(messages, "; "), fields...)
}

// withFieldDetail attaches field to a policy error so clients can highlight the input.
func withFieldDetail(err error, field string) error {
	var baseErr *domainerrors.BaseError
	if errors.As(err, &baseErr) {
		return baseErr.WithDetails([]domainerrors.FieldError{{Field: field, Message: baseErr.Message()}})
	}

	return err
}
