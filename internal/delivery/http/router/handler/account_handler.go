// Package handler contains the echo handlers of the account API.
package handler

import (
	"log/slog"
	"net/http"
	"strings"

	deliverycontext "finsync/internal/delivery/context"
	"finsync/internal/delivery/http/cookie"
	"finsync/internal/delivery/http/middleware"
	"finsync/internal/delivery/http/response"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/infra/metrics"
	"finsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Auth event labels reported to metrics.
const (
	eventRegister    = "register"
	eventLogin       = "login"
	eventRefresh     = "refresh"
	eventVerifyEmail = "verify_email"
	eventResend      = "resend_verification"
	eventLogout      = "logout"
	eventLogoutAll   = "logout_all"
	eventUpdateSelf  = "update_profile"
	eventUpdateOther = "update_account"
)

const (
	msgEmailVerified        = "Email verified successfully. You can now log in."
	msgEmailAlreadyVerified = "Email is already verified."
	msgResendAccepted       = "If the email belongs to an account awaiting verification, a new link has been sent."
	msgLoggedOut            = "Logged out."
	msgLoggedOutEverywhere  = "Logged out of all sessions."
)

// AccountHandlerParams holds dependencies for AccountHandler, injected by Fx.
type AccountHandlerParams struct {
	fx.In

	AccountUC      usecase.AccountUsecase
	VerificationUC usecase.VerificationUsecase
	SessionUC      usecase.SessionUsecase
	RefreshCookie  *cookie.RefreshCookie
	Metrics        *metrics.Metrics
	Logger         *slog.Logger
}

// AccountHandler serves the /api/account endpoints.
type AccountHandler struct {
	accountUC      usecase.AccountUsecase
	verificationUC usecase.VerificationUsecase
	sessionUC      usecase.SessionUsecase
	refreshCookie  *cookie.RefreshCookie
	metrics        *metrics.Metrics
	logger         *slog.Logger
}

// NewAccountHandler is the constructor for AccountHandler
func NewAccountHandler(params AccountHandlerParams) *AccountHandler {
	return &AccountHandler{
		accountUC:      params.AccountUC,
		verificationUC: params.VerificationUC,
		sessionUC:      params.SessionUC,
		refreshCookie:  params.RefreshCookie,
		metrics:        params.Metrics,
		logger:         params.Logger,
	}
}

// Register handles account registration.
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	h.metrics.AuthEvent(eventRegister, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusCreated, &RegisterResponse{
		Success:          true,
		Message:          output.Message,
		VerificationSent: output.VerificationSent,
		Account:          toAccountResponse(output.Account),
	})
}

// Login handles credential login and sets the refresh cookie.
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	h.metrics.AuthEvent(eventLogin, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.refreshCookie.Set(c, output.RefreshToken, output.RefreshTokenExpiresAt)

	return response.Success(c, http.StatusOK, toTokenResponse(&output.TokenPair, output.Account))
}

// RefreshToken rotates the presented refresh token.
func (h *AccountHandler) RefreshToken(c echo.Context) error {
	var req RefreshRequest
	if err := bindOptional(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	refreshToken := h.refreshCookie.Read(c)
	if refreshToken == "" {
		refreshToken = strings.TrimSpace(req.RefreshToken)
	}
	if refreshToken == "" {
		h.metrics.AuthEvent(eventRefresh, domainerrors.ErrRefreshTokenInvalid)

		return response.AppError(c, domainerrors.ErrRefreshTokenInvalid.WithMessage("refresh token is required"))
	}

	accessToken := strings.TrimSpace(req.AccessToken)
	if accessToken == "" {
		accessToken, _ = middleware.BearerToken(c)
	}

	output, err := h.sessionUC.Renew(c.Request().Context(), &usecase.RenewInput{
		RefreshToken: refreshToken,
		AccessToken:  accessToken,
	})
	h.metrics.AuthEvent(eventRefresh, err)
	if err != nil {
		if domainerrors.KindOf(err) == domainerrors.KindAuthentication {
			h.refreshCookie.Clear(c)
		}

		return response.HandleAppError(c, err)
	}

	h.refreshCookie.Set(c, output.RefreshToken, output.RefreshTokenExpiresAt)

	return response.Success(c, http.StatusOK, toTokenResponse(&output.TokenPair, output.Account))
}

// VerifyEmail consumes the token from a verification link.
func (h *AccountHandler) VerifyEmail(c echo.Context) error {
	output, err := h.verificationUC.Confirm(c.Request().Context(), c.QueryParam("token"))
	h.metrics.AuthEvent(eventVerifyEmail, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	message := msgEmailVerified
	if output.AlreadyVerified {
		message = msgEmailAlreadyVerified
	}

	return response.Success(c, http.StatusOK, &VerifyEmailResponse{
		Message:         message,
		AlreadyVerified: output.AlreadyVerified,
	})
}

// CheckEmailVerified reports whether an email's account has been verified.
func (h *AccountHandler) CheckEmailVerified(c echo.Context) error {
	email := strings.TrimSpace(c.QueryParam("email"))
	if email == "" {
		return response.AppError(c, domainerrors.NewValidationError("email is required",
			domainerrors.FieldError{Field: "email", Message: "is required"}))
	}

	verified, err := h.verificationUC.IsVerified(c.Request().Context(), email)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"isVerified": verified})
}

// ResendVerification sends a new verification link. The answer does not reveal
// whether the email is registered.
func (h *AccountHandler) ResendVerification(c echo.Context) error {
	var req ResendVerificationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	err := h.verificationUC.Resend(c.Request().Context(), req.Email)
	h.metrics.AuthEvent(eventResend, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusAccepted, &MessageResponse{Message: msgResendAccepted})
}

// Logout revokes the presented refresh token and clears the cookie.
func (h *AccountHandler) Logout(c echo.Context) error {
	var req RefreshRequest
	if err := bindOptional(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	refreshToken := h.refreshCookie.Read(c)
	if refreshToken == "" {
		refreshToken = strings.TrimSpace(req.RefreshToken)
	}

	err := h.sessionUC.Logout(c.Request().Context(), refreshToken)
	h.metrics.AuthEvent(eventLogout, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.refreshCookie.Clear(c)

	return response.Success(c, http.StatusOK, &MessageResponse{Message: msgLoggedOut})
}

// LogoutAll revokes every session of the caller.
func (h *AccountHandler) LogoutAll(c echo.Context) error {
	accountID, err := callerID(c)
	if err != nil {
		return err
	}

	err = h.sessionUC.LogoutAll(c.Request().Context(), accountID)
	h.metrics.AuthEvent(eventLogoutAll, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.refreshCookie.Clear(c)

	return response.Success(c, http.StatusOK, &MessageResponse{Message: msgLoggedOutEverywhere})
}

// GetMe returns the caller's account.
func (h *AccountHandler) GetMe(c echo.Context) error {
	accountID, err := callerID(c)
	if err != nil {
		return err
	}

	account, err := h.accountUC.GetAccount(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account))
}

// UpdateMe changes the caller's name or password.
func (h *AccountHandler) UpdateMe(c echo.Context) error {
	accountID, err := callerID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	account, err := h.accountUC.UpdateProfile(c.Request().Context(), accountID, &usecase.UpdateProfileInput{
		Name:            req.Name,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	h.metrics.AuthEvent(eventUpdateSelf, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account))
}

// ListSessions returns the caller's active sessions.
func (h *AccountHandler) ListSessions(c echo.Context) error {
	accountID, err := callerID(c)
	if err != nil {
		return err
	}

	sessions, err := h.sessionUC.ListSessions(c.Request().Context(), accountID)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toSessionResponses(sessions))
}

// ListAccounts returns one page of accounts to an administrator.
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}

	var req ListAccountsRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	output, err := h.accountUC.ListAccounts(c.Request().Context(), actorID, &usecase.ListAccountsInput{
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	accounts := make([]*AccountResponse, 0, len(output.Accounts))
	for _, account := range output.Accounts {
		accounts = append(accounts, toAccountResponse(account))
	}

	return response.Success(c, http.StatusOK, &AccountListResponse{
		Accounts: accounts,
		Total:    output.Total,
		Page:     output.Page,
		PageSize: output.PageSize,
	})
}

// UpdateAccount lets an administrator change another account's name, email or role.
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	actorID, err := callerID(c)
	if err != nil {
		return err
	}

	targetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.AppError(c, domainerrors.NewValidationError("invalid account id",
			domainerrors.FieldError{Field: "id", Message: "must be a UUID"}))
	}

	var req UpdateAccountRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}

	account, err := h.accountUC.UpdateAccount(c.Request().Context(), actorID, targetID, &usecase.UpdateAccountInput{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	h.metrics.AuthEvent(eventUpdateOther, err)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, toAccountResponse(account))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.NewValidationError("request could not be parsed")
	}

	return c.Validate(req)
}

// bindOptional binds a JSON body that may be absent.
func bindOptional(c echo.Context, req any) error {
	if err := (&echo.DefaultBinder{}).BindBody(c, req); err != nil {
		return domainerrors.NewValidationError("request body could not be parsed")
	}

	return nil
}

func callerID(c echo.Context) (uuid.UUID, error) {
	claims, ok := deliverycontext.GetClaims(c)
	if !ok {
		return uuid.Nil, errors.WithStack(domainerrors.ErrAccessTokenMissing)
	}

	return claims.AccountID, nil
}

func toTokenResponse(pair *usecase.TokenPair, account *entity.Account) *TokenResponse {
	return &TokenResponse{
		AccessToken:           pair.AccessToken,
		AccessTokenExpiresAt:  pair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: pair.RefreshTokenExpiresAt,
		Account:               toAccountResponse(account),
	}
}
