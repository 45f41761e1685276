package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finsync/config"
	"finsync/internal/delivery/http/cookie"
	apimiddleware "finsync/internal/delivery/http/middleware"
	"finsync/internal/delivery/http/response"
	"finsync/internal/delivery/http/router"
	"finsync/internal/delivery/http/router/handler"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
	"finsync/internal/infra/auth"
	"finsync/internal/infra/metrics"
	mockUC "finsync/internal/mocks/usecase"
	"finsync/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type apiFixture struct {
	echo         *echo.Echo
	accounts     *mockUC.MockAccountUsecase
	verification *mockUC.MockVerificationUsecase
	sessions     *mockUC.MockSessionUsecase
	signer       service.TokenSigner
	metrics      *metrics.Metrics
}

type envelope struct {
	Data  json.RawMessage     `json:"data"`
	Error *response.ErrorInfo `json:"error"`
	Meta  response.MetaInfo   `json:"meta"`
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	cfg := &config.Config{}
	cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
	cfg.JWT.Issuer = "finsync"
	cfg.JWT.Audience = "finsync-test"
	cfg.ApplyDefaults()
	cfg.Metrics.Enabled = true

	signer, err := auth.NewJWTSigner(cfg)
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	fx := &apiFixture{
		accounts:     mockUC.NewMockAccountUsecase(t),
		verification: mockUC.NewMockVerificationUsecase(t),
		sessions:     mockUC.NewMockSessionUsecase(t),
		signer:       signer,
		metrics:      metrics.New(),
	}

	fx.echo = NewEcho(ServerParams{
		Cfg:     cfg,
		Logger:  logger,
		Metrics: fx.metrics,
		RouterParams: router.RouterParams{
			AccountHandler: handler.NewAccountHandler(handler.AccountHandlerParams{
				AccountUC:      fx.accounts,
				VerificationUC: fx.verification,
				SessionUC:      fx.sessions,
				RefreshCookie:  cookie.NewRefreshCookie(cfg),
				Metrics:        fx.metrics,
				Logger:         logger,
			}),
			AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{Signer: signer}),
			Metrics:        fx.metrics,
			Config:         cfg,
		},
	})

	return fx
}

func (fx *apiFixture) do(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	rec := httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, req)

	var body envelope
	_ = json.Unmarshal(rec.Body.Bytes(), &body)

	return rec, body
}

func (fx *apiFixture) bearer(t *testing.T, account *entity.Account) string {
	t.Helper()

	issued, err := fx.signer.Issue(service.ClaimsFor(account))
	require.NoError(t, err)

	return "Bearer " + issued.Token
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)

	return req
}

func testAccount(role entity.Role) *entity.Account {
	return &entity.Account{
		ID:            uuid.New(),
		Name:          "Alice",
		Email:         "alice@example.com",
		PasswordHash:  "$2a$10$secret",
		Role:          role,
		EmailVerified: true,
	}
}

func testPair() usecase.TokenPair {
	now := time.Now().UTC()

	return usecase.TokenPair{
		AccessToken:           "access-token",
		AccessTokenExpiresAt:  now.Add(time.Hour),
		RefreshToken:          strings.Repeat("ab", 32),
		RefreshTokenExpiresAt: now.Add(7 * 24 * time.Hour),
	}
}

func TestAPI_Register(t *testing.T) {
	fx := newAPIFixture(t)
	account := testAccount(entity.RoleAdmin)
	account.EmailVerified = false

	fx.accounts.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{
			Name: "Alice", Email: "alice@example.com", Password: "Sup3rSecret", ConfirmPassword: "Sup3rSecret",
		}).
		Return(&usecase.RegisterOutput{Account: account, VerificationSent: true, Message: "Please verify your email."}, nil)

	req := jsonRequest(http.MethodPost, "/api/account/register",
		`{"name":"Alice","email":"alice@example.com","password":"Sup3rSecret","confirmPassword":"Sup3rSecret"}`)
	req.Header.Set("X-Request-Id", "req-123")
	rec, body := fx.do(req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "req-123", body.Meta.RequestID)

	var data handler.RegisterResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.True(t, data.Success)
	assert.True(t, data.VerificationSent)
	assert.Equal(t, "Admin", data.Account.Role)
	assert.NotContains(t, rec.Body.String(), "$2a$10$secret")
}

func TestAPI_Register_ValidationDetails(t *testing.T) {
	fx := newAPIFixture(t)

	rec, body := fx.do(jsonRequest(http.MethodPost, "/api/account/register", `{"email":"alice@example.com"}`))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	assert.NotNil(t, body.Error.Details)
	assert.NotEmpty(t, body.Meta.RequestID)
}

func TestAPI_Login_SetsRefreshCookie(t *testing.T) {
	fx := newAPIFixture(t)
	account := testAccount(entity.RoleUser)
	pair := testPair()

	fx.accounts.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Email: "alice@example.com", Password: "Sup3rSecret"}).
		Return(&usecase.LoginOutput{TokenPair: pair, Account: account}, nil)

	rec, body := fx.do(jsonRequest(http.MethodPost, "/api/account/login",
		`{"email":"alice@example.com","password":"Sup3rSecret"}`))

	require.Equal(t, http.StatusOK, rec.Code)

	var data map[string]any
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, "access-token", data["accessToken"])
	assert.NotContains(t, data, "refreshToken")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "refreshToken", cookies[0].Name)
	assert.Equal(t, pair.RefreshToken, cookies[0].Value)
	assert.Equal(t, "/api/account", cookies[0].Path)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)
}

func TestAPI_Login_Unverified(t *testing.T) {
	fx := newAPIFixture(t)

	fx.accounts.EXPECT().
		Login(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrEmailNotVerified, "login"))

	rec, body := fx.do(jsonRequest(http.MethodPost, "/api/account/login",
		`{"email":"alice@example.com","password":"Sup3rSecret"}`))

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "EMAIL_NOT_VERIFIED", body.Error.Code)
	assert.Contains(t, body.Error.Message, "verify your email")
	assert.Nil(t, body.Error.Details)
	assert.Empty(t, rec.Result().Cookies())
}

func TestAPI_RefreshToken(t *testing.T) {
	t.Run("cookie and bearer header", func(t *testing.T) {
		fx := newAPIFixture(t)
		account := testAccount(entity.RoleUser)
		pair := testPair()
		presented := strings.Repeat("cd", 32)

		fx.sessions.EXPECT().
			Renew(mock.Anything, &usecase.RenewInput{RefreshToken: presented, AccessToken: "expired-access"}).
			Return(&usecase.RenewOutput{TokenPair: pair, Account: account}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/account/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: presented})
		req.Header.Set(echo.HeaderAuthorization, "Bearer expired-access")
		rec, _ := fx.do(req)

		require.Equal(t, http.StatusOK, rec.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, pair.RefreshToken, cookies[0].Value)
	})

	t.Run("body token", func(t *testing.T) {
		fx := newAPIFixture(t)
		pair := testPair()

		fx.sessions.EXPECT().
			Renew(mock.Anything, &usecase.RenewInput{RefreshToken: "from-body"}).
			Return(&usecase.RenewOutput{TokenPair: pair, Account: testAccount(entity.RoleUser)}, nil)

		rec, _ := fx.do(jsonRequest(http.MethodPost, "/api/account/refresh-token", `{"refreshToken":"from-body"}`))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("reuse clears the cookie", func(t *testing.T) {
		fx := newAPIFixture(t)

		fx.sessions.EXPECT().
			Renew(mock.Anything, mock.Anything).
			Return(nil, errors.Wrap(domainerrors.ErrRefreshTokenReused, "renew"))

		req := httptest.NewRequest(http.MethodPost, "/api/account/refresh-token", nil)
		req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "replayed"})
		rec, body := fx.do(req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "REFRESH_TOKEN_REUSED", body.Error.Code)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Empty(t, cookies[0].Value)
	})

	t.Run("missing token", func(t *testing.T) {
		fx := newAPIFixture(t)

		rec, body := fx.do(httptest.NewRequest(http.MethodPost, "/api/account/refresh-token", nil))

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "REFRESH_TOKEN_INVALID", body.Error.Code)
	})
}

func TestAPI_VerifyEmail(t *testing.T) {
	fx := newAPIFixture(t)

	fx.verification.EXPECT().
		Confirm(mock.Anything, "a+b/c==").
		Return(&usecase.ConfirmOutput{Account: testAccount(entity.RoleUser), AlreadyVerified: true}, nil)

	rec, body := fx.do(httptest.NewRequest(http.MethodGet, "/api/account/verify-email?token=a%2Bb%2Fc%3D%3D", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var data handler.VerifyEmailResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.True(t, data.AlreadyVerified)
}

func TestAPI_VerifyEmail_Expired(t *testing.T) {
	fx := newAPIFixture(t)

	fx.verification.EXPECT().
		Confirm(mock.Anything, "old").
		Return(nil, errors.Wrap(domainerrors.ErrVerificationTokenExpired, "confirm"))

	rec, body := fx.do(httptest.NewRequest(http.MethodGet, "/api/account/verify-email?token=old", nil))

	require.Equal(t, http.StatusGone, rec.Code)
	assert.Equal(t, "VERIFICATION_TOKEN_EXPIRED", body.Error.Code)
}

func TestAPI_CheckEmailVerified(t *testing.T) {
	fx := newAPIFixture(t)

	fx.verification.EXPECT().IsVerified(mock.Anything, "bob@example.com").Return(false, nil)

	rec, body := fx.do(httptest.NewRequest(http.MethodGet, "/api/account/check-email-verified?email=bob@example.com", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"isVerified":false}`, string(body.Data))

	rec, _ = fx.do(httptest.NewRequest(http.MethodGet, "/api/account/check-email-verified", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPI_ResendVerification(t *testing.T) {
	fx := newAPIFixture(t)

	fx.verification.EXPECT().Resend(mock.Anything, "ghost@example.com").Return(nil)

	rec, _ := fx.do(jsonRequest(http.MethodPost, "/api/account/resend-verification", `{"email":"ghost@example.com"}`))

	assert.Equal(t, http.StatusAccepted, rec.Code)
}

func TestAPI_Logout(t *testing.T) {
	fx := newAPIFixture(t)

	fx.sessions.EXPECT().Logout(mock.Anything, "presented").Return(nil)

	req := httptest.NewRequest(http.MethodPost, "/api/account/logout", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "presented"})
	rec, _ := fx.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
}

func TestAPI_Authentication(t *testing.T) {
	fx := newAPIFixture(t)
	account := testAccount(entity.RoleUser)

	rec, body := fx.do(httptest.NewRequest(http.MethodGet, "/api/account/me", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ACCESS_TOKEN_MISSING", body.Error.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/account/me", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer not-a-jwt")
	rec, body = fx.do(req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "ACCESS_TOKEN_INVALID", body.Error.Code)

	fx.accounts.EXPECT().GetAccount(mock.Anything, account.ID).Return(account, nil)

	req = httptest.NewRequest(http.MethodGet, "/api/account/me", nil)
	req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, account))
	rec, body = fx.do(req)
	require.Equal(t, http.StatusOK, rec.Code)

	var data handler.AccountResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, account.ID.String(), data.ID)
}

func TestAPI_UpdateMe(t *testing.T) {
	fx := newAPIFixture(t)
	account := testAccount(entity.RoleUser)
	name := "Alicia"

	fx.accounts.EXPECT().
		UpdateProfile(mock.Anything, account.ID, &usecase.UpdateProfileInput{Name: &name}).
		Return(account, nil)

	req := jsonRequest(http.MethodPatch, "/api/account/me", `{"name":"Alicia"}`)
	req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, account))
	rec, _ := fx.do(req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAPI_Sessions(t *testing.T) {
	fx := newAPIFixture(t)
	account := testAccount(entity.RoleUser)
	now := time.Now().UTC()

	fx.sessions.EXPECT().ListSessions(mock.Anything, account.ID).Return([]*entity.RefreshToken{
		{ID: uuid.New(), AccountID: account.ID, TokenHash: "secret-hash", CreatedAt: now, ExpiresAt: now.Add(time.Hour)},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/account/sessions", nil)
	req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, account))
	rec, body := fx.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data []handler.SessionResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Len(t, data, 1)
	assert.NotContains(t, rec.Body.String(), "secret-hash")
}

func TestAPI_ListAccounts(t *testing.T) {
	fx := newAPIFixture(t)
	admin := testAccount(entity.RoleAdmin)

	fx.accounts.EXPECT().
		ListAccounts(mock.Anything, admin.ID, &usecase.ListAccountsInput{Page: 2, PageSize: 5}).
		Return(&usecase.ListAccountsOutput{Accounts: []*entity.Account{admin}, Total: 6, Page: 2, PageSize: 5}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/account/users?page=2&pageSize=5", nil)
	req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, admin))
	rec, body := fx.do(req)

	require.Equal(t, http.StatusOK, rec.Code)
	var data handler.AccountListResponse
	require.NoError(t, json.Unmarshal(body.Data, &data))
	assert.Equal(t, int64(6), data.Total)
	assert.Len(t, data.Accounts, 1)
}

func TestAPI_UpdateAccount(t *testing.T) {
	t.Run("forbidden", func(t *testing.T) {
		fx := newAPIFixture(t)
		caller := testAccount(entity.RoleUser)
		target := uuid.New()
		role := "Admin"

		fx.accounts.EXPECT().
			UpdateAccount(mock.Anything, caller.ID, target, &usecase.UpdateAccountInput{Role: &role}).
			Return(nil, errors.Wrap(domainerrors.ErrForbidden, "update account"))

		req := jsonRequest(http.MethodPatch, "/api/account/users/"+target.String(), `{"role":"Admin"}`)
		req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, caller))
		rec, body := fx.do(req)

		require.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, "FORBIDDEN", body.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		fx := newAPIFixture(t)

		req := jsonRequest(http.MethodPatch, "/api/account/users/not-a-uuid", `{}`)
		req.Header.Set(echo.HeaderAuthorization, fx.bearer(t, testAccount(entity.RoleAdmin)))
		rec, body := fx.do(req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", body.Error.Code)
	})
}

func TestAPI_UnhandledErrorIsMasked(t *testing.T) {
	fx := newAPIFixture(t)

	fx.verification.EXPECT().
		IsVerified(mock.Anything, "bob@example.com").
		Return(false, errors.New("pq: connection refused to 10.0.0.5"))

	rec, body := fx.do(httptest.NewRequest(http.MethodGet, "/api/account/check-email-verified?email=bob@example.com", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "INTERNAL_ERROR", body.Error.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestAPI_HealthAndMetrics(t *testing.T) {
	fx := newAPIFixture(t)

	rec, _ := fx.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	fx.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "finsync_http_request_duration_seconds")
}
