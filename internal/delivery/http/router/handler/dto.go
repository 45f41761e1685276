package handler

import (
	"time"

	"finsync/internal/domain/entity"
)

// RegisterRequest is the body of POST /register.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,max=100"`
	Email           string `json:"email" validate:"required"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// LoginRequest is the body of POST /login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest is the optional body of POST /refresh-token and POST /logout.
// Browsers send the refresh token as a cookie instead.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
	AccessToken  string `json:"accessToken"`
}

// ResendVerificationRequest is the body of POST /resend-verification.
type ResendVerificationRequest struct {
	Email string `json:"email" validate:"required"`
}

// UpdateProfileRequest is the body of PATCH /me.
type UpdateProfileRequest struct {
	Name            *string `json:"name" validate:"omitempty,max=100"`
	CurrentPassword string  `json:"currentPassword"`
	NewPassword     string  `json:"newPassword"`
}

// UpdateAccountRequest is the body of PATCH /users/:id.
type UpdateAccountRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=100"`
	Email *string `json:"email"`
	Role  *string `json:"role"`
}

// ListAccountsRequest is the query of GET /users.
type ListAccountsRequest struct {
	Page     int `query:"page" validate:"omitempty,min=1"`
	PageSize int `query:"pageSize" validate:"omitempty,min=1"`
}

// AccountResponse is the public view of an account. The password hash and
// verification state other than the flag never leave the service.
type AccountResponse struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Email         string     `json:"email"`
	Role          string     `json:"role"`
	EmailVerified bool       `json:"emailVerified"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// RegisterResponse is returned by POST /register.
type RegisterResponse struct {
	Success          bool             `json:"success"`
	Message          string           `json:"message"`
	VerificationSent bool             `json:"verificationSent"`
	Account          *AccountResponse `json:"account"`
}

// TokenResponse is returned by login and refresh. The refresh token itself
// travels only in the cookie.
type TokenResponse struct {
	AccessToken           string           `json:"accessToken"`
	AccessTokenExpiresAt  time.Time        `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time        `json:"refreshTokenExpiresAt"`
	Account               *AccountResponse `json:"account"`
}

// VerifyEmailResponse is returned by GET /verify-email.
type VerifyEmailResponse struct {
	Message         string `json:"message"`
	AlreadyVerified bool   `json:"alreadyVerified"`
}

// SessionResponse describes one active refresh token.
type SessionResponse struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AccountListResponse is one page of GET /users.
type AccountListResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
}

// MessageResponse carries a human-readable outcome.
type MessageResponse struct {
	Message string `json:"message"`
}

func toAccountResponse(account *entity.Account) *AccountResponse {
	return &AccountResponse{
		ID:            account.ID.String(),
		Name:          account.Name,
		Email:         account.Email,
		Role:          account.Role.String(),
		EmailVerified: account.EmailVerified,
		VerifiedAt:    account.VerifiedAt,
		CreatedAt:     account.CreatedAt,
		UpdatedAt:     account.UpdatedAt,
	}
}

func toSessionResponses(sessions []*entity.RefreshToken) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		out = append(out, &SessionResponse{
			ID:        session.ID.String(),
			CreatedAt: session.CreatedAt,
			ExpiresAt: session.ExpiresAt,
		})
	}

	return out
}
