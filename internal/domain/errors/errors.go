package errors

import (
	"net/http"

	"finsync/internal/errors"
)

// Kind classifies every failure the core can report.
type Kind string

const (
	KindValidation     Kind = "validation"
	KindAuthentication Kind = "authentication"
	KindNotFound       Kind = "not_found"
	KindConfiguration  Kind = "configuration"
	KindInternal       Kind = "internal"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	Kind() Kind        // Taxonomy bucket
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() any      // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	kind      Kind
	httpCode  int
	errorCode string
	message   string
	details   any
}

// NewBaseError creates a new base error
func NewBaseError(kind Kind, httpCode int, errorCode, message string) *BaseError {
	return &BaseError{
		kind:      kind,
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

func (e *BaseError) Kind() Kind {
	return e.kind
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() any {
	return e.details
}

// Is matches on the error code so copies made by WithDetails/WithMessage
// still satisfy errors.Is against the predefined values.
func (e *BaseError) Is(target error) bool {
	t, ok := target.(*BaseError)
	if !ok {
		return false
	}

	return t.errorCode == e.errorCode
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details any) *BaseError {
	cloned := *e
	cloned.details = details

	return &cloned
}

// WithMessage replaces the user-facing message, keeping code and kind.
func (e *BaseError) WithMessage(message string) *BaseError {
	cloned := *e
	cloned.message = message

	return &cloned
}

// Predefined error types
var (
	// Validation
	ErrValidationFailed = NewBaseError(KindValidation, http.StatusBadRequest,
		"VALIDATION_FAILED", "input validation failed")

	ErrEmailAlreadyRegistered = NewBaseError(KindValidation, http.StatusConflict,
		"EMAIL_ALREADY_REGISTERED", "an account with this email already exists")

	ErrPasswordMismatch = NewBaseError(KindValidation, http.StatusBadRequest,
		"PASSWORD_MISMATCH", "password and confirmation password do not match")

	ErrPasswordStrength = NewBaseError(KindValidation, http.StatusBadRequest,
		"PASSWORD_STRENGTH", "password does not meet the strength requirements")

	ErrInvalidRole = NewBaseError(KindValidation, http.StatusBadRequest,
		"INVALID_ROLE", "role must be one of Admin, User")

	ErrLastAdmin = NewBaseError(KindValidation, http.StatusConflict,
		"LAST_ADMIN", "the last administrator cannot be demoted")

	ErrVerificationTokenExpired = NewBaseError(KindValidation, http.StatusGone,
		"VERIFICATION_TOKEN_EXPIRED", "the verification link has expired, please request a new one")

	ErrVerificationTokenMissing = NewBaseError(KindValidation, http.StatusBadRequest,
		"VERIFICATION_TOKEN_MISSING", "verification token is required")

	ErrResendTooSoon = NewBaseError(KindValidation, http.StatusTooManyRequests,
		"RESEND_TOO_SOON", "a verification email was sent recently, please wait before requesting another")

	// Authentication
	ErrInvalidCredentials = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"INVALID_CREDENTIALS", "invalid email or password")

	ErrEmailNotVerified = NewBaseError(KindAuthentication, http.StatusForbidden,
		"EMAIL_NOT_VERIFIED", "please verify your email before logging in")

	ErrAccessTokenMissing = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"ACCESS_TOKEN_MISSING", "authorization header is missing or malformed")

	ErrAccessTokenInvalid = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"ACCESS_TOKEN_INVALID", "invalid access token")

	ErrAccessTokenExpired = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"ACCESS_TOKEN_EXPIRED", "access token has expired")

	ErrRefreshTokenInvalid = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"REFRESH_TOKEN_INVALID", "invalid refresh token")

	ErrRefreshTokenExpired = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"REFRESH_TOKEN_EXPIRED", "refresh token has expired")

	ErrRefreshTokenReused = NewBaseError(KindAuthentication, http.StatusUnauthorized,
		"REFRESH_TOKEN_REUSED", "refresh token has already been used")

	ErrForbidden = NewBaseError(KindAuthentication, http.StatusForbidden,
		"FORBIDDEN", "access denied")

	// Not found
	ErrAccountNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"ACCOUNT_NOT_FOUND", "account not found")

	ErrVerificationTokenNotFound = NewBaseError(KindNotFound, http.StatusNotFound,
		"VERIFICATION_TOKEN_NOT_FOUND", "verification token not found")

	// Configuration
	ErrConfiguration = NewBaseError(KindConfiguration, http.StatusInternalServerError,
		"CONFIGURATION_ERROR", "service is misconfigured")

	// Internal
	ErrTransactionFailed = NewBaseError(KindInternal, http.StatusInternalServerError,
		"TRANSACTION_FAILED", "database transaction failed")

	ErrTokenGenerationFailed = NewBaseError(KindInternal, http.StatusInternalServerError,
		"TOKEN_GENERATION_FAILED", "failed to generate token")

	ErrPasswordHashFailed = NewBaseError(KindInternal, http.StatusInternalServerError,
		"PASSWORD_HASH_FAILED", "failed to process password")

	ErrInternalError = NewBaseError(KindInternal, http.StatusInternalServerError,
		"INTERNAL_ERROR", "internal server error, please try again later")
)

// DatabaseExecuteError represents a database execution error, implementing the AppError interface
type DatabaseExecuteError struct {
	err     error
	details string
}

// NewDatabaseExecuteError creates a database-related error
func NewDatabaseExecuteError(err error, details string) AppError {
	return &DatabaseExecuteError{
		err:     err,
		details: details,
	}
}

// Error implements the error interface
func (e *DatabaseExecuteError) Error() string {
	return errors.Wrap(e.err, "database execution failed: "+e.details).Error()
}

// Unwrap exposes the driver error for logging.
func (e *DatabaseExecuteError) Unwrap() error {
	return e.err
}

func (e *DatabaseExecuteError) Kind() Kind {
	return KindInternal
}

// HTTPCode returns the HTTP status code
func (e *DatabaseExecuteError) HTTPCode() int {
	return http.StatusInternalServerError
}

// ErrorCode returns the business error code
func (e *DatabaseExecuteError) ErrorCode() string {
	return "DATABASE_EXECUTE_FAILED"
}

// Message returns the user-friendly error message
func (e *DatabaseExecuteError) Message() string {
	return "database execution failed"
}

// Details is never exposed for internal failures.
func (e *DatabaseExecuteError) Details() any {
	return nil
}

// KindOf classifies err. Anything that is not an AppError is internal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var appErr AppError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}

	return KindInternal
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// NewValidationError builds a validation failure with a descriptive message and per-field details.
func NewValidationError(message string, fields ...FieldError) *BaseError {
	err := ErrValidationFailed.WithMessage(message)
	if len(fields) > 0 {
		err = err.WithDetails(fields)
	}

	return err
}
