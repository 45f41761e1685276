package auth

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"finsync/config"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
)

// forbiddenPasswordWords are rejected anywhere in a password, case-insensitively.
var forbiddenPasswordWords = []string{"password", "qwerty", "letmein", "admin", "123456"}

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
type bcryptHasher struct {
	cost   int
	policy config.PasswordStrengthConfig
}

// NewBcryptHasher builds a hasher from the auth and password policy settings.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	policy := defaultPolicy()
	if cfg.PasswordStrength != nil {
		policy = *cfg.PasswordStrength
	}

	return newBcryptHasher(cost, policy)
}

// NewBcryptHasherWithCost creates a hasher with a custom cost and the default policy.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, defaultPolicy())
}

func newBcryptHasher(cost int, policy config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

func defaultPolicy() config.PasswordStrengthConfig {
	return config.PasswordStrengthConfig{
		MinLength:        8,
		MaxLength:        128,
		RequireUppercase: true,
		RequireLowercase: true,
		RequireNumbers:   true,
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt automatically handles salt generation.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	// err is nil if the password and hash match.
	return err == nil
}

// ValidatePasswordStrength applies the configured policy and reports the first rule broken.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	length := utf8.RuneCountInString(password)
	if h.policy.MinLength > 0 && length < h.policy.MinLength {
		return weakPassword(fmt.Sprintf("password must be at least %d characters long", h.policy.MinLength))
	}
	if h.policy.MaxLength > 0 && length > h.policy.MaxLength {
		return weakPassword(fmt.Sprintf("password must be at most %d characters long", h.policy.MaxLength))
	}
	// bcrypt only looks at the first 72 bytes.
	if len(password) > 72 {
		return weakPassword("password must be at most 72 bytes long")
	}
	if h.policy.RequireLowercase && !hasLowercase(password) {
		return weakPassword("password must contain at least one lowercase letter")
	}
	if h.policy.RequireUppercase && !hasUppercase(password) {
		return weakPassword("password must contain at least one uppercase letter")
	}
	if h.policy.RequireNumbers && !hasNumbers(password) {
		return weakPassword("password must contain at least one number")
	}
	if h.policy.RequireSpecial && !hasSpecialChars(password) {
		return weakPassword("password must contain at least one special character")
	}
	if containsForbiddenWords(password) {
		return weakPassword("password contains forbidden words")
	}

	return nil
}

func weakPassword(message string) error {
	return domainerrors.ErrPasswordStrength.WithMessage(message)
}

func hasUppercase(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}

	return false
}

func hasLowercase(s string) bool {
	for _, r := range s {
		if unicode.IsLower(r) {
			return true
		}
	}

	return false
}

func hasNumbers(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}

	return false
}

func hasSpecialChars(s string) bool {
	for _, r := range s {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return true
		}
	}

	return false
}

func containsForbiddenWords(s string) bool {
	lower := strings.ToLower(s)
	for _, word := range forbiddenPasswordWords {
		if strings.Contains(lower, word) {
			return true
		}
	}

	return false
}
