package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"github.com/pkg/errors"

	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
)

const (
	refreshTokenBytes      = 32
	verificationTokenBytes = 64
)

type secretGenerator struct{}

// NewSecretGenerator returns the crypto/rand backed SecretGenerator.
func NewSecretGenerator() service.SecretGenerator {
	return secretGenerator{}
}

func (secretGenerator) RefreshToken() (string, error) {
	buf, err := randomBytes(refreshTokenBytes)
	if err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}

// VerificationToken uses standard base64, so the value must be URL-encoded before it goes into a link.
func (secretGenerator) VerificationToken() (string, error) {
	buf, err := randomBytes(verificationTokenBytes)
	if err != nil {
		return "", err
	}

	return base64.StdEncoding.EncodeToString(buf), nil
}

// Hash is a SHA-256 hex digest. Secrets carry enough entropy that no salt or stretching is needed.
func (secretGenerator) Hash(secret string) string {
	sum := sha256.Sum256([]byte(secret))

	return hex.EncodeToString(sum[:])
}

func randomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	return buf, nil
}
