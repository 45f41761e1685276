package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsync/config"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:         testSecret,
		Issuer:         "finsync",
		Audience:       "finsync-web",
		AccessTokenTTL: time.Hour,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func testClaims() *service.Claims {
	return &service.Claims{
		AccountID: uuid.New(),
		Name:      "Alice",
		Email:     "alice@example.com",
		Role:      entity.RoleAdmin,
	}
}

func TestNewJWTSigner_RequiresSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.JWTConfig)
	}{
		{name: "missing secret", mutate: func(c *config.JWTConfig) { c.Secret = "" }},
		{name: "missing issuer", mutate: func(c *config.JWTConfig) { c.Issuer = " " }},
		{name: "missing audience", mutate: func(c *config.JWTConfig) { c.Audience = "" }},
		{name: "short secret", mutate: func(c *config.JWTConfig) { c.Secret = "short" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testJWTConfig()
			tt.mutate(&cfg)

			signer, err := newJWTSigner(cfg, time.Now)

			assert.Nil(t, signer)
			assert.Equal(t, domainerrors.KindConfiguration, domainerrors.KindOf(err))
		})
	}
}

func TestJWTSigner_IssueAndValidate(t *testing.T) {
	signer, err := newJWTSigner(testJWTConfig(), time.Now)
	require.NoError(t, err)
	claims := testClaims()

	issued, err := signer.Issue(claims)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.Token)
	assert.NotEmpty(t, issued.Claims.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), issued.ExpiresAt, 2*time.Second)

	validated, err := signer.Validate(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, claims.AccountID, validated.AccountID)
	assert.Equal(t, "Alice", validated.Name)
	assert.Equal(t, "alice@example.com", validated.Email)
	assert.Equal(t, entity.RoleAdmin, validated.Role)
	assert.Equal(t, issued.Claims.TokenID, validated.TokenID)
}

func TestJWTSigner_IssueRequiresSubject(t *testing.T) {
	signer, err := newJWTSigner(testJWTConfig(), time.Now)
	require.NoError(t, err)

	_, err = signer.Issue(&service.Claims{Role: entity.RoleUser})

	assert.ErrorIs(t, err, domainerrors.ErrTokenGenerationFailed)
}

func TestJWTSigner_ExpiredToken(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	issuer, err := newJWTSigner(testJWTConfig(), fixedClock(past))
	require.NoError(t, err)
	verifier, err := newJWTSigner(testJWTConfig(), time.Now)
	require.NoError(t, err)

	claims := testClaims()
	issued, err := issuer.Issue(claims)
	require.NoError(t, err)

	_, err = verifier.Validate(issued.Token)
	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenExpired)

	validated, err := verifier.ValidateIgnoringExpiry(issued.Token)
	require.NoError(t, err)
	assert.Equal(t, claims.AccountID, validated.AccountID)
}

func TestJWTSigner_RejectsForeignTokens(t *testing.T) {
	signer, err := newJWTSigner(testJWTConfig(), time.Now)
	require.NoError(t, err)
	claims := testClaims()

	otherSecret := testJWTConfig()
	otherSecret.Secret = "fedcba9876543210fedcba9876543210"
	forger, err := newJWTSigner(otherSecret, time.Now)
	require.NoError(t, err)
	forged, err := forger.Issue(claims)
	require.NoError(t, err)

	otherIssuer := testJWTConfig()
	otherIssuer.Issuer = "someone-else"
	foreignIssuer, err := newJWTSigner(otherIssuer, time.Now)
	require.NoError(t, err)
	wrongIssuer, err := foreignIssuer.Issue(claims)
	require.NoError(t, err)

	otherAudience := testJWTConfig()
	otherAudience.Audience = "mobile"
	foreignAudience, err := newJWTSigner(otherAudience, time.Now)
	require.NoError(t, err)
	wrongAudience, err := foreignAudience.Issue(claims)
	require.NoError(t, err)

	registered := jwt.RegisteredClaims{
		Subject:   claims.AccountID.String(),
		Issuer:    "finsync",
		Audience:  jwt.ClaimStrings{"finsync-web"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, accessClaims{Role: "Admin", RegisteredClaims: registered}).
		SignedString([]byte(testSecret))
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, accessClaims{Role: "Admin", RegisteredClaims: registered}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tokens := map[string]string{
		"empty":          "",
		"garbage":        "not-a-jwt",
		"wrong secret":   forged.Token,
		"wrong issuer":   wrongIssuer.Token,
		"wrong audience": wrongAudience.Token,
		"hs512":          hs512,
		"alg none":       none,
	}

	for name, token := range tokens {
		t.Run(name, func(t *testing.T) {
			_, err := signer.Validate(token)
			assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)

			_, err = signer.ValidateIgnoringExpiry(token)
			assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
		})
	}
}

func TestJWTSigner_RejectsUnknownRole(t *testing.T) {
	signer, err := newJWTSigner(testJWTConfig(), time.Now)
	require.NoError(t, err)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Role: "Superuser",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.NewString(),
			Issuer:    "finsync",
			Audience:  jwt.ClaimStrings{"finsync-web"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = signer.Validate(token)

	assert.ErrorIs(t, err, domainerrors.ErrAccessTokenInvalid)
}
