// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"finsync/config"
	"finsync/internal/domain/entity"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"
)

// accessClaims is the wire form of an access token payload.
type accessClaims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// jwtSigner is a concrete implementation of the TokenSigner interface using HS256 JWTs.
type jwtSigner struct {
	secret    []byte
	issuer    string
	audience  string
	accessTTL time.Duration
	now       func() time.Time
}

// NewJWTSigner is the constructor for jwtSigner.
// It refuses to build a signer without a secret, issuer and audience.
func NewJWTSigner(cfg *config.Config) (service.TokenSigner, error) {
	return newJWTSigner(cfg.JWT, time.Now)
}

func newJWTSigner(cfg config.JWTConfig, now func() time.Time) (*jwtSigner, error) {
	if strings.TrimSpace(cfg.Secret) == "" || strings.TrimSpace(cfg.Issuer) == "" || strings.TrimSpace(cfg.Audience) == "" {
		return nil, domainerrors.ErrConfiguration.WrapMessage("jwt secret, issuer and audience must be provided")
	}
	if len(cfg.Secret) < config.MinJWTSecretLength {
		return nil, domainerrors.ErrConfiguration.WrapMessage("jwt secret is too short")
	}

	ttl := cfg.AccessTokenTTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &jwtSigner{
		secret:    []byte(cfg.Secret),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
		accessTTL: ttl,
		now:       now,
	}, nil
}

// Issue signs the claims and stamps the token id and lifetime on a copy of them.
func (s *jwtSigner) Issue(claims *service.Claims) (*service.IssuedToken, error) {
	if claims == nil || claims.AccountID == uuid.Nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, "claims have no subject")
	}

	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.accessTTL)
	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Name:  claims.Name,
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.AccountID.String(),
			Issuer:    s.issuer,
			Audience:  jwt.ClaimStrings{s.audience},
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        tokenID,
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrTokenGenerationFailed, err.Error())
	}

	stamped := *claims
	stamped.TokenID = tokenID
	stamped.IssuedAt = issuedAt
	stamped.ExpiresAt = expiresAt

	return &service.IssuedToken{
		Token:     signed,
		ExpiresAt: expiresAt,
		Claims:    &stamped,
	}, nil
}

// Validate checks signature, algorithm, issuer, audience and lifetime.
func (s *jwtSigner) Validate(tokenString string) (*service.Claims, error) {
	return s.parse(tokenString, false)
}

// ValidateIgnoringExpiry is used by the refresh flow to identify the caller of an expired access token.
func (s *jwtSigner) ValidateIgnoringExpiry(tokenString string) (*service.Claims, error) {
	return s.parse(tokenString, true)
}

func (s *jwtSigner) parse(tokenString string, ignoreExpiry bool) (*service.Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, domainerrors.ErrAccessTokenInvalid
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithAudience(s.audience),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	}
	if ignoreExpiry {
		// Skips every registered-claim check, so issuer and audience are re-checked below.
		opts = append(opts, jwt.WithoutClaimsValidation())
	}

	var parsed accessClaims
	_, err := jwt.ParseWithClaims(tokenString, &parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	}, opts...)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domainerrors.ErrAccessTokenExpired
		}

		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, err.Error())
	}

	if ignoreExpiry {
		if parsed.Issuer != s.issuer || !slices.Contains(parsed.Audience, s.audience) {
			return nil, domainerrors.ErrAccessTokenInvalid
		}
	}

	return toClaims(&parsed)
}

func toClaims(parsed *accessClaims) (*service.Claims, error) {
	accountID, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, "subject is not an account id")
	}

	role := entity.Role(parsed.Role)
	if !role.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrAccessTokenInvalid, "unknown role claim")
	}

	claims := &service.Claims{
		AccountID: accountID,
		Name:      parsed.Name,
		Email:     parsed.Email,
		Role:      role,
		TokenID:   parsed.ID,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}

	return claims, nil
}
