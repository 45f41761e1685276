package middleware

import (
	"strings"

	deliverycontext "finsync/internal/delivery/context"
	domainerrors "finsync/internal/domain/errors"
	"finsync/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates requests by their access token.
type AuthMiddleware struct {
	signer service.TokenSigner
}

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Signer service.TokenSigner
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{signer: params.Signer}
}

// Authenticate requires a valid Bearer access token and stores its claims.
// Failures are returned to the error handler, which renders them as 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := BearerToken(c)
		if !ok {
			return domainerrors.ErrAccessTokenMissing
		}

		claims, err := m.signer.Validate(token)
		if err != nil {
			return errors.WithStack(err)
		}

		deliverycontext.SetClaims(c, claims)

		return next(c)
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}
