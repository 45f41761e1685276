package context

import (
	"finsync/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// KeyClaims stores the verified access token claims in echo.Context.
const KeyClaims ContextKey = "claims"

// SetClaims records the authenticated caller.
func SetClaims(c echo.Context, claims *service.Claims) {
	c.Set(string(KeyClaims), claims)
}

// GetClaims returns the authenticated caller set by the auth middleware.
func GetClaims(c echo.Context) (*service.Claims, bool) {
	claims, ok := c.Get(string(KeyClaims)).(*service.Claims)

	return claims, ok && claims != nil
}
