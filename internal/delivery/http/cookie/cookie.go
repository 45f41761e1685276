// Package cookie owns the refresh token cookie. It is the only place the
// cookie is written, so its attributes are uniform across the service.
package cookie

import (
	"net/http"
	"strings"
	"time"

	"finsync/config"

	"github.com/labstack/echo/v4"
)

// RefreshCookie writes and reads the refresh token cookie.
type RefreshCookie struct {
	name     string
	path     string
	domain   string
	sameSite http.SameSite
}

// NewRefreshCookie builds the cookie settings from cookie.* configuration.
func NewRefreshCookie(cfg *config.Config) *RefreshCookie {
	sameSite := http.SameSiteStrictMode
	if strings.EqualFold(cfg.Cookie.SameSite, "none") {
		sameSite = http.SameSiteNoneMode
	}

	return &RefreshCookie{
		name:     cfg.Cookie.Name,
		path:     cfg.Cookie.Path,
		domain:   cfg.Cookie.Domain,
		sameSite: sameSite,
	}
}

// Set stores token until expiresAt.
func (rc *RefreshCookie) Set(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(rc.build(token, expiresAt, int(time.Until(expiresAt).Seconds())))
}

// Clear tells the browser to drop the cookie.
func (rc *RefreshCookie) Clear(c echo.Context) {
	c.SetCookie(rc.build("", time.Unix(0, 0), -1))
}

// Read returns the presented refresh token, or "".
func (rc *RefreshCookie) Read(c echo.Context) string {
	cookie, err := c.Cookie(rc.name)
	if err != nil {
		return ""
	}

	return cookie.Value
}

func (rc *RefreshCookie) build(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     rc.name,
		Value:    value,
		Path:     rc.path,
		Domain:   rc.domain,
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		// SameSite=None is rejected by browsers without Secure.
		Secure:   true,
		SameSite: rc.sameSite,
	}
}
