package cookie

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"finsync/config"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(sameSite string) *config.Config {
	cfg := &config.Config{Cookie: &config.CookieConfig{SameSite: sameSite}}
	cfg.ApplyDefaults()

	return cfg
}

func TestRefreshCookie_Set(t *testing.T) {
	tests := []struct {
		sameSite string
		want     http.SameSite
	}{
		{sameSite: "strict", want: http.SameSiteStrictMode},
		{sameSite: "None", want: http.SameSiteNoneMode},
	}

	for _, tt := range tests {
		t.Run(tt.sameSite, func(t *testing.T) {
			rc := NewRefreshCookie(newConfig(tt.sameSite))
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)

			rc.Set(c, "raw-token", time.Now().Add(time.Hour))

			cookies := rec.Result().Cookies()
			require.Len(t, cookies, 1)
			assert.Equal(t, "refreshToken", cookies[0].Name)
			assert.Equal(t, "raw-token", cookies[0].Value)
			assert.Equal(t, "/api/account", cookies[0].Path)
			assert.True(t, cookies[0].HttpOnly)
			assert.True(t, cookies[0].Secure)
			assert.Equal(t, tt.want, cookies[0].SameSite)
			assert.Positive(t, cookies[0].MaxAge)
		})
	}
}

func TestRefreshCookie_ClearAndRead(t *testing.T) {
	rc := NewRefreshCookie(newConfig(""))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.AddCookie(&http.Cookie{Name: "refreshToken", Value: "presented"})
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	assert.Equal(t, "presented", rc.Read(c))

	rc.Clear(c)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
