package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func validConfig() *Config {
	cfg := &Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.Issuer = "finsync"
	cfg.JWT.Audience = "finsync-web"
	cfg.ApplyDefaults()

	return cfg
}

func TestValidate_MissingJWTSettings(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSetting)
	assert.Contains(t, err.Error(), "jwt.secret")
	assert.Contains(t, err.Error(), "jwt.issuer")
	assert.Contains(t, err.Error(), "jwt.audience")
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = "short"

	err := cfg.Validate()

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSetting)
}

func TestValidate_InvalidSameSite(t *testing.T) {
	cfg := validConfig()
	cfg.Cookie.SameSite = "lax"

	assert.Error(t, cfg.Validate())
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()

	assert.Equal(t, time.Hour, cfg.JWT.AccessTokenTTL)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.RefreshTokenTTL)
	assert.Equal(t, 24*time.Hour, cfg.Verification.TokenTTL)
	assert.Equal(t, time.Minute, cfg.Verification.ResendCooldown)
	assert.Equal(t, "refreshToken", cfg.Cookie.Name)
	assert.Equal(t, "strict", cfg.Cookie.SameSite)
	assert.Equal(t, "postgres", cfg.Postgres.Driver)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 8, cfg.PasswordStrength.MinLength)
}

func TestDBConfig_DSN(t *testing.T) {
	db := &DBConfig{
		Database: "finsync",
		Master:   ConnectionConfig{Host: "db", Port: "5432", UserName: "u", Password: "p"},
		Replicas: []ConnectionConfig{{Host: "replica", Port: "5433", UserName: "u", Password: "p"}},
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=finsync sslmode=disable TimeZone=UTC", db.MasterDSN())
	require.Len(t, db.ReplicaDSNs(), 1)
	assert.True(t, strings.HasPrefix(db.ReplicaDSNs()[0], "host=replica port=5433"))
}

func TestLoadWithEnv_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	yamlBody := `
jwt:
  secret: ""
  issuer: finsync
  audience: web
  accessTokenTtl: 30m
postgres:
  sslMode: disable
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(yamlBody), 0o600))
	t.Chdir(dir)
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("POSTGRES_SSLMODE", "require")

	cfg, err := LoadWithEnv[Config]("test")

	require.NoError(t, err)
	assert.Equal(t, testSecret, cfg.JWT.Secret)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessTokenTTL)
	require.NotNil(t, cfg.Postgres)
	assert.Equal(t, "require", cfg.Postgres.SSLMode)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")

	assert.Error(t, err)
}

func TestBuildReplicasFromEnv(t *testing.T) {
	t.Setenv("POSTGRES_REPLICAS_0_HOST", "r0")
	t.Setenv("POSTGRES_REPLICAS_0_PORT", "5432")
	t.Setenv("POSTGRES_REPLICAS_0_USERNAME", "reader")

	replicas := buildReplicasFromEnv()

	require.Len(t, replicas, 1)
	assert.Equal(t, "r0", replicas[0].Host)
	assert.Equal(t, "reader", replicas[0].UserName)
}
