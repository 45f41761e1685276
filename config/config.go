package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	defaultAccessTokenTTL   = time.Hour
	defaultRefreshTokenTTL  = 7 * 24 * time.Hour
	defaultVerificationTTL  = 24 * time.Hour
	defaultResendCooldown   = time.Minute
	defaultSweepInterval    = time.Hour
	defaultVerifyURLBase    = "http://localhost:3000/verify-email"
	defaultRefreshCookie    = "refreshToken"
	defaultRefreshCookiePth = "/api/account"
	defaultMetricsPath      = "/metrics"
	defaultNATSQueue        = "mailworker"

	// MinJWTSecretLength is the shortest accepted HMAC secret in bytes.
	MinJWTSecretLength = 32
)

// ErrMissingSetting is returned by Validate when a mandatory setting is absent.
var ErrMissingSetting = errors.New("missing mandatory configuration")

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int      `json:"port" yaml:"port"`
		MaxRequestBodySize string   `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		AllowOrigins       []string `json:"allowOrigins" yaml:"allowOrigins"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *DBConfig `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	JWT JWTConfig `json:"jwt" yaml:"jwt"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	PasswordStrength *PasswordStrengthConfig `json:"passwordStrength" yaml:"passwordStrength"`

	// Verification configures the email verification flow
	Verification *VerificationConfig `json:"verification" yaml:"verification"`

	// Cookie configures the refresh token cookie for the whole service
	Cookie *CookieConfig `json:"cookie" yaml:"cookie"`

	// PubSub configuration for verification event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`

	// Mail configures the mail worker
	Mail *MailConfig `json:"mail" yaml:"mail"`

	Metrics *MetricsConfig `json:"metrics" yaml:"metrics"`
}

// DBConfig describes the primary store and its read replicas.
type DBConfig struct {
	// Driver is "postgres" (default) or "sqlite"
	Driver   string `json:"driver" yaml:"driver"`
	Database string `json:"database" yaml:"database"`
	SSLMode  string `json:"sslMode" yaml:"sslMode"`
	TimeZone string `json:"timeZone" yaml:"timeZone"`

	Master   ConnectionConfig   `json:"master" yaml:"master"`
	Replicas []ConnectionConfig `json:"replicas" yaml:"replicas"`

	MaxIdleConns    int           `json:"maxIdleConns" yaml:"maxIdleConns"`
	MaxOpenConns    int           `json:"maxOpenConns" yaml:"maxOpenConns"`
	ConnMaxLifetime time.Duration `json:"connMaxLifetime" yaml:"connMaxLifetime"`

	// SQLitePath is used when Driver is "sqlite", e.g. "file:finsync.db" or ":memory:"
	SQLitePath string `json:"sqlitePath" yaml:"sqlitePath"`

	// AutoMigrate runs the embedded migrations on startup
	AutoMigrate bool `json:"autoMigrate" yaml:"autoMigrate"`
}

// ConnectionConfig is a single Postgres endpoint.
type ConnectionConfig struct {
	Host     string `json:"host" yaml:"host"`
	Port     string `json:"port" yaml:"port"`
	UserName string `json:"userName" yaml:"userName"`
	Password string `json:"password" yaml:"password"`
}

// JWTConfig holds the access token signing settings.
type JWTConfig struct {
	Secret          string        `json:"secret" yaml:"secret"`
	Issuer          string        `json:"issuer" yaml:"issuer"`
	Audience        string        `json:"audience" yaml:"audience"`
	AccessTokenTTL  time.Duration `json:"accessTokenTtl" yaml:"accessTokenTtl"`
	RefreshTokenTTL time.Duration `json:"refreshTokenTtl" yaml:"refreshTokenTtl"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	BcryptCost           int           `json:"bcryptCost" yaml:"bcryptCost"`
	MaxActiveSessions    int           `json:"maxActiveSessions" yaml:"maxActiveSessions"`
	SessionSweepInterval time.Duration `json:"sessionSweepInterval" yaml:"sessionSweepInterval"`
}

// PasswordStrengthConfig defines password strength requirements
type PasswordStrengthConfig struct {
	MinLength        int  `json:"minLength" yaml:"minLength"`
	RequireUppercase bool `json:"requireUppercase" yaml:"requireUppercase"`
	RequireLowercase bool `json:"requireLowercase" yaml:"requireLowercase"`
	RequireNumbers   bool `json:"requireNumbers" yaml:"requireNumbers"`
	RequireSpecial   bool `json:"requireSpecial" yaml:"requireSpecial"`
	MaxLength        int  `json:"maxLength" yaml:"maxLength"`
}

// VerificationConfig defines email verification settings
type VerificationConfig struct {
	TokenTTL       time.Duration `json:"tokenTtl" yaml:"tokenTtl"`
	ResendCooldown time.Duration `json:"resendCooldown" yaml:"resendCooldown"`
	// VerifyURLBase is the frontend page that receives ?token=
	VerifyURLBase string `json:"verifyUrlBase" yaml:"verifyUrlBase"`
}

// CookieConfig defines the refresh token cookie attributes
type CookieConfig struct {
	Name     string `json:"name" yaml:"name"`
	Path     string `json:"path" yaml:"path"`
	Domain   string `json:"domain" yaml:"domain"`
	SameSite string `json:"sameSite" yaml:"sameSite"` // strict or none
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local", "google", "nats"; empty disables publishing
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`

	// NATS server URL and subject (for nats provider)
	NATSURL     string `json:"natsUrl" yaml:"natsUrl"`
	NATSSubject string `json:"natsSubject" yaml:"natsSubject"`
	// NATSQueue is the queue group mail workers share
	NATSQueue string `json:"natsQueue" yaml:"natsQueue"`
}

// MailConfig defines how the mail worker renders and delivers messages
type MailConfig struct {
	// Provider is "smtp" or "log"
	Provider string `json:"provider" yaml:"provider"`
	From     string `json:"from" yaml:"from"`

	SMTPHost     string `json:"smtpHost" yaml:"smtpHost"`
	SMTPPort     int    `json:"smtpPort" yaml:"smtpPort"`
	SMTPUserName string `json:"smtpUserName" yaml:"smtpUserName"`
	SMTPPassword string `json:"smtpPassword" yaml:"smtpPassword"`

	// TemplateBucketURL is a gocloud blob URL (file://, gs://, mem://)
	TemplateBucketURL string `json:"templateBucketUrl" yaml:"templateBucketUrl"`
	TemplateKey       string `json:"templateKey" yaml:"templateKey"`
}

// MetricsConfig toggles the Prometheus endpoint
type MetricsConfig struct {
	Enabled bool   `json:"enabled" yaml:"enabled"`
	Path    string `json:"path" yaml:"path"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	var configFile string
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate

			break
		}
	}

	if configFile == "" {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// JWT_SECRET -> jwt.secret, POSTGRES_SSLMODE -> postgres.sslMode
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
	if replicas := buildReplicasFromEnv(); len(replicas) > 0 {
		cfg.Postgres.Replicas = replicas
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills every optional section so callers never see nil pointers.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Postgres == nil {
		c.Postgres = &DBConfig{}
	}
	if c.Postgres.Driver == "" {
		c.Postgres.Driver = "postgres"
	}
	if c.JWT.AccessTokenTTL <= 0 {
		c.JWT.AccessTokenTTL = defaultAccessTokenTTL
	}
	if c.JWT.RefreshTokenTTL <= 0 {
		c.JWT.RefreshTokenTTL = defaultRefreshTokenTTL
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.SessionSweepInterval <= 0 {
		c.Auth.SessionSweepInterval = defaultSweepInterval
	}
	if c.PasswordStrength == nil {
		c.PasswordStrength = &PasswordStrengthConfig{
			MinLength:        8,
			MaxLength:        128,
			RequireUppercase: true,
			RequireLowercase: true,
			RequireNumbers:   true,
		}
	}
	if c.Verification == nil {
		c.Verification = &VerificationConfig{}
	}
	if c.Verification.TokenTTL <= 0 {
		c.Verification.TokenTTL = defaultVerificationTTL
	}
	if c.Verification.ResendCooldown < 0 {
		c.Verification.ResendCooldown = 0
	} else if c.Verification.ResendCooldown == 0 {
		c.Verification.ResendCooldown = defaultResendCooldown
	}
	if c.Verification.VerifyURLBase == "" {
		c.Verification.VerifyURLBase = defaultVerifyURLBase
	}
	if c.Cookie == nil {
		c.Cookie = &CookieConfig{}
	}
	if c.Cookie.Name == "" {
		c.Cookie.Name = defaultRefreshCookie
	}
	if c.Cookie.Path == "" {
		c.Cookie.Path = defaultRefreshCookiePth
	}
	if c.Cookie.SameSite == "" {
		c.Cookie.SameSite = "strict"
	}
	if c.PubSub == nil {
		c.PubSub = &PubSubConfig{}
	}
	if c.PubSub.NATSQueue == "" {
		c.PubSub.NATSQueue = defaultNATSQueue
	}
	if c.Metrics == nil {
		c.Metrics = &MetricsConfig{}
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = defaultMetricsPath
	}
}

// Validate reports missing mandatory settings. Startup must abort on error.
func (c *Config) Validate() error {
	var missing []string
	if strings.TrimSpace(c.JWT.Secret) == "" {
		missing = append(missing, "jwt.secret")
	}
	if strings.TrimSpace(c.JWT.Issuer) == "" {
		missing = append(missing, "jwt.issuer")
	}
	if strings.TrimSpace(c.JWT.Audience) == "" {
		missing = append(missing, "jwt.audience")
	}
	if len(missing) > 0 {
		return errors.Wrap(ErrMissingSetting, strings.Join(missing, ", "))
	}

	if len(c.JWT.Secret) < MinJWTSecretLength {
		return errors.Wrapf(ErrMissingSetting, "jwt.secret must be at least %d bytes", MinJWTSecretLength)
	}

	if c.Cookie != nil {
		switch strings.ToLower(c.Cookie.SameSite) {
		case "strict", "none":
		default:
			return errors.Errorf("cookie.sameSite must be strict or none, got %q", c.Cookie.SameSite)
		}
	}

	if c.Verification != nil && c.Verification.VerifyURLBase != "" {
		if _, err := url.Parse(c.Verification.VerifyURLBase); err != nil {
			return errors.Wrap(err, "verification.verifyUrlBase")
		}
	}

	return nil
}

// MasterDSN returns the keyword/value DSN for the primary.
func (c *DBConfig) MasterDSN() string {
	return c.dsn(c.Master)
}

// ReplicaDSNs returns one DSN per configured replica.
func (c *DBConfig) ReplicaDSNs() []string {
	dsns := make([]string, 0, len(c.Replicas))
	for _, replica := range c.Replicas {
		dsns = append(dsns, c.dsn(replica))
	}

	return dsns
}

func (c *DBConfig) dsn(conn ConnectionConfig) string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	timeZone := c.TimeZone
	if timeZone == "" {
		timeZone = "UTC"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
		conn.Host, conn.Port, conn.UserName, conn.Password, c.Database, sslMode, timeZone)
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv builds the replicas slice from environment variables.
// Format: POSTGRES_REPLICAS_{index}_{HOST|PORT|USERNAME|PASSWORD}
func buildReplicasFromEnv() []ConnectionConfig {
	var replicas []ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}
