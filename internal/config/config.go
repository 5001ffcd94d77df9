package config

import (
	"time"

	"github.com/google/uuid"
)

// Config is the root application configuration.
type Config struct {
	Server      ServerConfig      `yaml:"server"`
	Database    DatabaseConfig    `yaml:"database"`
	Auth        AuthConfig        `yaml:"auth"`
	Log         LogConfig         `yaml:"log"`
	CORS        CORSConfig        `yaml:"cors"`
	Sync        SyncConfig        `yaml:"sync"`
	Recurring   RecurringConfig   `yaml:"recurring"`
	Trash       TrashConfig       `yaml:"trash"`
	Catalog     CatalogConfig     `yaml:"catalog"`
	Suggestions SuggestionsConfig `yaml:"suggestions"`
	Activity    ActivityConfig    `yaml:"activity"`
	Redis       RedisConfig       `yaml:"redis"`
	RateLimit   RateLimitConfig   `yaml:"rate_limit"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds access token settings. The API only validates tokens;
// cmd/token, or any issuer sharing the secret, hands them out.
type AuthConfig struct {
	JWTSecret      string        `yaml:"jwt_secret"       env:"AUTH_JWT_SECRET"       env-required:"true"`
	JWTIssuer      string        `yaml:"jwt_issuer"       env:"AUTH_JWT_ISSUER"       env-default:"household"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" env:"AUTH_ACCESS_TOKEN_TTL" env-default:"15m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SyncConfig holds offline action replay settings.
type SyncConfig struct {
	MaxBatchSize int `yaml:"max_batch_size" env:"SYNC_MAX_BATCH_SIZE" env-default:"50"`
}

// RecurringConfig holds recurring generator settings.
type RecurringConfig struct {
	Timezone string `yaml:"timezone" env:"RECURRING_TIMEZONE" env-default:"UTC"`

	// Location is resolved from Timezone during validation.
	Location *time.Location `yaml:"-" env:"-"`
}

// TrashConfig holds trash retention settings.
type TrashConfig struct {
	RetentionDays int `yaml:"retention_days" env:"TRASH_RETENTION_DAYS" env-default:"30"`
}

// Retention returns the retention period as a duration.
func (c TrashConfig) Retention() time.Duration {
	return time.Duration(c.RetentionDays) * 24 * time.Hour
}

// CatalogConfig names the category assigned to items created without one.
// DefaultCategoryID wins over DefaultCategorySlug when both are set.
type CatalogConfig struct {
	DefaultCategorySlug string `yaml:"default_category_slug" env:"CATALOG_DEFAULT_CATEGORY_SLUG" env-default:"other"`
	DefaultCategoryID   string `yaml:"default_category_id"   env:"CATALOG_DEFAULT_CATEGORY_ID"`
}

// DefaultCategoryUUID returns the configured category id, if any.
// It assumes Validate has accepted the value.
func (c CatalogConfig) DefaultCategoryUUID() (uuid.UUID, bool) {
	if c.DefaultCategoryID == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(c.DefaultCategoryID)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// SuggestionsConfig holds autocomplete settings.
type SuggestionsConfig struct {
	MinQueryLength int `yaml:"min_query_length" env:"SUGGESTIONS_MIN_QUERY_LENGTH" env-default:"2"`
	MaxResults     int `yaml:"max_results"      env:"SUGGESTIONS_MAX_RESULTS"      env-default:"10"`
}

// ActivityConfig holds activity feed settings.
type ActivityConfig struct {
	BufferSize int `yaml:"buffer_size" env:"ACTIVITY_BUFFER_SIZE" env-default:"256"`
	PageSize   int `yaml:"page_size"   env:"ACTIVITY_PAGE_SIZE"   env-default:"50"`
}

// RedisConfig holds the realtime publisher connection. An empty Addr
// disables publishing.
type RedisConfig struct {
	Addr     string `yaml:"addr"     env:"REDIS_ADDR"`
	Username string `yaml:"username" env:"REDIS_USERNAME"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	Channel  string `yaml:"channel"  env:"REDIS_CHANNEL" env-default:"household:activity"`
}

func (c RedisConfig) Enabled() bool { return c.Addr != "" }

// RateLimitConfig holds request limits. Zero disables the limit.
type RateLimitConfig struct {
	SyncPerMinute int `yaml:"sync_per_minute" env:"RATE_LIMIT_SYNC_PER_MINUTE" env-default:"30"`
}
