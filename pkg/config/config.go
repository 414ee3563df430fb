package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Customer     CustomerConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WISHLISTS_APP_ENV" required:"true"`
	Port         string `envconfig:"WISHLISTS_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WISHLISTS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WISHLISTS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"WISHLISTS_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"WISHLISTS_DB_DSN"`
	Driver string `envconfig:"WISHLISTS_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WISHLISTS_DB_HOST"`
	LegacyPort     int    `envconfig:"WISHLISTS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WISHLISTS_DB_USER"`
	LegacyPassword string `envconfig:"WISHLISTS_DB_PASSWORD"`
	LegacyName     string `envconfig:"WISHLISTS_DB_NAME"`
	LegacySSLMode  string `envconfig:"WISHLISTS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WISHLISTS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WISHLISTS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WISHLISTS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WISHLISTS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WISHLISTS_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WISHLISTS_REDIS_ADDR"`
	Password     string        `envconfig:"WISHLISTS_REDIS_PASSWORD"`
	DB           int           `envconfig:"WISHLISTS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WISHLISTS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WISHLISTS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WISHLISTS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WISHLISTS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WISHLISTS_REDIS_WRITE_TIMEOUT" default:"5s"`
	CacheTTL     time.Duration `envconfig:"WISHLISTS_REDIS_CACHE_TTL" default:"5m"`
}

// JWTConfig describes the optional bearer token the customer middleware
// accepts. Real authentication lives upstream; when no token is present the
// default customer id is used.
type JWTConfig struct {
	Secret string `envconfig:"WISHLISTS_JWT_SECRET"`
	Issuer string `envconfig:"WISHLISTS_JWT_ISSUER" default:"wishlists"`
}

type CustomerConfig struct {
	DefaultID int64 `envconfig:"WISHLISTS_DEFAULT_CUSTOMER_ID" default:"1001"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WISHLISTS_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WISHLISTS_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"WISHLISTS_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"WISHLISTS_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"WISHLISTS_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	WishlistTopic        string `envconfig:"WISHLISTS_PUBSUB_WISHLIST_TOPIC" default:"wishlist-events"`
	WishlistSubscription string `envconfig:"WISHLISTS_PUBSUB_WISHLIST_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"WISHLISTS_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"WISHLISTS_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"WISHLISTS_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
