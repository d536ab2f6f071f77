package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Redis        RedisConfig
	Cart         CartConfig
	DB           DBConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	if err := cfg.DB.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"MUSEUMCART_APP_ENV" required:"true"`
	Port         string `envconfig:"MUSEUMCART_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"MUSEUMCART_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"MUSEUMCART_LOG_WARN_STACK" default:"false"`

	// CORSOrigins applies to the JSON API only.
	CORSOrigins []string `envconfig:"MUSEUMCART_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type RedisConfig struct {
	URL          string        `envconfig:"MUSEUMCART_REDIS_URL"`
	Address      string        `envconfig:"MUSEUMCART_REDIS_ADDR"`
	Password     string        `envconfig:"MUSEUMCART_REDIS_PASSWORD"`
	DB           int           `envconfig:"MUSEUMCART_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"MUSEUMCART_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"MUSEUMCART_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"MUSEUMCART_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"MUSEUMCART_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"MUSEUMCART_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CartConfig controls where visitor carts are persisted and how visitors are identified.
type CartConfig struct {
	Backend      string        `envconfig:"MUSEUMCART_CART_BACKEND" default:"redis"`
	KeyPrefix    string        `envconfig:"MUSEUMCART_CART_KEY_PREFIX" default:"museumCartV1"`
	TTL          time.Duration `envconfig:"MUSEUMCART_CART_TTL" default:"720h"`
	CookieName   string        `envconfig:"MUSEUMCART_CART_COOKIE_NAME" default:"museum_cart_vid"`
	CookieSecure bool          `envconfig:"MUSEUMCART_CART_COOKIE_SECURE" default:"false"`
}

func (c CartConfig) UsesMemory() bool {
	return strings.EqualFold(strings.TrimSpace(c.Backend), CartBackendMemory)
}

func (c CartConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Backend)) {
	case CartBackendRedis, CartBackendMemory:
	default:
		return fmt.Errorf("%s must be %q or %q", EnvCartBackend, CartBackendRedis, CartBackendMemory)
	}
	if strings.TrimSpace(c.KeyPrefix) == "" {
		return fmt.Errorf("%s is required", EnvCartKeyPrefix)
	}
	return nil
}

type DBConfig struct {
	Driver string `envconfig:"MUSEUMCART_DB_DRIVER" default:"sqlite"`
	DSN    string `envconfig:"MUSEUMCART_DB_DSN" default:"file:museumcart.db?cache=shared"`

	MaxOpenConns    int           `envconfig:"MUSEUMCART_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"MUSEUMCART_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxLifetime time.Duration `envconfig:"MUSEUMCART_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"MUSEUMCART_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DBDriverSQLite)
}

func (db DBConfig) validate() error {
	switch strings.ToLower(strings.TrimSpace(db.Driver)) {
	case DBDriverSQLite, DBDriverPostgres:
	default:
		return fmt.Errorf("%s must be %q or %q", EnvDBDriver, DBDriverSQLite, DBDriverPostgres)
	}
	if db.DSN == "" {
		return fmt.Errorf("%s is required", EnvDBDSN)
	}
	return nil
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"MUSEUMCART_AUTO_MIGRATE" default:"false"`
}
