package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix scopes every environment variable read by Load.
	EnvPrefix = "SASTAEASE"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

type Config struct {
	App     AppConfig
	Backend BackendConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Catalog CatalogConfig
	Cart    CartConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SASTAEASE_APP_ENV" required:"true"`
	Port         string `envconfig:"SASTAEASE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SASTAEASE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SASTAEASE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// BackendConfig points at the external backend-as-a-service that owns
// persistence and authentication.
type BackendConfig struct {
	URL     string        `envconfig:"SASTAEASE_BACKEND_URL" required:"true"`
	APIKey  string        `envconfig:"SASTAEASE_BACKEND_API_KEY" required:"true"`
	Timeout time.Duration `envconfig:"SASTAEASE_BACKEND_TIMEOUT" default:"10s"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SASTAEASE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"SASTAEASE_REDIS_ADDR"`
	Password     string        `envconfig:"SASTAEASE_REDIS_PASSWORD"`
	DB           int           `envconfig:"SASTAEASE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SASTAEASE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SASTAEASE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SASTAEASE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SASTAEASE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SASTAEASE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// JWTConfig verifies access tokens minted by the external auth service.
type JWTConfig struct {
	Secret string `envconfig:"SASTAEASE_JWT_SECRET" required:"true"`
	Issuer string `envconfig:"SASTAEASE_JWT_ISSUER"`
}

type CatalogConfig struct {
	CacheTTL      time.Duration `envconfig:"SASTAEASE_CATALOG_CACHE_TTL" default:"60s"`
	ViewStateTTL  time.Duration `envconfig:"SASTAEASE_CATALOG_VIEW_STATE_TTL" default:"30m"`
	FeaturedLimit int           `envconfig:"SASTAEASE_CATALOG_FEATURED_LIMIT" default:"6"`
}

type CartConfig struct {
	// ItemLockTTL bounds how long a cart row stays locked when a mutation
	// never resolves.
	ItemLockTTL time.Duration `envconfig:"SASTAEASE_CART_ITEM_LOCK_TTL" default:"10s"`
}
