package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "PETRESCUE"

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

type Config struct {
	App       AppConfig
	Server    ServerConfig
	Storage   StorageConfig
	Postgres  PostgresConfig
	Mongo     MongoConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	Bootstrap BootstrapConfig
}

type AppConfig struct {
	Name      string `envconfig:"PETRESCUE_APP_NAME" default:"petrescue"`
	Env       string `envconfig:"PETRESCUE_APP_ENV" default:"dev"`
	Port      string `envconfig:"PETRESCUE_PORT" default:"8080"`
	LogLevel  string `envconfig:"PETRESCUE_LOG_LEVEL" default:"info"`
	LogFormat string `envconfig:"PETRESCUE_LOG_FORMAT" default:"json"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, "dev")
}

type ServerConfig struct {
	ReadTimeout     time.Duration `envconfig:"PETRESCUE_READ_TIMEOUT" default:"5s"`
	WriteTimeout    time.Duration `envconfig:"PETRESCUE_WRITE_TIMEOUT" default:"10s"`
	ShutdownTimeout time.Duration `envconfig:"PETRESCUE_SHUTDOWN_TIMEOUT" default:"10s"`
}

type StorageConfig struct {
	Driver string `envconfig:"PETRESCUE_STORAGE_DRIVER" default:"memory"`
}

type PostgresConfig struct {
	// DSN en formato URL (postgres://...) porque golang-migrate también lo consume.
	DSN             string        `envconfig:"PETRESCUE_DB_DSN"`
	MaxOpenConns    int           `envconfig:"PETRESCUE_DB_MAX_OPEN_CONNS" default:"10"`
	MaxIdleConns    int           `envconfig:"PETRESCUE_DB_MAX_IDLE_CONNS" default:"5"`
	ConnMaxIdleTime time.Duration `envconfig:"PETRESCUE_DB_CONN_MAX_IDLE_TIME" default:"5m"`
	ConnMaxLifetime time.Duration `envconfig:"PETRESCUE_DB_CONN_MAX_LIFETIME" default:"30m"`
	AutoMigrate     bool          `envconfig:"PETRESCUE_DB_AUTO_MIGRATE" default:"true"`
}

type MongoConfig struct {
	URI      string        `envconfig:"PETRESCUE_MONGO_URI"`
	Database string        `envconfig:"PETRESCUE_MONGO_DATABASE" default:"petrescue"`
	Timeout  time.Duration `envconfig:"PETRESCUE_MONGO_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	// Sin secret el servicio arranca en modo dev (X-Debug-User-ID).
	Secret     string        `envconfig:"PETRESCUE_JWT_SECRET"`
	Issuer     string        `envconfig:"PETRESCUE_JWT_ISSUER" default:"petrescue"`
	AccessTTL  time.Duration `envconfig:"PETRESCUE_JWT_ACCESS_TTL" default:"60m"`
	RefreshTTL time.Duration `envconfig:"PETRESCUE_JWT_REFRESH_TTL" default:"168h"`
}

func (j JWTConfig) Enabled() bool {
	return strings.TrimSpace(j.Secret) != ""
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `envconfig:"PETRESCUE_RATE_LIMIT_RPS" default:"5"`
	Burst             int     `envconfig:"PETRESCUE_RATE_LIMIT_BURST" default:"30"`

	CleanupInterval time.Duration `envconfig:"PETRESCUE_RATE_LIMIT_CLEANUP_INTERVAL" default:"5m"`
}

type BootstrapConfig struct {
	AdminEmail    string `envconfig:"PETRESCUE_ADMIN_EMAIL"`
	AdminPassword string `envconfig:"PETRESCUE_ADMIN_PASSWORD"`
	AdminName     string `envconfig:"PETRESCUE_ADMIN_NAME" default:"Admin"`
}

// Load lee .env (si existe) y luego las variables PETRESCUE_*.
// Cada campo lleva el nombre completo de su variable en el tag.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if strings.TrimSpace(c.Postgres.DSN) == "" {
			return fmt.Errorf("config: %s_DB_DSN is required for the postgres driver", EnvPrefix)
		}
	case DriverMongo:
		if strings.TrimSpace(c.Mongo.URI) == "" {
			return fmt.Errorf("config: %s_MONGO_URI is required for the mongo driver", EnvPrefix)
		}
	default:
		return fmt.Errorf("config: unknown storage driver %q", c.Storage.Driver)
	}

	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("config: rate limit must be positive")
	}
	return nil
}
