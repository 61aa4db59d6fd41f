// Package config loads the pet store configuration from a YAML file, an
// optional .env file and the process environment, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config is the complete application configuration.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Cart    CartConfig    `yaml:"cart"`
	Limits  LimitsConfig  `yaml:"limits"`
	Admin   AdminConfig   `yaml:"admin"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr         string        `yaml:"addr" env:"PETSTORE_HTTP_ADDR"`
	Name         string        `yaml:"name" env:"PETSTORE_SERVER_NAME"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"PETSTORE_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"PETSTORE_WRITE_TIMEOUT"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level" env:"PETSTORE_LOG_LEVEL"`
	Format string `yaml:"format" env:"PETSTORE_LOG_FORMAT"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend     string `yaml:"backend" env:"PETSTORE_STORAGE"`
	PostgresDSN string `yaml:"postgres_dsn" env:"PETSTORE_POSTGRES_DSN"`
	RedisAddr   string `yaml:"redis_addr" env:"PETSTORE_REDIS_ADDR"`
}

// CartConfig configures shopper sessions.
type CartConfig struct {
	TTL           time.Duration `yaml:"ttl" env:"PETSTORE_CART_TTL"`
	PurgeSchedule string        `yaml:"purge_schedule" env:"PETSTORE_CART_PURGE_SCHEDULE"`
}

// LimitsConfig configures per-client rate limiting. Zero disables it.
// Clients quiet for IdleTTL are forgotten on SweepSchedule.
type LimitsConfig struct {
	RequestsPerSecond int           `yaml:"requests_per_second" env:"PETSTORE_RATE_LIMIT"`
	Burst             int           `yaml:"burst" env:"PETSTORE_RATE_BURST"`
	IdleTTL           time.Duration `yaml:"idle_ttl" env:"PETSTORE_RATE_IDLE_TTL"`
	SweepSchedule     string        `yaml:"sweep_schedule" env:"PETSTORE_RATE_SWEEP_SCHEDULE"`
}

// AdminConfig configures the JSON admin API.
type AdminConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"PETSTORE_ADMIN_JWT_SECRET"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:         ":8080",
			Name:         "petstore",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Backend: StorageMemory,
		},
		Cart: CartConfig{
			TTL:           2 * time.Hour,
			PurgeSchedule: "@every 10m",
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 50,
			Burst:             100,
			IdleTTL:           10 * time.Minute,
			SweepSchedule:     "@every 1m",
		},
	}
}

// Load builds the configuration. path may be empty, in which case only the
// defaults and the environment apply.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load .env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return Config{}, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c Config) Validate() error {
	switch strings.ToLower(c.Storage.Backend) {
	case StorageMemory:
	case StoragePostgres:
		if strings.TrimSpace(c.Storage.PostgresDSN) == "" {
			return fmt.Errorf("storage: postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("storage: unknown backend %q", c.Storage.Backend)
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server: addr is required")
	}
	if c.Cart.TTL <= 0 {
		return fmt.Errorf("cart: ttl must be positive")
	}
	if c.Limits.RequestsPerSecond < 0 || c.Limits.Burst < 0 {
		return fmt.Errorf("limits: values must not be negative")
	}
	if c.Limits.RequestsPerSecond > 0 {
		if c.Limits.Burst < 1 {
			return fmt.Errorf("limits: burst must be at least 1 when rate limiting is on")
		}
		if c.Limits.IdleTTL <= 0 {
			return fmt.Errorf("limits: idle_ttl must be positive when rate limiting is on")
		}
	}
	return nil
}
