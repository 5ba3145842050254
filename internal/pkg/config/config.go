package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const EnvProduction = "production"

type Config struct {
	Port     string `env:"PORT,      default=8080"        validate:"required,numeric"`
	Env      string `env:"ENV,       default=development" validate:"oneof=development test production"`
	LogLevel string `env:"LOG_LEVEL, default=info"        validate:"oneof=trace debug info warn warning error"`

	// ActivityWorkers sizes the booking activity dispatcher.
	ActivityWorkers int `env:"ACTIVITY_WORKERS, default=4" validate:"min=1,max=64"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Session SessionConfig
}

type MongoConfig struct {
	URI      string `env:"MONGODB_URI, default=mongodb://localhost:27017" validate:"required"`
	Database string `env:"MONGO_DB,    default=slot_booking"             validate:"required"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379" validate:"required"`
	DB   int    `env:"REDIS_DB,   default=0"              validate:"min=0"`
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET, default=dev-session-secret-change-me" validate:"min=16"`
	TTL        time.Duration `env:"SESSION_TTL,    default=24h"                          validate:"gt=0"`
	CookieName string        `env:"SESSION_COOKIE, default=sid"                          validate:"required"`
}

// IsProduction reports whether the service runs behind HTTPS in production.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// Load reads a .env file from the working directory when one exists, then
// resolves configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith resolves configuration from the given lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: invalid configuration: %w", err)
	}
	return &cfg, nil
}
