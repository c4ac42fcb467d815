package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// SessionSecret signs session tokens; rotating it invalidates every
	// live session at once.
	SessionSecret string        `env:"SESSION_SECRET" validate:"required,min=32"`
	SessionTTL    time.Duration `env:"SESSION_TTL, default=12h"`
	// MaxSessions caps concurrent sessions per identity.
	MaxSessions int `env:"MAX_SESSIONS, default=10" validate:"gt=0"`

	Postgres  PostgresConfig
	Redis     RedisConfig
	Mongo     MongoConfig
	Directory DirectoryConfig
}

type PostgresConfig struct {
	DSN string `env:"POSTGRES_DSN, default=postgres://localhost:5432/pres?sslmode=disable"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=auth_gateway"`
}

type DirectoryConfig struct {
	URL    string `env:"DIRECTORY_URL" validate:"required,url"`
	Domain string `env:"DIRECTORY_DOMAIN" validate:"required"`
}

// Load reads configuration from environment variables using go-envconfig
// and validates the result. Startup fails fast on a bad environment.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
