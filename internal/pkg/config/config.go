package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	TokenStoreFile  = "file"
	TokenStoreRedis = "redis"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Token   TokenConfig
	Redis   RedisConfig
	Wizard  WizardConfig
}

// BackendConfig points the console at the marketplace REST API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,     default=http://localhost:5000"`
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=15s"`
}

// TokenConfig selects where the bearer token survives restarts.
type TokenConfig struct {
	Store string `env:"TOKEN_STORE, default=file"`
	File  string `env:"TOKEN_FILE,  default=.devnexus/access_token"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,      default=localhost:6379"`
	DB       int    `env:"REDIS_DB,        default=0"`
	TokenKey string `env:"REDIS_TOKEN_KEY, default=devnexus:access_token"`
}

type WizardConfig struct {
	MaxUploadFiles int   `env:"MAX_UPLOAD_FILES, default=10"`
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES, default=10485760"`
}

// IsDevelopment reports whether human-friendly logging should be used.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads an optional .env file and then the process environment using
// go-envconfig. Values already present in the environment win over .env.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Token.Store {
	case TokenStoreFile, TokenStoreRedis:
	default:
		return fmt.Errorf("config: TOKEN_STORE must be %q or %q, got %q", TokenStoreFile, TokenStoreRedis, c.Token.Store)
	}
	if c.Backend.URL == "" {
		return errors.New("config: BACKEND_URL is required")
	}
	if c.Backend.Timeout <= 0 {
		return errors.New("config: BACKEND_TIMEOUT must be positive")
	}
	if c.Wizard.MaxUploadFiles <= 0 {
		return errors.New("config: MAX_UPLOAD_FILES must be positive")
	}
	return nil
}
