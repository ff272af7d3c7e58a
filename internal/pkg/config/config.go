package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	ListenAddr string `env:"LISTEN_ADDR, default=:3000"`
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`

	// AuthBaseURL is the base URL of the authentication service the portal
	// consumes (POST /api/auth/login, /api/auth/register, GET /api/auth/me).
	AuthBaseURL    string        `env:"AUTH_BASE_URL,    default=http://localhost:8000"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT,  default=10s"`

	// CSRFKey is the 32-byte hex-encoded key for form CSRF protection.
	// Left empty, a random per-process key is generated (development only).
	CSRFKey string `env:"CSRF_KEY"`

	Token TokenConfig
	Redis RedisConfig
}

// TokenConfig selects where the opaque session token is persisted.
type TokenConfig struct {
	Backend string `env:"TOKEN_BACKEND, default=file"` // file | redis
	Path    string `env:"TOKEN_PATH,    default=.portal/session_token"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
