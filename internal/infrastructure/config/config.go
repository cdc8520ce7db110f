package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=3000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret     string        `env:"JWT_SECRET, required"`
	CredentialTTL time.Duration `env:"CREDENTIAL_TTL, default=1h"`

	Backends BackendConfig
	Redis    RedisConfig
}

type BackendConfig struct {
	CoreURL        string `env:"CORE_API_URL,        default=http://localhost:3001"`
	ReviewURL      string `env:"REVIEW_API_URL,      default=http://localhost:3002"`
	ReservationURL string `env:"RESERVATION_API_URL, default=http://localhost:3003"`

	// CallTimeout bounds every individual backend RPC call.
	CallTimeout time.Duration `env:"BACKEND_CALL_TIMEOUT, default=3s"`
}

// RedisConfig locates the optional credential denylist. An empty Addr
// disables revocation entirely (logout then only clears the cookie).
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
