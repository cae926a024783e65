package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	// BcryptCost tunes password hashing; higher is slower and stronger.
	BcryptCost int `env:"BCRYPT_COST, default=10"`
}

type SessionConfig struct {
	// Secret signs the session cookie token. Required.
	Secret string `env:"SESSION_SECRET, required"`
	// TTL is the sliding session lifetime, refreshed on activity.
	TTL time.Duration `env:"SESSION_TTL, default=24h"`
	// CookieSecure marks the session cookie Secure for TLS deployments.
	CookieSecure bool `env:"COOKIE_SECURE, default=false"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=parking_portal"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
