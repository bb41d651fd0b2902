package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Backend BackendConfig
	Mongo   MongoConfig
	Redis   RedisConfig

	JournalWorkers int `env:"JOURNAL_WORKERS, default=4"`
}

type SessionConfig struct {
	Secret string        `env:"SESSION_SECRET, required"`
	TTL    time.Duration `env:"SESSION_TTL,    default=12h"`
	// Secure marks the cookie HTTPS-only.
	Secure bool `env:"SESSION_SECURE, default=false"`
}

type BackendConfig struct {
	BaseURL string `env:"BACKEND_BASE_URL, default=http://localhost:8081"`
	// Timeout of zero leaves backend calls unbounded.
	Timeout time.Duration `env:"BACKEND_TIMEOUT, default=0s"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=librarydesk"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// IsDevelopment enables pretty logs and the swagger UI.
func (c *Config) IsDevelopment() bool { return c.Env == "development" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

// LoadBackend reads only the backend settings. The login command uses it so
// that it runs without session or storage configuration.
func LoadBackend(ctx context.Context) (*BackendConfig, error) {
	return loadBackend(ctx, envconfig.OsLookuper())
}

func loadBackend(ctx context.Context, l envconfig.Lookuper) (*BackendConfig, error) {
	var cfg BackendConfig
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("load backend config: %w", err)
	}
	return &cfg, nil
}
