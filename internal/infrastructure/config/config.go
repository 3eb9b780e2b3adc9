package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port       string        `env:"PORT,        default=8080"`
	Env        string        `env:"ENV,         default=development"`
	JWTSecret  string        `env:"JWT_SECRET,  default=change-me-in-production"`
	LogLevel   string        `env:"LOG_LEVEL,   default=info"`
	SessionTTL time.Duration `env:"SESSION_TTL, default=168h"`

	// Storage selects the repository backend: "mongo" or "memory". The
	// memory driver keeps everything in process and needs neither Mongo nor
	// Redis; state is lost on restart.
	Storage string `env:"STORAGE_DRIVER, default=mongo"`

	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=store_ratings"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminConfig describes the bootstrap admin account seeded at startup when
// its email does not exist yet.
type AdminConfig struct {
	Name     string `env:"ADMIN_NAME,     default=System Administrator Account"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@example.com"`
	Password string `env:"ADMIN_PASSWORD, default=Admin123!"`
	Address  string `env:"ADMIN_ADDRESS,  default=123 Admin Street, Admin City, 12345"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	return &cfg, nil
}

// Production reports whether the service runs with production settings
// (secure cookies, JSON logs).
func (c *Config) Production() bool {
	return c.Env == "production"
}
