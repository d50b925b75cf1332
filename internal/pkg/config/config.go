package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port          string `env:"PORT,            default=8080"`
	Env           string `env:"ENV,             default=development"`
	JWTSecret     string `env:"JWT_SECRET"`
	TokenTTLHours int    `env:"TOKEN_TTL_HOURS, default=24"`
	LogLevel      string `env:"LOG_LEVEL,       default=info"`
	AuditWorkers  int    `env:"AUDIT_WORKERS,   default=4"`

	Mongo   MongoConfig
	Redis   RedisConfig
	Gateway GatewayConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=catalog_system"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type GatewayConfig struct {
	IdentityURL string `env:"GATEWAY_IDENTITY_URL, default=http://localhost:8081"`
	CatalogURL  string `env:"GATEWAY_CATALOG_URL,  default=http://localhost:8082"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}

// TokenTTL returns the configured token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// Pretty reports whether logs should use the human-friendly console writer.
func (c *Config) Pretty() bool {
	return c.Env == "development"
}
