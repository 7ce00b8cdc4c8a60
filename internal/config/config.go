package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds the full service configuration, loaded once at startup and
// passed explicitly to the components that need it.
type Config struct {
	Server ServerConfig
	Token  TokenConfig
	Mongo  MongoConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int           `env:"SERVER_PORT"             envDefault:"8080"`
	Env             string        `env:"SERVER_ENV"              envDefault:"development"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// TokenConfig holds JWT settings for the token service.
type TokenConfig struct {
	Secret       string        `env:"TOKEN_SECRET"`
	Issuer       string        `env:"TOKEN_ISSUER"     envDefault:"wellnest"`
	ExpiresIn    time.Duration `env:"TOKEN_EXPIRES_IN" envDefault:"168h"`
	OTPExpiresIn time.Duration `env:"OTP_EXPIRES_IN"   envDefault:"10m"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"wellnest"`
}

// Load parses the configuration from environment variables.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate checks that required settings are present.
func (c *Config) validate() error {
	if c.Token.Secret == "" {
		return fmt.Errorf("missing TOKEN_SECRET environment variable")
	}
	if c.Mongo.URI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}

	return nil
}
