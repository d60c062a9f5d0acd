// Package config holds the startup configuration for the API process. All
// values come from the environment; required fields abort startup when
// missing rather than failing later mid-request.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config enumerates the required and optional startup settings.
type Config struct {
	Port          int    `env:"PORT"            envDefault:"5000"`
	MongoURI      string `env:"MONGO_URI"`
	MongoDatabase string `env:"MONGO_DATABASE"  envDefault:"stockroom"`
	JWTSecret     string `env:"JWT_SECRET"`
	FrontendURL   string `env:"FRONTEND_URL"`
	EmailSender   string `env:"EMAIL_SENDER"`
	SupportEmail  string `env:"SUPPORT_EMAIL"`
	UploadDir     string `env:"UPLOAD_DIR"      envDefault:"uploads"`
	PublicBaseURL string `env:"PUBLIC_BASE_URL" envDefault:"http://localhost:5000"`

	// Consul registration is opt-in; leave the address empty to skip it.
	ConsulAddr  string `env:"CONSUL_HTTP_ADDR"`
	ServiceName string `env:"SERVICE_NAME"  envDefault:"stockroom-api"`
	ServiceHost string `env:"SERVICE_HOST"  envDefault:"localhost"`
}

// New parses and validates the configuration from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	if err := cfg.validate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to validate configuration")
	}

	return &cfg
}

// validate checks that every required setting is present.
func (c *Config) validate() error {
	if c.MongoURI == "" {
		return fmt.Errorf("missing MONGO_URI environment variable")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("missing JWT_SECRET environment variable")
	}
	if c.FrontendURL == "" {
		return fmt.Errorf("missing FRONTEND_URL environment variable")
	}
	if c.EmailSender == "" {
		return fmt.Errorf("missing EMAIL_SENDER environment variable")
	}
	if c.SupportEmail == "" {
		return fmt.Errorf("missing SUPPORT_EMAIL environment variable")
	}

	return nil
}
