// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Spanner struct {
		ProjectID  string `env:"SPANNER_PROJECT_ID,default=local-project"`
		InstanceID string `env:"SPANNER_INSTANCE_ID,default=local-instance"`
		DatabaseID string `env:"SPANNER_DATABASE_ID,default=scase-food"`
	}

	Broker struct {
		URL string `env:"NATS_URL,default=nats://127.0.0.1:4222"`
		// RequestTimeout bounds every brokered request/reply call.
		RequestTimeout time.Duration `env:"NATS_REQUEST_TIMEOUT,default=5s"`
	}

	// Token settings are deliberately optional here: a missing secret or
	// expiry is a credential-issuance error, not a startup error.
	Token struct {
		Secret    string        `env:"JWT_SECRET"`
		ExpiresIn time.Duration `env:"JWT_EXPIRES_IN"`
	}
}

// Load reads configuration from the environment, sourcing a .env file
// first when one is present.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding environment: %w", err)
	}
	return cfg, nil
}

// SpannerDSN returns the Spanner database connection string.
func (c Config) SpannerDSN() string {
	return fmt.Sprintf("projects/%s/instances/%s/databases/%s",
		c.Spanner.ProjectID, c.Spanner.InstanceID, c.Spanner.DatabaseID)
}
