package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog/log"
)

var knownWeakSecrets = []string{
	"change-me", "dev-secret-change-me", "secret", "admin", "password",
}

type Config struct {
	Port             int    `env:"PORT" envDefault:"8080"`
	Environment      string `env:"APP_ENV" envDefault:"development"`
	DatabaseURL      string `env:"DATABASE_URL,required"`
	RedisURL         string `env:"REDIS_URL,required"`
	AdminTokenSecret string `env:"ADMIN_TOKEN_SECRET,required"`
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`

	StorageEndpoint      string `env:"STORAGE_ENDPOINT"`
	StorageAccessKey     string `env:"STORAGE_ACCESS_KEY"`
	StorageSecretKey     string `env:"STORAGE_SECRET_KEY"`
	StorageBucket        string `env:"STORAGE_BUCKET" envDefault:"inara-media"`
	StorageUseSSL        bool   `env:"STORAGE_USE_SSL" envDefault:"true"`
	StoragePublicBaseURL string `env:"STORAGE_PUBLIC_BASE_URL"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) StorageConfigured() bool {
	return c.StorageEndpoint != "" && c.StorageAccessKey != "" && c.StorageSecretKey != ""
}

func (c *Config) Validate() error {
	if c.IsProduction() {
		if err := validateSecret("ADMIN_TOKEN_SECRET", c.AdminTokenSecret); err != nil {
			return err
		}
		if !c.StorageConfigured() {
			log.Warn().Msg("object storage is not configured in production: admin image uploads disabled")
		} else if c.StoragePublicBaseURL == "" {
			log.Warn().Msg("STORAGE_PUBLIC_BASE_URL is empty: uploaded image URLs will use the storage endpoint")
		}
	}
	return nil
}

func validateSecret(name, value string) error {
	if len(value) < 32 {
		return fmt.Errorf("%s must be at least 32 characters in production (generate with: openssl rand -base64 32)", name)
	}
	for _, weak := range knownWeakSecrets {
		if value == weak {
			return fmt.Errorf("%s is a known weak default; set a strong secret in production", name)
		}
	}
	return nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
