package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port                   int      `env:"PORT" envDefault:"8080"`
	LogLevel               string   `env:"LOG_LEVEL" envDefault:"info"`
	StripeSecretKey        string   `env:"STRIPE_SECRET_KEY"`
	StripePublishableKey   string   `env:"STRIPE_PUBLISHABLE_KEY"`
	StripeAPIBase          string   `env:"STRIPE_API_BASE" envDefault:"https://api.stripe.com"`
	StripeAPIVersion       string   `env:"STRIPE_API_VERSION"`
	DatabaseURL            string   `env:"DATABASE_URL"`
	RedisURL               string   `env:"REDIS_URL"`
	AdminPasswordHash      string   `env:"ADMIN_PASSWORD_HASH"`
	CORSAllowedOrigins     []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
	IssueRetentionDays     int      `env:"ISSUE_RETENTION_DAYS" envDefault:"30"`
	TriggerRateLimitPerMin int      `env:"TRIGGER_RATE_LIMIT_PER_MIN" envDefault:"10"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func (c *Config) IssueRetention() time.Duration {
	return time.Duration(c.IssueRetentionDays) * 24 * time.Hour
}

func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

func (c *Config) HasRedis() bool {
	return c.RedisURL != ""
}

// Validate rejects settings that would make the server misbehave. Missing Stripe
// keys are not an error here: they surface per request as configuration errors.
func (c *Config) Validate(isProduction bool) error {
	if c.AdminPasswordHash != "" {
		if !strings.HasPrefix(c.AdminPasswordHash, "$2a$") &&
			!strings.HasPrefix(c.AdminPasswordHash, "$2b$") &&
			!strings.HasPrefix(c.AdminPasswordHash, "$2y$") {
			return fmt.Errorf("ADMIN_PASSWORD_HASH must be a bcrypt hash (generate with: go run scripts/hash-password.go <password>)")
		}
	}

	if c.StripeSecretKey != "" && !strings.HasPrefix(c.StripeSecretKey, "sk_") && !strings.HasPrefix(c.StripeSecretKey, "rk_") {
		return fmt.Errorf("STRIPE_SECRET_KEY must start with sk_ or rk_")
	}
	if c.StripePublishableKey != "" && !strings.HasPrefix(c.StripePublishableKey, "pk_") {
		return fmt.Errorf("STRIPE_PUBLISHABLE_KEY must start with pk_")
	}
	if c.TriggerRateLimitPerMin <= 0 {
		return fmt.Errorf("TRIGGER_RATE_LIMIT_PER_MIN must be positive")
	}
	if c.IssueRetentionDays < 1 {
		return fmt.Errorf("ISSUE_RETENTION_DAYS must be at least 1")
	}

	if c.StripeSecretKey == "" {
		log.Warn().Msg("STRIPE_SECRET_KEY is empty: account, session and issue endpoints will fail")
	}
	if c.StripePublishableKey == "" {
		log.Warn().Msg("STRIPE_PUBLISHABLE_KEY is empty: account detail pages will not load embedded components")
	}

	if isProduction {
		if c.AdminPasswordHash == "" {
			log.Warn().Msg("ADMIN_PASSWORD_HASH is empty in production: dashboard is not password protected")
		}
		if strings.HasPrefix(c.StripeSecretKey, "sk_live_") {
			log.Warn().Msg("STRIPE_SECRET_KEY is a live key: the test-helper issue endpoint only works in test mode")
		}
		if strings.HasPrefix(c.RedisURL, "redis://") {
			log.Warn().Msg("REDIS_URL uses redis:// (not TLS) in production: consider using rediss://")
		}
	}

	return nil
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg("loaded .env file")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}
