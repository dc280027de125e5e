package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigMethods(t *testing.T) {
	t.Run("Addr returns formatted port", func(t *testing.T) {
		cfg := &Config{Port: 3000}
		assert.Equal(t, ":3000", cfg.Addr())
	})

	t.Run("IssueRetention converts days to duration", func(t *testing.T) {
		cfg := &Config{IssueRetentionDays: 2}
		assert.Equal(t, 48*time.Hour, cfg.IssueRetention())
	})

	t.Run("optional backends", func(t *testing.T) {
		cfg := &Config{}
		assert.False(t, cfg.HasDatabase())
		assert.False(t, cfg.HasRedis())

		cfg = &Config{DatabaseURL: "postgres://localhost/test", RedisURL: "redis://localhost:6379"}
		assert.True(t, cfg.HasDatabase())
		assert.True(t, cfg.HasRedis())
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			StripeSecretKey:        "sk_test_abc",
			StripePublishableKey:   "pk_test_abc",
			TriggerRateLimitPerMin: 10,
			IssueRetentionDays:     30,
		}
	}

	t.Run("accepts valid config", func(t *testing.T) {
		assert.NoError(t, valid().Validate(false))
	})

	t.Run("accepts missing stripe keys", func(t *testing.T) {
		cfg := valid()
		cfg.StripeSecretKey = ""
		cfg.StripePublishableKey = ""
		assert.NoError(t, cfg.Validate(true))
	})

	t.Run("rejects non-bcrypt password hash", func(t *testing.T) {
		cfg := valid()
		cfg.AdminPasswordHash = "plaintext"
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("accepts bcrypt password hash", func(t *testing.T) {
		cfg := valid()
		cfg.AdminPasswordHash = "$2a$10$abcdefghijklmnopqrstuv"
		assert.NoError(t, cfg.Validate(false))
	})

	t.Run("rejects publishable key in secret slot", func(t *testing.T) {
		cfg := valid()
		cfg.StripeSecretKey = "pk_test_abc"
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects secret key in publishable slot", func(t *testing.T) {
		cfg := valid()
		cfg.StripePublishableKey = "sk_test_abc"
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects non-positive rate limit", func(t *testing.T) {
		cfg := valid()
		cfg.TriggerRateLimitPerMin = 0
		assert.Error(t, cfg.Validate(false))
	})

	t.Run("rejects retention below one day", func(t *testing.T) {
		for _, days := range []int{0, -7} {
			cfg := valid()
			cfg.IssueRetentionDays = days
			err := cfg.Validate(false)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "ISSUE_RETENTION_DAYS")
		}
	})
}

func TestLoad(t *testing.T) {
	keys := []string{
		"PORT", "LOG_LEVEL", "STRIPE_SECRET_KEY", "STRIPE_PUBLISHABLE_KEY", "STRIPE_API_BASE",
		"DATABASE_URL", "REDIS_URL", "CORS_ALLOWED_ORIGINS", "ISSUE_RETENTION_DAYS",
		"TRIGGER_RATE_LIMIT_PER_MIN",
	}
	originalEnv := make(map[string]string, len(keys))
	for _, k := range keys {
		originalEnv[k] = os.Getenv(k)
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	t.Run("loads config with defaults", func(t *testing.T) {
		for _, k := range keys {
			os.Unsetenv(k)
		}

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Port)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "https://api.stripe.com", cfg.StripeAPIBase)
		assert.Empty(t, cfg.StripeSecretKey)
		assert.Empty(t, cfg.StripePublishableKey)
		assert.Equal(t, 30, cfg.IssueRetentionDays)
		assert.Equal(t, 10, cfg.TriggerRateLimitPerMin)
		assert.Empty(t, cfg.CORSAllowedOrigins)
	})

	t.Run("loads custom values", func(t *testing.T) {
		os.Setenv("PORT", "3000")
		os.Setenv("LOG_LEVEL", "debug")
		os.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
		os.Setenv("STRIPE_PUBLISHABLE_KEY", "pk_test_123")
		os.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000,https://ops.example.com")
		os.Setenv("ISSUE_RETENTION_DAYS", "7")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "sk_test_123", cfg.StripeSecretKey)
		assert.Equal(t, "pk_test_123", cfg.StripePublishableKey)
		assert.Equal(t, []string{"http://localhost:3000", "https://ops.example.com"}, cfg.CORSAllowedOrigins)
		assert.Equal(t, 7, cfg.IssueRetentionDays)
	})

	t.Run("fails on malformed number", func(t *testing.T) {
		os.Setenv("PORT", "not-a-port")

		_, err := Load()
		assert.Error(t, err)
	})
}
