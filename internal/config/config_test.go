package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The repo must boot from its own shipped config without any environment
// overrides.
func TestLoad_ShippedDevConfig(t *testing.T) {
	cfg, err := Load("../../config/config.dev.yaml")
	assert.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.GreaterOrEqual(t, len(cfg.JWT.Secret), 32)
	assert.Equal(t, "0 0 2 * * *", cfg.Scheduler.MarkOverdueInvoices)
}

func TestValidate_JWTSecret(t *testing.T) {
	base := func() *Config {
		return &Config{
			Server:   ServerConfig{Host: "localhost", Port: 8080},
			Database: DatabaseConfig{Host: "localhost", User: "app", Database: "app"},
			JWT:      JWTConfig{Secret: "0123456789abcdef0123456789abcdef", AccessTokenExpiry: 60},
		}
	}

	t.Run("LongEnough", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("TooShort", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = "dev-secret-change-me"
		assert.Error(t, cfg.Validate())
	})

	t.Run("Missing", func(t *testing.T) {
		cfg := base()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})
}
