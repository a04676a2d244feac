package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "marketplace.db", cfg.DB.SQLitePath)
	assert.Equal(t, "admin", cfg.Seed.AdminUsername)
	assert.Equal(t, "vendor123", cfg.Seed.VendorDefaultPassword)
	assert.Equal(t, "marketplace.events", cfg.AMQP.Exchange)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadConfigPrefixes(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("DB_NAME", "events")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("IS_PROD", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DB.Driver)
	assert.Equal(t, "events", cfg.DB.Name)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.IsProd)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	assert.Error(t, err)
}
