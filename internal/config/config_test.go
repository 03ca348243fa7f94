package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.False(t, cfg.CartSyncEnabled)
	assert.False(t, cfg.KafkaEnabled)
	assert.True(t, cfg.SeedCatalog)
	assert.Equal(t, 168*time.Hour, cfg.CartTTL())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CART_SYNC_ENABLED", "true")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("CART_TTL_HOURS", "24")
	t.Setenv("CORS_ORIGINS", "https://lumina.example,https://admin.lumina.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.True(t, cfg.CartSyncEnabled)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 24*time.Hour, cfg.CartTTL())
	assert.Equal(t, []string{"https://lumina.example", "https://admin.lumina.example"}, cfg.CORSOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "0")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidTTL(t *testing.T) {
	t.Setenv("CART_TTL_HOURS", "0")
	_, err := Load()
	assert.Error(t, err)
}
