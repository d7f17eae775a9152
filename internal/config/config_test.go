package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("ADMIN_USER", "owner")
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("TRACKING_TICK_MS", "500")

	cfg := Load()

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "owner", cfg.AdminUser)
	assert.Equal(t, "s3cret", cfg.AdminPassword)
	assert.Equal(t, 500*time.Millisecond, cfg.TrackingTick)
	assert.Equal(t, 2*time.Second, cfg.WarehouseFlush)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")

	cfg := Load()

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "admin", cfg.AdminUser)
	assert.Equal(t, 2500*time.Millisecond, cfg.TrackingTick)
}
