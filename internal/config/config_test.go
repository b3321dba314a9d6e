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

	assert.Equal(t, "jobboard-service", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 60, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, 7*24*60, cfg.Auth.RefreshTokenTTLMinutes)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, "uploads", cfg.Upload.Dir)
	assert.Equal(t, int64(5*1024*1024), cfg.Upload.MaxSizeBytes)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("AUTH_ACCESS_TOKEN_TTL_MINUTES", "15")
	t.Setenv("UPLOAD_MAX_SIZE_BYTES", "1048576")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.App.Port)
	assert.Equal(t, 15, cfg.Auth.AccessTokenTTLMinutes)
	assert.Equal(t, int64(1048576), cfg.Upload.MaxSizeBytes)
}

func TestAppConfigHelpers(t *testing.T) {
	app := AppConfig{Host: "127.0.0.1", Port: "8080", RequestTimeoutSeconds: 30}
	assert.Equal(t, "127.0.0.1:8080", app.Addr())
	assert.Equal(t, 30*time.Second, app.RequestTimeout())

	app.RequestTimeoutSeconds = 0
	assert.Equal(t, time.Duration(0), app.RequestTimeout())
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	_, err := Load()
	assert.Error(t, err)
}
