package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"PORT", "DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME",
		"DB_PING_INTERVAL", "JWT_SECRET", "JWT_TTL", "CORS_ORIGIN", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "127.0.0.1", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
	assert.Equal(t, "flowershop", cfg.DB.Name)
	assert.Equal(t, 30*time.Second, cfg.PingInterval)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "9000")
	t.Setenv("DB_HOST", "mysql")
	t.Setenv("DB_PORT", "3307")
	t.Setenv("DB_PING_INTERVAL", "5s")
	t.Setenv("JWT_TTL", "15m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "mysql", cfg.DB.Host)
	assert.Equal(t, 3307, cfg.DB.Port)
	assert.Equal(t, 5*time.Second, cfg.PingInterval)
	assert.Equal(t, 15*time.Minute, cfg.TokenTTL)
}

func TestLoad_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestLoad_BadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PORT", "abc")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_PORT")

	t.Setenv("DB_PORT", "")
	t.Setenv("JWT_TTL", "forever")
	_, err = Load()
	assert.ErrorContains(t, err, "JWT_TTL")
}
