// Package config loads the service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/01moynul/flowershop-golang/internal/auth"
	"github.com/01moynul/flowershop-golang/internal/database"
)

// Config holds runtime settings.
type Config struct {
	Port         string
	DB           database.Config
	PingInterval time.Duration
	JWTSecret    []byte
	TokenTTL     time.Duration
	CORSOrigin   string
	LogLevel     string
}

// Load reads the environment. Call godotenv.Load first if a .env file
// should be honoured. JWT_SECRET is the only required key.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnv("PORT", "8080"),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			User:     getEnv("DB_USER", "root"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "flowershop"),
		},
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DB.Port, err = getInt("DB_PORT", 3306); err != nil {
		return nil, err
	}
	if cfg.PingInterval, err = getDuration("DB_PING_INTERVAL", database.DefaultPingInterval); err != nil {
		return nil, err
	}
	if cfg.TokenTTL, err = getDuration("JWT_TTL", auth.DefaultTokenTTL); err != nil {
		return nil, err
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, errors.New("JWT_SECRET environment variable is not set")
	}
	cfg.JWTSecret = []byte(secret)

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
