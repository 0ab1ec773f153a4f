package config

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrMissingJWTSecret = errors.New("required environment variable not set: JWT_SECRET")

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL  string
	FallbackPath string

	CacheSize int
	CacheTTL  time.Duration

	Retry RetryConfig
	Admin AdminConfig

	JWTSecret string
	JWTExpiry time.Duration

	ProbeInterval time.Duration

	SMTP SMTPConfig
	// NotifyEmail receives new inquiry notices. Defaults to the admin email.
	NotifyEmail string
}

type SMTPConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

type RetryConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

type AdminConfig struct {
	Email    string
	Password string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	adminEmail := getEnv("ADMIN_EMAIL", "admin@example.com")

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		DatabaseURL:  getEnv("DATABASE_URL", ""),
		FallbackPath: getEnv("FALLBACK_PATH", "data/fallback.db"),

		CacheSize: getEnvInt("CACHE_SIZE", 64),
		CacheTTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),

		Retry: RetryConfig{
			MaxAttempts: getEnvInt("RETRY_MAX_ATTEMPTS", 1),
			Delay:       getEnvDuration("RETRY_DELAY", 500*time.Millisecond),
		},

		Admin: AdminConfig{
			Email:    adminEmail,
			Password: getEnv("ADMIN_PASSWORD", ""),
		},

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: getEnvDuration("JWT_EXPIRY", 8*time.Hour),

		ProbeInterval: getEnvDuration("PROBE_INTERVAL", time.Minute),

		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", ""),
			Port:     getEnv("SMTP_PORT", "587"),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", ""),
		},
		NotifyEmail: getEnv("NOTIFY_EMAIL", adminEmail),
	}, nil
}

// Validate checks the settings the HTTP server cannot run without.
// The operator CLI only needs storage settings and skips it.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
