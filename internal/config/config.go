// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents the application configuration
type Config struct {
	API       APIConfig
	Auth      AuthConfig
	Database  DatabaseConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	Sentry    SentryConfig
	Log       LogConfig
	Jobs      JobsConfig
}

// APIConfig contains API server settings
type APIConfig struct {
	// Port is the server port to listen on
	Port string
}

// AuthConfig contains authentication settings
type AuthConfig struct {
	// JWTSecret is the secret key used to sign JWT tokens
	JWTSecret string
	// AccessTokenDuration is the lifetime of access tokens
	AccessTokenDuration time.Duration
	// RefreshTokenDuration is the lifetime of refresh tokens
	RefreshTokenDuration time.Duration
	// RememberTokenDuration is the extended refresh lifetime for remembered sessions
	RememberTokenDuration time.Duration
	// HomePath is the redirect target after a successful login
	HomePath string
	// OTPExpiry is the lifetime of issued one-time passwords
	OTPExpiry time.Duration
}

// DatabaseConfig contains database connection settings
type DatabaseConfig struct {
	Host           string
	Port           int
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

// EmailConfig contains SMTP settings
type EmailConfig struct {
	Host               string
	Port               int
	Username           string
	Password           string
	From               string
	MaxConnections     int
	SendTimeoutSeconds int
}

// RateLimitConfig contains throttling settings
type RateLimitConfig struct {
	// LoginMax is the attempt budget per login key within LoginWindow
	LoginMax int
	// LoginWindow is the fixed window for login throttling, in seconds
	LoginWindow int
	// OTPMax is the request budget per OTP key within OTPWindow
	OTPMax int
	// OTPWindow is the fixed window for OTP throttling, in seconds
	OTPWindow int
	// GlobalRequests and GlobalWindow shape the per-IP token bucket on all routes
	GlobalRequests int
	GlobalWindow   int
}

// RedisConfig selects the shared attempt store when Addr is set
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// SentryConfig contains error reporting settings
type SentryConfig struct {
	DSN         string
	Environment string
}

// LogConfig controls optional file logging with rotation
type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// JobsConfig contains schedules and retention for the periodic jobs
type JobsConfig struct {
	ConversationCleanupSchedule string
	ConversationRetentionDays   int
	AttachmentCleanupSchedule   string
	SnapshotDailySchedule       string
	SnapshotMonthlySchedule     string
	SnapshotYearlySchedule      string
}

// LoadFromEnv retrieves configuration from environment variables
func (c *Config) LoadFromEnv() error {
	c.API = APIConfig{
		Port: getEnvOrDefault("API_PORT", "8080"),
	}
	c.Auth = AuthConfig{
		JWTSecret:             os.Getenv("JWT_SECRET"),
		AccessTokenDuration:   getEnvAsDuration("ACCESS_TOKEN_DURATION", 15*time.Minute),
		RefreshTokenDuration:  getEnvAsDuration("REFRESH_TOKEN_DURATION", 24*time.Hour),
		RememberTokenDuration: getEnvAsDuration("REMEMBER_TOKEN_DURATION", 30*24*time.Hour),
		HomePath:              getEnvOrDefault("HOME_PATH", "/"),
		OTPExpiry:             getEnvAsDuration("OTP_EXPIRY", 5*time.Minute),
	}
	c.Database = DatabaseConfig{
		Host:           getEnvOrDefault("DB_HOST", "localhost"),
		Port:           getEnvAsInt("DB_PORT", 5432),
		User:           getEnvOrDefault("DB_USER", "postgres"),
		Password:       getEnvOrDefault("DB_PASSWORD", "postgres"),
		DBName:         getEnvOrDefault("DB_NAME", "shopadmin"),
		SSLMode:        getEnvOrDefault("DB_SSL_MODE", "disable"),
		MigrationsPath: getEnvOrDefault("DB_MIGRATIONS_PATH", "migrations"),
	}
	c.Email = EmailConfig{
		Host:               os.Getenv("SMTP_HOST"),
		Port:               getEnvAsInt("SMTP_PORT", 587),
		Username:           os.Getenv("SMTP_USERNAME"),
		Password:           os.Getenv("SMTP_PASSWORD"),
		From:               os.Getenv("SMTP_FROM"),
		MaxConnections:     getEnvAsInt("SMTP_MAX_CONNECTIONS", 4),
		SendTimeoutSeconds: getEnvAsInt("SMTP_SEND_TIMEOUT", 10),
	}
	c.RateLimit = RateLimitConfig{
		LoginMax:       getEnvAsInt("RATE_LIMIT_LOGIN_MAX", 5),
		LoginWindow:    getEnvAsInt("RATE_LIMIT_LOGIN_WINDOW", 300),
		OTPMax:         getEnvAsInt("RATE_LIMIT_OTP_MAX", 3),
		OTPWindow:      getEnvAsInt("RATE_LIMIT_OTP_WINDOW", 300),
		GlobalRequests: getEnvAsInt("RATE_LIMIT_REQUESTS", 1000),
		GlobalWindow:   getEnvAsInt("RATE_LIMIT_WINDOW", 60),
	}
	c.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}
	c.Sentry = SentryConfig{
		DSN:         os.Getenv("SENTRY_DSN"),
		Environment: getEnvOrDefault("SENTRY_ENVIRONMENT", "production"),
	}
	c.Log = LogConfig{
		File:       os.Getenv("LOG_FILE"),
		MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 100),
		MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
		MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 28),
	}
	c.Jobs = JobsConfig{
		ConversationCleanupSchedule: getEnvOrDefault("JOB_CONVERSATION_CLEANUP_SCHEDULE", "0 1 * * *"),
		ConversationRetentionDays:   getEnvAsInt("JOB_CONVERSATION_RETENTION_DAYS", 90),
		AttachmentCleanupSchedule:   getEnvOrDefault("JOB_ATTACHMENT_CLEANUP_SCHEDULE", "0 3 * * 0"),
		SnapshotDailySchedule:       getEnvOrDefault("JOB_SNAPSHOT_DAILY_SCHEDULE", "5 0 * * *"),
		SnapshotMonthlySchedule:     getEnvOrDefault("JOB_SNAPSHOT_MONTHLY_SCHEDULE", "15 0 1 * *"),
		SnapshotYearlySchedule:      getEnvOrDefault("JOB_SNAPSHOT_YEARLY_SCHEDULE", "30 0 1 1 *"),
	}

	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	return nil
}

// getEnvAsInt retrieves an environment variable and converts it to an integer
func getEnvAsInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvAsDuration retrieves an environment variable and parses it as a duration
func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvOrDefault(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
