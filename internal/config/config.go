package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	App      AppConfig
	JWT      JWTConfig
	Device   DeviceConfig
	Sync     SyncConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// JWTConfig holds operator token configuration
type JWTConfig struct {
	Secret           string
	AccessExpiration string
	OperatorKey      string
}

// DeviceConfig holds the biometric terminal endpoint and the attendance
// interpretation knobs tied to the deployment's locale.
type DeviceConfig struct {
	Host    string
	Port    int
	Timeout time.Duration
	// Timezone is the IANA name of the deployment's local day boundary.
	Timezone string
	// EarlyMorningBoundaryHour is the exclusive end of the very-early
	// window; local punches in [0, boundary) are flagged for audit.
	EarlyMorningBoundaryHour int
	// LateAfter is the local clock time ("15:04") at or past which a punch
	// counts as late.
	LateAfter string
}

// SyncConfig holds the scheduled sync settings.
type SyncConfig struct {
	Interval time.Duration
	Policy   string
}

func Load() (*Config, error) {
	// Missing .env is fine in containered deployments; env vars win anyway.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "presensi-hris"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
		OperatorKey:      getEnv("OPERATOR_API_KEY", ""),
	}

	// Device configuration
	devicePort, err := strconv.Atoi(getEnv("DEVICE_PORT", "4370"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_PORT: %w", err)
	}

	deviceTimeout, err := time.ParseDuration(getEnv("DEVICE_TIMEOUT", "20s"))
	if err != nil {
		return nil, fmt.Errorf("invalid DEVICE_TIMEOUT: %w", err)
	}

	earlyBoundary, err := strconv.Atoi(getEnv("EARLY_MORNING_BOUNDARY_HOUR", "6"))
	if err != nil {
		return nil, fmt.Errorf("invalid EARLY_MORNING_BOUNDARY_HOUR: %w", err)
	}

	config.Device = DeviceConfig{
		Host:                     getEnv("DEVICE_HOST", ""),
		Port:                     devicePort,
		Timeout:                  deviceTimeout,
		Timezone:                 getEnv("DEVICE_TIMEZONE", "Asia/Jakarta"),
		EarlyMorningBoundaryHour: earlyBoundary,
		LateAfter:                getEnv("LATE_AFTER", "09:00"),
	}

	// Sync configuration
	syncInterval, err := time.ParseDuration(getEnv("SYNC_INTERVAL", "10m"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_INTERVAL: %w", err)
	}

	config.Sync = SyncConfig{
		Interval: syncInterval,
		Policy:   getEnv("SYNC_DEDUP_POLICY", "first"),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.JWT.OperatorKey == "" {
		return fmt.Errorf("OPERATOR_API_KEY is required")
	}
	if c.Device.Host == "" {
		return fmt.Errorf("DEVICE_HOST is required")
	}
	if c.Device.EarlyMorningBoundaryHour < 0 || c.Device.EarlyMorningBoundaryHour > 23 {
		return fmt.Errorf("EARLY_MORNING_BOUNDARY_HOUR must be between 0 and 23")
	}
	if _, err := time.LoadLocation(c.Device.Timezone); err != nil {
		return fmt.Errorf("invalid DEVICE_TIMEZONE: %w", err)
	}
	if _, err := time.Parse("15:04", c.Device.LateAfter); err != nil {
		return fmt.Errorf("invalid LATE_AFTER: %w", err)
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// LateAfterOffset converts LateAfter to an offset from local midnight.
func (c *Config) LateAfterOffset() time.Duration {
	clock, err := time.Parse("15:04", c.Device.LateAfter)
	if err != nil {
		return 9 * time.Hour
	}
	return time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
