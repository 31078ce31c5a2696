package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Holiday  HolidayConfig
	Report   ReportConfig
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxConns        int32
	MaxConnLifetime time.Duration
}

// JWTConfig holds token verification settings
type JWTConfig struct {
	Secret string
	Skew   time.Duration
}

// AppConfig holds application configuration
type AppConfig struct {
	Name           string
	Version        string
	Port           int
	Env            string
	LogLevel       string
	Timezone       string
	AllowedOrigins []string
}

// HolidayConfig configures the public holiday source and its cache
type HolidayConfig struct {
	APIURL       string
	FetchTimeout time.Duration
	CacheTTL     time.Duration
	WarmInterval time.Duration
}

// ReportConfig tunes work hour aggregation
type ReportConfig struct {
	// PerEmployeeSpecial decides the special-company rule from each employee's
	// own company instead of from any employee of the facility.
	PerEmployeeSpecial bool
}

// Load reads the environment, optionally seeded from a .env file.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}
	dbMaxConns, err := strconv.Atoi(getEnv("DB_MAX_CONNS", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	dbConnLifetime, err := time.ParseDuration(getEnv("DB_MAX_CONN_LIFETIME", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_LIFETIME: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:            getEnv("DB_HOST", "localhost"),
		Port:            dbPort,
		User:            getEnv("DB_USER", "postgres"),
		Password:        getEnv("DB_PASSWORD", ""),
		Name:            getEnv("DB_NAME", "worktime"),
		SSLMode:         getEnv("DB_SSL_MODE", "disable"),
		MaxConns:        int32(dbMaxConns),
		MaxConnLifetime: dbConnLifetime,
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Name:           getEnv("APP_NAME", "worktime"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Timezone:       getEnv("APP_TIMEZONE", "Asia/Tokyo"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	jwtSkew, err := time.ParseDuration(getEnv("JWT_ACCEPTABLE_SKEW", "30s"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCEPTABLE_SKEW: %w", err)
	}

	config.JWT = JWTConfig{
		Secret: getEnv("JWT_SECRET_KEY", ""),
		Skew:   jwtSkew,
	}

	// Holiday configuration
	fetchTimeout, err := time.ParseDuration(getEnv("HOLIDAY_FETCH_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_FETCH_TIMEOUT: %w", err)
	}
	cacheTTL, err := time.ParseDuration(getEnv("HOLIDAY_CACHE_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_CACHE_TTL: %w", err)
	}
	warmInterval, err := time.ParseDuration(getEnv("HOLIDAY_WARM_INTERVAL", "6h"))
	if err != nil {
		return nil, fmt.Errorf("invalid HOLIDAY_WARM_INTERVAL: %w", err)
	}

	config.Holiday = HolidayConfig{
		APIURL:       getEnv("HOLIDAY_API_URL", "https://holidays-jp.github.io/api/v1"),
		FetchTimeout: fetchTimeout,
		CacheTTL:     cacheTTL,
		WarmInterval: warmInterval,
	}

	// Report configuration
	perEmployee, err := strconv.ParseBool(getEnv("REPORT_PER_EMPLOYEE_SPECIAL", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_PER_EMPLOYEE_SPECIAL: %w", err)
	}
	config.Report = ReportConfig{PerEmployeeSpecial: perEmployee}

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
	if _, err := time.LoadLocation(c.App.Timezone); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.App.Timezone, err)
	}
	if c.Holiday.FetchTimeout <= 0 {
		return fmt.Errorf("HOLIDAY_FETCH_TIMEOUT must be positive")
	}
	if c.Holiday.CacheTTL <= 0 {
		return fmt.Errorf("HOLIDAY_CACHE_TTL must be positive")
	}
	if c.Holiday.WarmInterval <= 0 {
		return fmt.Errorf("HOLIDAY_WARM_INTERVAL must be positive")
	}
	return nil
}

// Location returns the facility timezone used for business dates.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
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

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(key, fallback string) []string {
	value := getEnv(key, fallback)
	if value == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
