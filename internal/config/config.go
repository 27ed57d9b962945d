package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	CRM       CRMConfig
	Business  BusinessConfig
	Scheduler SchedulerConfig
	Logging   LoggingConfig
	Health    HealthConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// CRMConfig holds amoCRM credentials. Domain and AccessToken are deliberately
// not validated at startup: the CRM endpoint reports their absence per request
// so the application service keeps working without them.
type CRMConfig struct {
	Domain      string
	AccessToken string
	Timeout     string
}

type BusinessConfig struct {
	DefaultInterestRate string
	DefaultListLimit    int
	ListCacheTTL        string
	StalePendingDays    int
}

type SchedulerConfig struct {
	Timezone string
}

type LoggingConfig struct {
	Level  string
	Format string
}

type HealthConfig struct {
	Timeout string
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("DATABASE_MAX_OPEN_CONNS", 25)
	viper.SetDefault("DATABASE_MAX_IDLE_CONNS", 5)
	viper.SetDefault("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("AMOCRM_TIMEOUT", "15s")
	viper.SetDefault("DEFAULT_INTEREST_RATE", "12.0")
	viper.SetDefault("DEFAULT_LIST_LIMIT", 50)
	viper.SetDefault("LIST_CACHE_TTL", "30s")
	viper.SetDefault("STALE_PENDING_DAYS", 3)
	viper.SetDefault("SCHEDULER_TIMEZONE", "Europe/Moscow")
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	// Typed getters rather than Unmarshal: with AutomaticEnv, env-only keys
	// such as DATABASE_URL are visible to Get* but absent from the settings
	// map Unmarshal reads.
	config := &Config{
		Server: ServerConfig{
			Port: viper.GetString("SERVER_PORT"),
			Host: viper.GetString("SERVER_HOST"),
			Env:  viper.GetString("ENV"),
		},
		Database: DatabaseConfig{
			URL:             viper.GetString("DATABASE_URL"),
			MaxOpenConns:    viper.GetInt("DATABASE_MAX_OPEN_CONNS"),
			MaxIdleConns:    viper.GetInt("DATABASE_MAX_IDLE_CONNS"),
			ConnMaxLifetime: viper.GetDuration("DATABASE_CONN_MAX_LIFETIME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		CRM: CRMConfig{
			Domain:      viper.GetString("AMOCRM_DOMAIN"),
			AccessToken: viper.GetString("AMOCRM_ACCESS_TOKEN"),
			Timeout:     viper.GetString("AMOCRM_TIMEOUT"),
		},
		Business: BusinessConfig{
			DefaultInterestRate: viper.GetString("DEFAULT_INTEREST_RATE"),
			DefaultListLimit:    viper.GetInt("DEFAULT_LIST_LIMIT"),
			ListCacheTTL:        viper.GetString("LIST_CACHE_TTL"),
			StalePendingDays:    viper.GetInt("STALE_PENDING_DAYS"),
		},
		Scheduler: SchedulerConfig{
			Timezone: viper.GetString("SCHEDULER_TIMEZONE"),
		},
		Logging: LoggingConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Format: viper.GetString("LOG_FORMAT"),
		},
		Health: HealthConfig{
			Timeout: viper.GetString("HEALTH_CHECK_TIMEOUT"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Business.DefaultListLimit <= 0 {
		return fmt.Errorf("DEFAULT_LIST_LIMIT must be greater than 0")
	}

	if c.Business.StalePendingDays <= 0 {
		return fmt.Errorf("STALE_PENDING_DAYS must be greater than 0")
	}

	// Validate interest rate
	rate, err := decimal.NewFromString(c.Business.DefaultInterestRate)
	if err != nil {
		return fmt.Errorf("DEFAULT_INTEREST_RATE must be a valid decimal: %w", err)
	}
	if rate.IsNegative() {
		return fmt.Errorf("DEFAULT_INTEREST_RATE must not be negative")
	}

	// Validate durations
	if _, err := time.ParseDuration(c.CRM.Timeout); err != nil {
		return fmt.Errorf("AMOCRM_TIMEOUT must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Business.ListCacheTTL); err != nil {
		return fmt.Errorf("LIST_CACHE_TTL must be a valid duration: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// CRMConfigured reports whether the amoCRM credentials are present
func (c *Config) CRMConfigured() bool {
	return c.CRM.Domain != "" && c.CRM.AccessToken != ""
}

// CRMBaseURL returns the base URL of the configured amoCRM account
func (c *Config) CRMBaseURL() string {
	return "https://" + c.CRM.Domain
}

// GetDefaultInterestRate returns the default annual interest rate as decimal
func (c *Config) GetDefaultInterestRate() decimal.Decimal {
	rate, _ := decimal.NewFromString(c.Business.DefaultInterestRate)
	return rate
}

// GetCRMTimeout returns the outbound CRM call timeout as duration
func (c *Config) GetCRMTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.CRM.Timeout)
	return timeout
}

// GetListCacheTTL returns the application list cache TTL as duration
func (c *Config) GetListCacheTTL() time.Duration {
	ttl, _ := time.ParseDuration(c.Business.ListCacheTTL)
	return ttl
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
