package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Access  DatabaseConfig
	Tenants TenantConfig
	JWT     JWTConfig
	App     AppConfig
}

// DatabaseConfig describes the shared access database that maps
// credentials to tenant databases and permission levels.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int32
	MinConns int32
}

// TenantConfig holds connection settings for per-restaurant databases.
// Tenant database names are derived as Prefix + tenant slug.
type TenantConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Prefix   string
	SSLMode  string
	// Pool bounds apply per tenant database, so they sit well below the
	// access database's.
	MaxConns int32
	MinConns int32
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

func Load() (*Config, error) {
	// .env is optional in deployed environments
	_ = godotenv.Load()

	config := &Config{}

	accessPort, err := strconv.Atoi(getEnv("ACCESS_DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid ACCESS_DB_PORT: %w", err)
	}
	accessMaxConns, err := getEnvInt32("ACCESS_DB_MAX_CONNS", 25)
	if err != nil {
		return nil, err
	}
	accessMinConns, err := getEnvInt32("ACCESS_DB_MIN_CONNS", 5)
	if err != nil {
		return nil, err
	}

	config.Access = DatabaseConfig{
		Host:     getEnv("ACCESS_DB_HOST", "localhost"),
		Port:     accessPort,
		User:     getEnv("ACCESS_DB_USER", "postgres"),
		Password: getEnv("ACCESS_DB_PASSWORD", ""),
		Name:     getEnv("ACCESS_DB_NAME", "rota_access"),
		SSLMode:  getEnv("ACCESS_DB_SSL_MODE", "disable"),
		MaxConns: accessMaxConns,
		MinConns: accessMinConns,
	}

	tenantPort, err := strconv.Atoi(getEnv("TENANT_DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid TENANT_DB_PORT: %w", err)
	}
	tenantMaxConns, err := getEnvInt32("TENANT_DB_MAX_CONNS", 10)
	if err != nil {
		return nil, err
	}
	tenantMinConns, err := getEnvInt32("TENANT_DB_MIN_CONNS", 2)
	if err != nil {
		return nil, err
	}

	config.Tenants = TenantConfig{
		Host:     getEnv("TENANT_DB_HOST", "localhost"),
		Port:     tenantPort,
		User:     getEnv("TENANT_DB_USER", "postgres"),
		Password: getEnv("TENANT_DB_PASSWORD", ""),
		Prefix:   getEnv("TENANT_DB_PREFIX", "rota_"),
		SSLMode:  getEnv("TENANT_DB_SSL_MODE", "disable"),
		MaxConns: tenantMaxConns,
		MinConns: tenantMinConns,
	}

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

	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Access.Password == "" {
		return fmt.Errorf("ACCESS_DB_PASSWORD is required")
	}
	if c.Tenants.Password == "" {
		return fmt.Errorf("TENANT_DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	return nil
}

// AccessDatabaseURL returns the PostgreSQL connection string for the access database
func (c *Config) AccessDatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Access.User,
		c.Access.Password,
		c.Access.Host,
		c.Access.Port,
		c.Access.Name,
		c.Access.SSLMode,
	)
}

// TenantDatabaseURL returns the PostgreSQL connection string for one tenant database
func (c *Config) TenantDatabaseURL(tenant string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s%s?sslmode=%s",
		c.Tenants.User,
		c.Tenants.Password,
		c.Tenants.Host,
		c.Tenants.Port,
		c.Tenants.Prefix,
		tenant,
		c.Tenants.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt32(key string, fallback int32) (int32, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return int32(parsed), nil
}
