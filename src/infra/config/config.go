// Package config handles application configuration via environment variables.
// It uses kelseyhightower/envconfig for parsing and provides sensible defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Environment names accepted by APP_ENV.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// minSecretLength is the shortest HMAC secret Load accepts.
const minSecretLength = 16

// Config holds all application configuration.
// Values are loaded from environment variables with the prefix "APP".
// Example: APP_PORT=3000, APP_JWT_SECRET=...
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Port is the HTTP server port (default: 3000)
	Port int `envconfig:"PORT" default:"3000"`

	// Host is the HTTP server host (default: 0.0.0.0)
	Host string `envconfig:"HOST" default:"0.0.0.0"`

	// Env selects development or production behaviour (default: production).
	// Development exposes internal error details in responses.
	Env string `envconfig:"ENV" default:"production"`

	ReadTimeout     time.Duration `envconfig:"READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`

	// MaxBodyBytes caps request bodies (default: 10MB)
	MaxBodyBytes int64 `envconfig:"MAX_BODY_BYTES" default:"10485760"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name     string `envconfig:"DB_NAME" default:"diarybook"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	// MaxOpenConns is the maximum number of open connections (default: 25)
	MaxOpenConns int `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`

	// MaxIdleConns is the number of connections kept warm (default: 5)
	MaxIdleConns int `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`

	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`

	// Migrate applies pending schema migrations at startup (default: false)
	Migrate bool `envconfig:"DB_MIGRATE" default:"false"`
}

// AuthConfig holds credential verification settings.
type AuthConfig struct {
	// JWTSecret is the shared HMAC key used to verify bearer tokens (required)
	JWTSecret string `envconfig:"JWT_SECRET" required:"true"`

	// JWTTTL is the lifetime of tokens minted by the local issuer (default: 24h)
	JWTTTL time.Duration `envconfig:"JWT_TTL" default:"24h"`

	// CookieName is the cookie checked before the Authorization header (default: token)
	CookieName string `envconfig:"AUTH_COOKIE" default:"token"`
}

// CORSConfig holds cross-origin settings.
type CORSConfig struct {
	// FrontendURL is the only origin allowed to send credentialed requests
	FrontendURL string `envconfig:"FRONTEND_URL" default:"http://localhost:3000"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	// Level is the log level: debug, info, warn, error (default: info)
	Level string `envconfig:"LOG_LEVEL" default:"info"`

	// Format is the log format: json, text, plain (default: json)
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// DSN returns the PostgreSQL connection string.
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// Addr returns the server address in host:port format.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// IsDevelopment reports whether development diagnostics are enabled.
func (c *ServerConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, EnvDevelopment)
}

// Load reads configuration from environment variables.
// It returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	var cfg Config

	// Load each config section separately to flatten env var names
	// This allows env vars like APP_PORT instead of APP_SERVER_PORT
	if err := envconfig.Process("APP", &cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Database); err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Auth); err != nil {
		return nil, fmt.Errorf("failed to load auth config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.CORS); err != nil {
		return nil, fmt.Errorf("failed to load cors config: %w", err)
	}
	if err := envconfig.Process("APP", &cfg.Log); err != nil {
		return nil, fmt.Errorf("failed to load log config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	var errs []error
	if len(c.Auth.JWTSecret) < minSecretLength {
		errs = append(errs, fmt.Errorf("APP_JWT_SECRET must be at least %d characters", minSecretLength))
	}
	if c.Auth.JWTTTL <= 0 {
		errs = append(errs, errors.New("APP_JWT_TTL must be positive"))
	}
	switch strings.ToLower(c.Server.Env) {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("APP_ENV must be %q or %q, got %q", EnvDevelopment, EnvProduction, c.Server.Env))
	}
	if c.Auth.CookieName == "" {
		errs = append(errs, errors.New("APP_AUTH_COOKIE must not be empty"))
	}
	return errors.Join(errs...)
}

// MustLoad loads configuration and panics on error.
// Use this only in main.go during startup.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
