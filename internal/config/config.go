package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Mongo    MongoConfig
	Static   StaticConfig
	Auth     AuthConfig
	CORS     CORSConfig
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
}

type ServerConfig struct {
	Port            string        `env:"PORT" env-required:"true"`
	Host            string        `env:"HOST" env-default:"0.0.0.0"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" env-default:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
}

type MongoConfig struct {
	URI               string        `env:"MONGODB_URI" env-required:"true"`
	Database          string        `env:"DB_NAME" env-required:"true"`
	LessonsCollection string        `env:"LESSONS_COLLECTION" env-default:"lessons"`
	OrdersCollection  string        `env:"ORDERS_COLLECTION" env-default:"orders"`
	ConnectTimeout    time.Duration `env:"MONGODB_CONNECT_TIMEOUT" env-default:"10s"`
}

type StaticConfig struct {
	FrontendDir string `env:"FRONTEND_DIR" env-default:"./frontend"`
	ImagesDir   string `env:"IMAGES_DIR" env-default:"./images"`
}

type AuthConfig struct {
	APIKeys []string `env:"ADMIN_API_KEYS" env-separator:","` // Empty disables auth on lesson updates
}

type CORSConfig struct {
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"*"`
}

// Load reads an optional .env file and then the process environment.
// Missing required variables are reported as an error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGODB_URI is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("DB_NAME is required")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// Addr returns the host:port the HTTP server listens on
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}
