// Package config provides configuration for the application
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
	Session  SessionConfig
	Admin    AdminConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Path string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port int
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level string
}

// SessionConfig holds session cookie settings
type SessionConfig struct {
	Secret       string
	TTL          time.Duration
	CookieSecure bool
}

// AdminConfig holds the credentials of the admin seeded into a new store
type AdminConfig struct {
	Fullname string
	Email    string
	Password string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (optional)
	godotenv.Load()

	cfg := &Config{}

	// Database configuration
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "data.db" // default store file
	}
	cfg.Database.Path = dbPath

	// Server configuration
	serverPortStr := os.Getenv("SERVER_PORT")
	if serverPortStr == "" {
		serverPortStr = "8080" // default port
	}
	serverPort, err := strconv.Atoi(serverPortStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
	}
	cfg.Server.Port = serverPort

	// Logging configuration
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info" // default level
	}
	cfg.Logging.Level = logLevel

	// Session configuration
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		return nil, fmt.Errorf("SESSION_SECRET is required")
	}
	cfg.Session.Secret = sessionSecret

	// Session lifetime (default: 24 hours)
	sessionTTLStr := os.Getenv("SESSION_TTL")
	if sessionTTLStr == "" {
		sessionTTLStr = "24h"
	}
	sessionTTL, err := time.ParseDuration(sessionTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.TTL = sessionTTL

	cookieSecureStr := os.Getenv("COOKIE_SECURE")
	if cookieSecureStr != "" {
		cookieSecure, err := strconv.ParseBool(cookieSecureStr)
		if err != nil {
			return nil, fmt.Errorf("invalid COOKIE_SECURE: %w", err)
		}
		cfg.Session.CookieSecure = cookieSecure
	}

	// Seed admin configuration
	cfg.Admin.Fullname = getEnvDefault("ADMIN_NAME", "Admin User")
	cfg.Admin.Email = getEnvDefault("ADMIN_EMAIL", "admin@example.com")
	cfg.Admin.Password = getEnvDefault("ADMIN_PASSWORD", "admin123")

	return cfg, nil
}

// LoadDatabase reads only the store and logging settings used by maintenance commands
func LoadDatabase() (*Config, error) {
	godotenv.Load()

	cfg := &Config{}
	cfg.Database.Path = getEnvDefault("DB_PATH", "data.db")
	cfg.Logging.Level = getEnvDefault("LOG_LEVEL", "info")

	return cfg, nil
}

// DSN returns the database connection string for the SQLite driver.
// The path is percent-encoded so '?', '#' and '%' stay part of the file name.
func (c *Config) DSN() string {
	if c.Database.Path == "" {
		return ""
	}
	path := (&url.URL{Path: c.Database.Path}).EscapedPath()
	return fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(0)", path)
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
