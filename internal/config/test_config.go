package config

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadTestConfig loads the configuration from the .env file or environment variables for integration tests
// If TEST_DB_PATH is not set, returns a Config with an empty database path
// which allows tests to fall back to a temporary store file
func LoadTestConfig() (*Config, error) {
	// Try to load .env file (ignore error if file doesn't exist - it's optional)
	// Try both possible paths
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.Database.Path = os.Getenv("TEST_DB_PATH")

	cfg.Session.Secret = os.Getenv("TEST_SESSION_SECRET")
	if cfg.Session.Secret == "" {
		cfg.Session.Secret = "integration-test-secret"
	}

	return cfg, nil
}
