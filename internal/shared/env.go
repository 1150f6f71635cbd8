package shared

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables overlaid onto [Config] by [Config.ApplyEnv].
const (
	EnvDatabasePath  = "MMA_DB_PATH"
	EnvHost          = "MMA_HOST"
	EnvPort          = "MMA_PORT"
	EnvJWTSecret     = "MMA_JWT_SECRET"
	EnvTokenTTL      = "MMA_TOKEN_TTL"
	EnvAdminEmail    = "MMA_ADMIN_EMAIL"
	EnvAdminPassword = "MMA_ADMIN_PASSWORD"
	EnvLogLevel      = "MMA_LOG_LEVEL"
	EnvBaseURL       = "MMA_BASE_URL"
)

// LoadEnvFile reads KEY=VALUE pairs from a dotenv file into the process environment.
//
// Variables already set are left alone and a missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides config values with any MMA_* environment variables that are set.
func (c *Config) ApplyEnv() error {
	c.Database.Path = firstNonEmpty(os.Getenv(EnvDatabasePath), c.Database.Path)
	c.Server.Host = firstNonEmpty(os.Getenv(EnvHost), c.Server.Host)
	c.Auth.JWTSecret = firstNonEmpty(os.Getenv(EnvJWTSecret), c.Auth.JWTSecret)
	c.Auth.TokenTTL = firstNonEmpty(os.Getenv(EnvTokenTTL), c.Auth.TokenTTL)
	c.Auth.AdminEmail = firstNonEmpty(os.Getenv(EnvAdminEmail), c.Auth.AdminEmail)
	c.Log.Level = firstNonEmpty(os.Getenv(EnvLogLevel), c.Log.Level)
	c.Client.BaseURL = firstNonEmpty(os.Getenv(EnvBaseURL), c.Client.BaseURL)

	if v := os.Getenv(EnvAdminPassword); v != "" {
		c.Auth.AdminPassword = v
		c.Auth.AdminPasswordHash = ""
	}

	if v := os.Getenv(EnvPort); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, EnvPort, v)
		}
		c.Server.Port = port
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
