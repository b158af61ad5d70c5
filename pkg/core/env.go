package core

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadEnv.
const (
	EnvBaseURL    = "PICOSTOCKS_BASE_URL"
	EnvUserID     = "PICOSTOCKS_USER_ID"
	EnvPrivateKey = "PICOSTOCKS_PRIVATE_KEY"
	EnvTimeout    = "PICOSTOCKS_TIMEOUT"
	EnvWorkers    = "PICOSTOCKS_WORKERS"
	EnvLogLevel   = "PICOSTOCKS_LOG_LEVEL"
)

// LoadEnv builds a Config from PICOSTOCKS_* environment variables on top of
// DefaultConfig. If envPath is non-empty the file is loaded first; variables
// already set in the process environment take priority over the file.
// The result is not validated.
func LoadEnv(envPath string) (*Config, error) {
	if envPath != "" {
		if err := godotenv.Load(envPath); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg := DefaultConfig(os.Getenv(EnvUserID))

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvPrivateKey); v != "" {
		cfg.PrivateKey = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
