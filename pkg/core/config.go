package core

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	// ProductionURL is the versioned API prefix of the public exchange.
	ProductionURL = "https://picostocks.com/api/v1/"
	// DefaultUserAgent is sent on every request.
	DefaultUserAgent = "picostocks/go"
)

// Config contains all configuration options for an Exchanger.
// It includes the endpoint, account credentials, networking and logging settings.
type Config struct {
	// BaseURL is the versioned API prefix. The service has moved its prefix
	// over time, so it is never hardcoded in the client.
	BaseURL string `json:"base_url" validate:"required,url"`
	// UserID identifies the account; opaque to the client.
	UserID string `json:"user_id" validate:"required"`
	// PrivateKey is the hex-encoded Ed25519 key used for signing orders.
	PrivateKey string `json:"private_key,omitempty" validate:"omitempty,hexadecimal"`

	// Timeout is the maximum duration for a single HTTP request.
	Timeout   time.Duration `json:"timeout" validate:"min=1ms"`
	UserAgent string        `json:"user_agent" validate:"required"`
	// Workers bounds the number of calls dispatched off the caller at once.
	Workers int `json:"workers" validate:"min=1"`

	LogLevel string `json:"log_level" validate:"omitempty,oneof=debug info warn error"`
}

// DefaultConfig returns a Config for the given user with sensible defaults:
// production URL, 10s timeout, 4 workers, info logging.
func DefaultConfig(userID string) *Config {
	return &Config{
		BaseURL:   ProductionURL,
		UserID:    userID,
		Timeout:   10 * time.Second,
		UserAgent: DefaultUserAgent,
		Workers:   4,
		LogLevel:  "info",
	}
}

var validate = validator.New()

func (c *Config) Validate() error {
	return validate.Struct(c)
}

// APIRoot returns BaseURL without its trailing slash; endpoint paths carry
// their own leading slash.
func (c *Config) APIRoot() string {
	return strings.TrimRight(c.BaseURL, "/")
}

// WithBaseURL sets the API prefix and returns the config for chaining.
func (c *Config) WithBaseURL(baseURL string) *Config {
	c.BaseURL = baseURL
	return c
}

// WithPrivateKey sets the hex-encoded signing key and returns the config for chaining.
func (c *Config) WithPrivateKey(hexKey string) *Config {
	c.PrivateKey = hexKey
	return c
}

// WithTimeout sets the request timeout and returns the config for chaining.
func (c *Config) WithTimeout(timeout time.Duration) *Config {
	c.Timeout = timeout
	return c
}

// WithWorkers sets the worker pool size and returns the config for chaining.
func (c *Config) WithWorkers(n int) *Config {
	c.Workers = n
	return c
}
