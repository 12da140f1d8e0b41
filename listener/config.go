// Package listener runs the named HTTP listeners of a presetkit server inside
// the Fx lifecycle.
package listener

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied by SetDefaults.
const (
	DefaultAddress         = "127.0.0.1:8780"
	DefaultShutdownTimeout = 10 * time.Second
	ReadHeaderTimeout      = 10 * time.Second
)

var (
	// ErrEmptyAddress is returned when the address is empty.
	ErrEmptyAddress = errors.New("address must not be empty")
	// ErrListenFailed is returned when the server fails to listen on the configured address.
	ErrListenFailed = errors.New("failed to listen")
	// ErrShutdownFailed is returned when the server fails to shut down gracefully.
	ErrShutdownFailed = errors.New("shutdown failed")
	// ErrEmptyName is returned when the listener name is empty.
	ErrEmptyName = errors.New("listener name must not be empty")
	// ErrNilHandler is returned when a nil http.Handler is provided.
	ErrNilHandler = errors.New("handler must not be nil")
	// ErrNegativeTimeout is returned for a timeout below zero.
	ErrNegativeTimeout = errors.New("timeout must not be negative")
)

// Config holds the configuration for an HTTP listener.
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
}

// Option adjusts a listener Config.
type Option func(*Config)

// WithAddress sets the address for the HTTP listener.
func WithAddress(addr string) Option {
	return func(cfg *Config) {
		cfg.Address = addr
	}
}

// WithShutdownTimeout bounds how long Stop waits for in-flight requests.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.ShutdownTimeout = timeout
	}
}

// SetDefaults sets default values for the Config.
func (c *Config) SetDefaults() {
	if c.Address == "" {
		c.Address = DefaultAddress
	}

	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = DefaultShutdownTimeout
	}
}

// Validate validates the Config.
func (c *Config) Validate() error {
	if c.Address == "" {
		return ErrEmptyAddress
	}

	if c.ShutdownTimeout < 0 {
		return fmt.Errorf("shutdown: %w", ErrNegativeTimeout)
	}

	return nil
}
