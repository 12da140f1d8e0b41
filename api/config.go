package api

import (
	"errors"
	"fmt"
	"time"

	"github.com/0xalexb/presetkit/listener"
	"github.com/0xalexb/presetkit/listener/middleware"
)

// Defaults applied by SetDefaults.
const (
	DefaultRequestTimeout = 15 * time.Second
	DefaultRateLimit      = 20
	DefaultBurst          = 40
)

var (
	// ErrInvalidDuration is returned for a duration that does not parse.
	ErrInvalidDuration = errors.New("invalid duration")
	// ErrNegativeLimit is returned for a size or rate limit below zero.
	ErrNegativeLimit = errors.New("limit must not be negative")
)

// Config holds the settings of the resolution service, usually read from the
// "server" section of a YAML file.
type Config struct {
	Address         string   `yaml:"address"`
	ShutdownTimeout string   `yaml:"shutdown_timeout"`
	RequestTimeout  string   `yaml:"request_timeout"`
	MaxBodyBytes    int64    `yaml:"max_body_bytes"`
	RateLimit       float64  `yaml:"rate_limit"`
	Burst           int      `yaml:"burst"`
	CORSOrigins     []string `yaml:"cors_origins"`
	PresetsDir      string   `yaml:"presets_dir"`
	UserConfig      string   `yaml:"user_config"`
}

// SetDefaults fills unset fields and reports whether anything changed.
func (c *Config) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = listener.DefaultAddress
		changed = true
	}

	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = listener.DefaultShutdownTimeout.String()
		changed = true
	}

	if c.RequestTimeout == "" {
		c.RequestTimeout = DefaultRequestTimeout.String()
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = middleware.DefaultMaxBodyBytes
		changed = true
	}

	if c.RateLimit == 0 {
		c.RateLimit = DefaultRateLimit
		changed = true
	}

	if c.Burst == 0 {
		c.Burst = DefaultBurst
		changed = true
	}

	return changed
}

// Validate checks durations and limits.
func (c *Config) Validate() error {
	if c.Address == "" {
		return listener.ErrEmptyAddress
	}

	_, err := parseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("shutdown_timeout: %w", err)
	}

	_, err = parseDuration(c.RequestTimeout)
	if err != nil {
		return fmt.Errorf("request_timeout: %w", err)
	}

	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes: %w", ErrNegativeLimit)
	}

	if c.RateLimit < 0 {
		return fmt.Errorf("rate_limit: %w", ErrNegativeLimit)
	}

	if c.Burst < 0 {
		return fmt.Errorf("burst: %w", ErrNegativeLimit)
	}

	return nil
}

// Listener converts the settings into a listener configuration.
func (c *Config) Listener() listener.Config {
	shutdown, _ := parseDuration(c.ShutdownTimeout)

	return listener.Config{
		Address:         c.Address,
		ShutdownTimeout: shutdown,
	}
}

func (c *Config) requestTimeout() time.Duration {
	timeout, _ := parseDuration(c.RequestTimeout)

	return timeout
}

func parseDuration(value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w %q", ErrInvalidDuration, value)
	}

	if duration < 0 {
		return 0, fmt.Errorf("%w: %s", listener.ErrNegativeTimeout, value)
	}

	return duration, nil
}
