package presetkit

import (
	"io"

	"go.uber.org/fx"

	"github.com/0xalexb/presetkit/api"
	"github.com/0xalexb/presetkit/listener"
	"github.com/0xalexb/presetkit/logging"
)

// Options holds configuration settings for the application.
type Options struct {
	Modules   []fx.Option
	LogLevel  string
	LogFormat string
	LogOutput io.Writer
}

func (o *Options) loggerConfig() logging.LoggerConfig {
	return logging.LoggerConfig{Level: o.LogLevel, Format: o.LogFormat}
}

// Option defines a function type for applying configuration options.
type Option func(*Options)

// WithModules adds Fx modules to the application.
func WithModules(modules ...fx.Option) Option {
	return func(opts *Options) {
		opts.Modules = append(opts.Modules, modules...)
	}
}

// WithHTTPListener adds a named HTTP listener module to the application.
// The name tags both the http.Handler and the listener Config it consumes.
func WithHTTPListener(name string, opts ...listener.Option) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, listener.NewModule(name, opts...))
	}
}

// WithServer adds the resolution API and its listener.
func WithServer(cfg api.Config) Option {
	return func(o *Options) {
		o.Modules = append(o.Modules, api.NewModule(cfg))
	}
}

// WithLogLevel sets the log level: "debug", "info", "warn" or "error".
// Anything else means "info".
func WithLogLevel(level string) Option {
	return func(opts *Options) {
		opts.LogLevel = level
	}
}

// WithLogFormat sets the log format: "json", "text" or "auto".
func WithLogFormat(format string) Option {
	return func(opts *Options) {
		opts.LogFormat = format
	}
}

// WithLogOutput sends logs to w instead of stderr.
func WithLogOutput(w io.Writer) Option {
	return func(opts *Options) {
		opts.LogOutput = w
	}
}
