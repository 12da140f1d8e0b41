// Package cmd provides the presetkit CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/0xalexb/presetkit"
	"github.com/0xalexb/presetkit/logging"
	"github.com/0xalexb/presetkit/preset"
	"github.com/0xalexb/presetkit/presets"
	"github.com/0xalexb/presetkit/userconfig"
)

// Exit codes returned by Execute.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitNotFound   = 2
	ExitInvalid    = 3
	ExitUsageError = 64
)

// globals holds the persistent flags shared by every command.
type globals struct {
	logLevel   string
	logFormat  string
	presetsDir string
	userConfig string

	logger *slog.Logger
}

// NewRootCmd creates the presetkit command tree.
func NewRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "presetkit",
		Short: "Resolve Python project presets into validated configurations",
		Long: `presetkit turns a named preset, your saved defaults and command line
overrides into one validated project configuration.

Precedence (lowest to highest):
  1. User defaults (presetkit config)
  2. The preset, with its base preset merged underneath
  3. Overrides given on the command line`,
		Version:       presetkit.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			g.logger = logging.NewLogger(logging.LoggerConfig{Level: g.logLevel, Format: g.logFormat}, cmd.ErrOrStderr())

			return nil
		},
	}

	root.SetVersionTemplate("{{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err: err}
	})

	flags := root.PersistentFlags()
	flags.StringVar(&g.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	flags.StringVar(&g.logFormat, "log-format", logging.FormatAuto, "Log format: json, text or auto")
	flags.StringVar(&g.presetsDir, "presets-dir", "", "Directory of user presets (default <user config dir>/presetkit/presets)")
	flags.StringVar(&g.userConfig, "user-config", "", "User defaults file (default <user config dir>/presetkit/config.yaml)")

	root.AddCommand(newResolveCmd(g))
	root.AddCommand(newPresetsCmd(g))
	root.AddCommand(newConfigCmd(g))
	root.AddCommand(newServeCmd(g))
	root.AddCommand(newVersionCmd())

	return root
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := NewRootCmd()

	err := root.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}

	return exitCode(err)
}

func exitCode(err error) int {
	var usage usageError

	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &usage):
		return ExitUsageError
	case errors.Is(err, preset.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, preset.ErrParse), errors.Is(err, preset.ErrInheritance), errors.Is(err, preset.ErrValidation):
		return ExitInvalid
	default:
		return ExitError
	}
}

// usageError marks a mistake in how a command was invoked.
type usageError struct {
	err error
}

func (e usageError) Error() string {
	return e.err.Error()
}

func (e usageError) Unwrap() error {
	return e.err
}

func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		err := cobra.ExactArgs(n)(cmd, args)
		if err != nil {
			return usageError{err: err}
		}

		return nil
	}
}

func (g *globals) log() *slog.Logger {
	if g.logger == nil {
		return slog.Default()
	}

	return g.logger
}

func (g *globals) presetStore() *preset.Store {
	dir := g.presetsDir
	if dir == "" {
		var err error

		dir, err = preset.DefaultUserDir()
		if err != nil {
			g.log().Warn("user presets disabled", slog.Any("error", err))
		}
	}

	return preset.NewStore(dir, presets.FS(), preset.WithStoreLogger(g.log()))
}

func (g *globals) userConfigPath() (string, error) {
	if g.userConfig != "" {
		return g.userConfig, nil
	}

	path, err := userconfig.DefaultPath()
	if err != nil {
		return "", fmt.Errorf("locating user defaults: %w", err)
	}

	return path, nil
}

func (g *globals) userConfigStore() (*userconfig.Store, error) {
	path, err := g.userConfigPath()
	if err != nil {
		return nil, err
	}

	return userconfig.NewStore(path, userconfig.WithLogger(g.log())), nil
}
