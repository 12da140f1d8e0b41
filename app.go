package presetkit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/0xalexb/presetkit/logging"
)

var errAppNotInitialized = errors.New("app not initialized")

// App hosts the long-running parts of presetkit, such as the resolution API,
// in an Fx container.
type App struct {
	app    *fx.App
	logger *slog.Logger
}

// NewApp creates an App from the given options.
func NewApp(opts ...Option) *App {
	var options Options

	for _, apply := range opts {
		apply(&options)
	}

	logger := createLogger(&options)
	slog.SetDefault(logger)

	return &App{
		app:    configure(&options, logger),
		logger: logger,
	}
}

func configure(options *Options, logger *slog.Logger) *fx.App {
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		fx.Supply(options.loggerConfig()),
		fx.Supply(logger),
		fx.Options(options.Modules...),
	)
}

func createLogger(options *Options) *slog.Logger {
	output := options.LogOutput
	if output == nil {
		output = os.Stderr
	}

	return logging.NewLogger(options.loggerConfig(), output)
}

// Logger returns the logger shared with every module.
func (app *App) Logger() *slog.Logger {
	if app == nil || app.logger == nil {
		return slog.Default()
	}

	return app.logger
}

// Start runs every OnStart hook, binding the configured listeners.
func (app *App) Start() error {
	if !app.ready() {
		return errAppNotInitialized
	}

	if err := app.app.Start(context.Background()); err != nil {
		return fmt.Errorf("starting presetkit: %w", err)
	}

	return nil
}

// Run blocks until SIGINT or SIGTERM and exits the process on start failure.
func (app *App) Run() {
	if !app.ready() {
		slog.Error("run called on an uninitialized app")

		return
	}

	app.app.Run()
}

// RunContext starts the application and blocks until ctx is done, a signal
// arrives or a module asks for shutdown. Unlike Run it reports failures
// instead of exiting the process.
func (app *App) RunContext(ctx context.Context) error {
	err := app.Start()
	if err != nil {
		return err
	}

	select {
	case <-ctx.Done():
	case signal := <-app.app.Wait():
		app.logger.Info("shutting down", slog.Any("signal", signal.Signal))
	}

	return app.Stop()
}

// Stop runs every OnStop hook, draining in-flight requests.
func (app *App) Stop() error {
	if !app.ready() {
		return errAppNotInitialized
	}

	if err := app.app.Stop(context.Background()); err != nil {
		return fmt.Errorf("stopping presetkit: %w", err)
	}

	return nil
}

func (app *App) ready() bool {
	return app != nil && app.app != nil
}
