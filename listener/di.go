package listener

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
)

// NewModule creates an Fx module for a named HTTP listener. The http.Handler
// and Config are resolved by the name tag. With options, the module supplies
// its own Config; without, Config must be provided under the same name. The
// unnamed *slog.Logger supplied by the application is used for logging.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(name string, opts ...Option) fx.Option {
	if name == "" {
		return fx.Error(ErrEmptyName)
	}

	tag := fmt.Sprintf(`name:"%s"`, name)

	var moduleOpts []fx.Option

	if len(opts) > 0 {
		var cfg Config

		for _, apply := range opts {
			apply(&cfg)
		}

		moduleOpts = append(moduleOpts, fx.Supply(fx.Annotate(cfg, fx.ResultTags(tag))))
	}

	moduleOpts = append(moduleOpts, fx.Invoke(
		fx.Annotate(
			func(
				lifecycle fx.Lifecycle,
				shutdowner fx.Shutdowner,
				logger *slog.Logger,
				handler http.Handler,
				cfg Config,
			) error {
				srv, err := NewServer(name, handler, cfg, logger, func() {
					shutdownErr := shutdowner.Shutdown()
					if shutdownErr != nil {
						logger.Error("failed to trigger shutdown", slog.String("listener", name), slog.Any("error", shutdownErr))
					}
				})
				if err != nil {
					return err
				}

				lifecycle.Append(fx.Hook{
					OnStart: srv.Start,
					OnStop:  srv.Stop,
				})

				return nil
			},
			fx.ParamTags("", "", "", tag, tag),
		),
	))

	return fx.Module(name, moduleOpts...)
}
