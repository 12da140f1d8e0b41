package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"

	"github.com/0xalexb/presetkit/listener"
	"github.com/0xalexb/presetkit/preset"
	"github.com/0xalexb/presetkit/presets"
	"github.com/0xalexb/presetkit/userconfig"
)

// ListenerName tags the API handler and its listener configuration.
const ListenerName = "api"

// NewModule wires the API handler and its listener into an Fx application.
// The application must supply an unnamed *slog.Logger.
//
//nolint:ireturn // fx.Option is the standard return type for Fx modules
func NewModule(cfg Config) fx.Option {
	tag := fmt.Sprintf(`name:"%s"`, ListenerName)

	return fx.Module("resolution-api",
		fx.Supply(fx.Annotate(cfg.Listener(), fx.ResultTags(tag))),
		fx.Provide(fx.Annotate(
			func(logger *slog.Logger) http.Handler {
				return NewService(cfg, logger)
			},
			fx.ResultTags(tag),
		)),
		listener.NewModule(ListenerName),
	)
}

// NewService builds the handler over the built-in presets, the presets in
// cfg.PresetsDir and, when cfg.UserConfig is set, the user defaults stored
// there.
func NewService(cfg Config, logger *slog.Logger) *Handler {
	store := preset.NewStore(cfg.PresetsDir, presets.FS(), preset.WithStoreLogger(logger))

	opts := []HandlerOption{WithLogger(logger)}

	if cfg.UserConfig != "" {
		opts = append(opts, WithDefaults(userconfig.NewStore(cfg.UserConfig, userconfig.WithLogger(logger))))
	}

	return NewHandler(store, cfg, opts...)
}
