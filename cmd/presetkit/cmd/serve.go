package cmd

import (
	"github.com/spf13/cobra"

	"github.com/0xalexb/presetkit"
	"github.com/0xalexb/presetkit/api"
	"github.com/0xalexb/presetkit/config"
	filefetcher "github.com/0xalexb/presetkit/config/fetcher/file"
	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"
)

// serverSection is where the API settings live in a settings file.
const serverSection = "server"

func newServeCmd(g *globals) *cobra.Command {
	var (
		file    string
		address string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve preset resolution over HTTP",
		Long: `Serve the resolution API:

  GET  /presets         list presets
  GET  /presets/{name}  show a preset with its base merged in
  POST /resolve         {"preset": "...", "name": "...", "overrides": {...}}

Settings are read from the "server" section of --file when given.`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServerConfig(file)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("address") {
				cfg.Address = address
			}

			if cfg.PresetsDir == "" {
				cfg.PresetsDir = g.presetStore().UserDir()
			}

			if cfg.UserConfig == "" {
				cfg.UserConfig, err = g.userConfigPath()
				if err != nil {
					return err
				}
			}

			app := presetkit.NewApp(
				presetkit.WithLogLevel(g.logLevel),
				presetkit.WithLogFormat(g.logFormat),
				presetkit.WithLogOutput(cmd.ErrOrStderr()),
				presetkit.WithServer(*cfg),
			)

			return app.RunContext(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML settings file with a server section")
	cmd.Flags().StringVar(&address, "address", "", "Listen address (overrides the settings file)")

	return cmd
}

func loadServerConfig(file string) (*api.Config, error) {
	if file == "" {
		cfg := &api.Config{}
		cfg.SetDefaults()

		return cfg, nil
	}

	fetcher, err := filefetcher.NewFetcher(file)()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return config.Provider(&api.Config{}, serverSection)(yamlparser.NewParser(), fetcher) //nolint:wrapcheck
}
