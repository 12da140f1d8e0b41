package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xalexb/presetkit/userconfig"
)

func newConfigCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage user defaults",
		Long: `User defaults are the lowest layer of every resolution. Shorthand keys
such as formatter or line_length are mapped onto their sections; any other
key is used as a dotted path.`,
		Example: `  presetkit config init
  presetkit config set layout flat
  presetkit config set formatting.radon true
  presetkit config show`,
	}

	cmd.AddCommand(newConfigShowCmd(g))
	cmd.AddCommand(newConfigInitCmd(g))
	cmd.AddCommand(newConfigSetCmd(g))
	cmd.AddCommand(newConfigPathCmd(g))

	return cmd
}

func newConfigShowCmd(g *globals) *cobra.Command {
	var (
		asJSON bool
		lifted bool
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved user defaults",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.userConfigStore()
			if err != nil {
				return err
			}

			settings, err := store.Load()
			if err != nil {
				return err //nolint:wrapcheck
			}

			if len(settings) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "no user defaults saved at", store.Path())

				return nil
			}

			if lifted {
				settings = userconfig.Lift(settings)
			}

			return render(cmd.OutOrStdout(), settings, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")
	cmd.Flags().BoolVar(&lifted, "lifted", false, "Print the defaults as the layer applied under presets")

	return cmd
}

func newConfigInitCmd(g *globals) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default user configuration",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := g.userConfigStore()
			if err != nil {
				return err
			}

			err = store.Init(force)
			if errors.Is(err, userconfig.ErrExists) {
				return fmt.Errorf("%w (use --force to overwrite)", err)
			}

			if err != nil {
				return err //nolint:wrapcheck
			}

			fmt.Fprintln(cmd.OutOrStdout(), "wrote", store.Path())

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	return cmd
}

func newConfigSetCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Save one user default",
		Long: `Save one user default. Whole numbers are stored as integers and
true or false as booleans; anything else is stored as a string.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := g.userConfigStore()
			if err != nil {
				return err
			}

			value, err := store.Set(args[0], args[1])
			if err != nil {
				if errors.Is(err, userconfig.ErrInvalidValue) || errors.Is(err, userconfig.ErrEmptyKey) {
					return usageError{err: err}
				}

				return err //nolint:wrapcheck
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %v\n", args[0], value)

			return nil
		},
	}
}

func newConfigPathCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the user defaults file location",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := g.userConfigPath()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)

			return nil
		},
	}
}
