package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0xalexb/presetkit/preset"
)

func newPresetsCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "List and inspect presets",
		Long: `Presets are looked up by name in the user preset directory first and then
among the built-in presets, so a user preset hides a built-in one of the
same name.`,
	}

	cmd.AddCommand(newPresetsListCmd(g))
	cmd.AddCommand(newPresetsShowCmd(g))

	return cmd
}

func newPresetsListCmd(g *globals) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every preset available by name",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			infos, err := g.presetStore().List()
			if err != nil {
				return err //nolint:wrapcheck
			}

			if asJSON {
				if infos == nil {
					infos = []preset.Info{}
				}

				return render(cmd.OutOrStdout(), infos, true)
			}

			writer := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(writer, "NAME\tSCOPE\tDESCRIPTION")

			for _, info := range infos {
				fmt.Fprintf(writer, "%s\t%s\t%s\n", info.Name, info.Scope, info.Description)
			}

			return writer.Flush() //nolint:wrapcheck
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}

func newPresetsShowCmd(g *globals) *cobra.Command {
	var (
		asJSON bool
		raw    bool
	)

	cmd := &cobra.Command{
		Use:   "show NAME",
		Short: "Print a preset with its base preset merged in",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store := g.presetStore()

			doc, err := store.Load(args[0])
			if err != nil {
				return err //nolint:wrapcheck
			}

			if !raw {
				doc, err = preset.NewResolver(store).Resolve(doc)
				if err != nil {
					return err //nolint:wrapcheck
				}
			}

			return render(cmd.OutOrStdout(), doc, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of YAML")
	cmd.Flags().BoolVar(&raw, "raw", false, "Print the preset as stored, without its base")

	return cmd
}
