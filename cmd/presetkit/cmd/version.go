package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xalexb/presetkit"
)

type versionInfo struct {
	Version    string `json:"version"`
	Commit     string `json:"commit"`
	CompiledAt string `json:"compiled_at"`
}

func newVersionCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if asJSON {
				return render(cmd.OutOrStdout(), versionInfo{
					Version:    presetkit.Version,
					Commit:     presetkit.Commit,
					CompiledAt: presetkit.CompiledAt,
				}, true)
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), presetkit.VersionString())

			return err //nolint:wrapcheck
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON")

	return cmd
}
