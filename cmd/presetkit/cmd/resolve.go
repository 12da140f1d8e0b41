package cmd

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/0xalexb/presetkit/config/document"
	"github.com/0xalexb/presetkit/preset"
	"github.com/0xalexb/presetkit/userconfig"
)

type resolveOptions struct {
	preset     string
	file       string
	asJSON     bool
	noDefaults bool
	merged     bool

	pythonVersion  string
	typing         string
	layout         string
	typeChecker    string
	packageManager string
	extra          []string
	extraDev       []string
	values         []string
}

// toggles are the --x/--no-x pairs that become boolean overrides.
//
//nolint:gochecknoglobals // fixed table
var toggles = []struct {
	name  string
	usage string
	field func(*preset.Overrides) **bool
}{
	{"testing", "testing", func(o *preset.Overrides) **bool { return &o.Testing }},
	{"formatting", "formatting", func(o *preset.Overrides) **bool { return &o.Formatting }},
	{"radon", "radon complexity checks", func(o *preset.Overrides) **bool { return &o.Radon }},
	{"pre-commit", "pre-commit hooks", func(o *preset.Overrides) **bool { return &o.PreCommit }},
	{"bump-my-version", "bump-my-version", func(o *preset.Overrides) **bool { return &o.VersionBumping }},
}

func newResolveCmd(g *globals) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve NAME",
		Short: "Print the configuration a project would be created with",
		Long: `Resolve a preset for the project NAME and print the validated configuration.

NAME is the display name; the hyphenated project name and the package
identifier are derived from it and substituted for __PROJECT_NAME__ and
__PACKAGE_NAME__ everywhere in the preset.`,
		Example: `  # Resolve the built-in CLI preset
  presetkit resolve weather-cli --preset cli-tool

  # Use a preset file and override a few settings
  presetkit resolve my-lib -c ./house.yaml --layout flat --no-radon -e httpx

  # Set any field by its dotted path
  presetkit resolve my-lib --set formatting.line_length=120 --json`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, g, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.preset, "preset", "p", preset.DefaultPreset, "Preset name or path")
	flags.StringVarP(&opts.file, "config", "c", "", "Preset file to use instead of --preset")
	flags.BoolVar(&opts.asJSON, "json", false, "Print JSON instead of YAML")
	flags.BoolVar(&opts.noDefaults, "no-defaults", false, "Ignore the saved user defaults")
	flags.BoolVar(&opts.merged, "merged", false, "Print the merged document before validation")

	for _, toggle := range toggles {
		flags.Bool(toggle.name, false, "Enable "+toggle.usage)
		flags.Bool("no-"+toggle.name, false, "Disable "+toggle.usage)
		cmd.MarkFlagsMutuallyExclusive(toggle.name, "no-"+toggle.name)
	}

	flags.StringVar(&opts.pythonVersion, "python-version", "", "Python version, e.g. 3.12")
	flags.StringVar(&opts.typing, "typing", "", "Typing level: none, basic or strict")
	flags.StringVar(&opts.layout, "layout", "", "Layout: src or flat")
	flags.StringVar(&opts.typeChecker, "type-checker", "", "Type checker: mypy, pyright or ty")
	flags.StringVar(&opts.packageManager, "package-manager", "", "Package manager: poetry or uv")
	flags.StringArrayVarP(&opts.extra, "extra-package", "e", nil, "Additional runtime dependency (repeatable)")
	flags.StringArrayVarP(&opts.extraDev, "extra-dev-package", "d", nil, "Additional dev dependency (repeatable)")
	flags.StringArrayVar(&opts.values, "set", nil, "Override a field as path=value (repeatable)")

	return cmd
}

func runResolve(cmd *cobra.Command, g *globals, opts *resolveOptions, name string) error {
	overrides, err := opts.overrides(cmd.Flags())
	if err != nil {
		return err
	}

	ref := opts.preset
	if opts.file != "" {
		ref = opts.file
	}

	var defaults document.Document

	if !opts.noDefaults {
		store, err := g.userConfigStore()
		if err != nil {
			return err
		}

		defaults, err = store.Defaults()
		if err != nil {
			return fmt.Errorf("loading user defaults: %w", err)
		}
	}

	builder := preset.NewBuilder(g.presetStore(), preset.WithLogger(g.log()))

	g.log().Debug("resolving", slog.String("preset", ref), slog.String("name", name))

	if opts.merged {
		doc, err := builder.Merged(ref, defaults, overrides.Document(), name)
		if err != nil {
			return err //nolint:wrapcheck
		}

		return render(cmd.OutOrStdout(), doc, opts.asJSON)
	}

	cfg, err := builder.Build(ref, defaults, overrides.Document(), name)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return render(cmd.OutOrStdout(), cfg, opts.asJSON)
}

// overrides collects the flags the user actually passed.
func (o *resolveOptions) overrides(flags *pflag.FlagSet) (preset.Overrides, error) {
	overrides := preset.Overrides{
		ExtraPackages:    o.extra,
		ExtraDevPackages: o.extraDev,
	}

	for _, toggle := range toggles {
		switch {
		case flags.Changed(toggle.name):
			on, _ := flags.GetBool(toggle.name)
			*toggle.field(&overrides) = preset.Ptr(on)
		case flags.Changed("no-" + toggle.name):
			off, _ := flags.GetBool("no-" + toggle.name)
			*toggle.field(&overrides) = preset.Ptr(!off)
		}
	}

	for flag, target := range map[string]**string{
		"python-version":  &overrides.PythonVersion,
		"typing":          &overrides.TypingLevel,
		"layout":          &overrides.Layout,
		"type-checker":    &overrides.TypeChecker,
		"package-manager": &overrides.PackageManager,
	} {
		if flags.Changed(flag) {
			value, _ := flags.GetString(flag)
			*target = preset.Ptr(value)
		}
	}

	for _, assignment := range o.values {
		path, raw, ok := strings.Cut(assignment, "=")
		if !ok || strings.TrimSpace(path) == "" {
			return preset.Overrides{}, usageError{err: fmt.Errorf("--set %q: expected path=value", assignment)}
		}

		if overrides.Values == nil {
			overrides.Values = make(map[string]any)
		}

		overrides.Values[strings.TrimSpace(path)] = userconfig.Coerce(raw)
	}

	return overrides, nil
}
