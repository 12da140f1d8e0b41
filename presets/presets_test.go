package presets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/presetkit/preset"
	"github.com/0xalexb/presetkit/presets"
)

func TestBuiltinPresetsAreListed(t *testing.T) {
	t.Parallel()

	infos, err := preset.NewStore("", presets.FS()).List()
	require.NoError(t, err)

	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name

		assert.Equal(t, preset.ScopeBuiltin, info.Scope)
		assert.NotEmpty(t, info.Description, info.Name)
	}

	assert.Equal(t, []string{"cli-tool", "data-science", "discord-bot", "empty-package", "web-api"}, names)
}

func TestBuiltinPresetsBuild(t *testing.T) {
	t.Parallel()

	builder := preset.NewBuilder(preset.NewStore("", presets.FS()))

	for _, name := range []string{"cli-tool", "data-science", "discord-bot", "empty-package", "web-api"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := builder.Build(name, nil, nil, "my-app")
			require.NoError(t, err)

			assert.Equal(t, name, cfg.Preset.Name)
			assert.Equal(t, "my-app", cfg.Metadata.Name)
			assert.Contains(t, cfg.Structure.Directories, "src/my_app")
		})
	}
}

func TestCLIToolPreset(t *testing.T) {
	t.Parallel()

	builder := preset.NewBuilder(preset.NewStore("", presets.FS()))

	cfg, err := builder.Build("cli-tool", nil, nil, "my-cli")
	require.NoError(t, err)

	assert.Equal(t, []string{"typer", "rich"}, cfg.Dependencies.Main)
	assert.Equal(t, []string{"pytest", "pytest-cov"}, cfg.Dependencies.Dev)
	assert.Equal(t, []preset.EntryPoint{{Name: "my-cli", Module: "my_cli.cli:app"}}, cfg.EntryPoints)

	paths := make([]string, len(cfg.Structure.Files))
	for i, file := range cfg.Structure.Files {
		paths[i] = file.Path
	}

	assert.Equal(t, []string{
		"src/my_cli/__init__.py",
		"tests/__init__.py",
		"tests/test_my_cli.py",
		"src/my_cli/cli.py",
		"src/my_cli/__main__.py",
	}, paths)
}

func TestDataSciencePreset(t *testing.T) {
	t.Parallel()

	builder := preset.NewBuilder(preset.NewStore("", presets.FS()))

	cfg, err := builder.Build("data-science", nil, nil, "analysis")
	require.NoError(t, err)

	assert.Contains(t, cfg.Dependencies.Main, "pandas")
	assert.Contains(t, cfg.Structure.Directories, "data/raw")
	assert.Contains(t, cfg.Structure.Directories, "notebooks")
	assert.Equal(t, preset.TypingBasic, cfg.TypingLevel)
	assert.Equal(t, map[string][]string{"ml": {"scikit-learn"}}, cfg.Dependencies.Optional)
}

func TestWebAPIPresetExtras(t *testing.T) {
	t.Parallel()

	builder := preset.NewBuilder(preset.NewStore("", presets.FS()))

	cfg, err := builder.Build("web-api", nil, nil, "svc")
	require.NoError(t, err)

	assert.Equal(t, preset.Payload{
		"docker": map[string]any{"enabled": true, "base_image": "python:3.11-slim"},
	}, cfg.Extras)
}
