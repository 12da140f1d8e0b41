package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/presetkit/preset"
)

// harness runs commands against isolated preset and defaults locations.
type harness struct {
	presetsDir string
	userConfig string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	presetsDir := filepath.Join(dir, "presets")
	require.NoError(t, os.MkdirAll(presetsDir, 0o750))

	return &harness{
		presetsDir: presetsDir,
		userConfig: filepath.Join(dir, "config.yaml"),
	}
}

func (h *harness) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{
		"--presets-dir", h.presetsDir,
		"--user-config", h.userConfig,
		"--log-format", "text",
	}, args...))

	err := root.Execute()

	return stdout.String(), stderr.String(), err
}

func (h *harness) writePreset(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(h.presetsDir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	root := NewRootCmd()

	names := make(map[string]bool)
	for _, sub := range root.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"resolve", "presets", "config", "serve", "version"} {
		assert.True(t, names[want], "missing %s command", want)
	}

	for _, flag := range []string{"log-level", "log-format", "presets-dir", "user-config"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), "missing --%s", flag)
	}
}

func TestRootCmd_UnknownFlagIsUsageError(t *testing.T) {
	t.Parallel()

	_, _, err := newHarness(t).run(t, "resolve", "x", "--colour")
	require.Error(t, err)
	assert.Equal(t, ExitUsageError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "success", err: nil, code: ExitOK},
		{name: "usage", err: usageError{err: errors.New("bad flag")}, code: ExitUsageError},
		{name: "not found", err: fmt.Errorf("loading: %w", &preset.NotFoundError{Name: "x"}), code: ExitNotFound},
		{name: "parse", err: &preset.ParseError{Source: "x.yaml", Err: errors.New("bad")}, code: ExitInvalid},
		{name: "inheritance", err: &preset.InheritanceError{Preset: "a", Base: "a"}, code: ExitInvalid},
		{name: "validation", err: &preset.ValidationError{}, code: ExitInvalid},
		{name: "other", err: errors.New("disk full"), code: ExitError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.code, exitCode(tt.err))
		})
	}
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	h := newHarness(t)

	stdout, _, err := h.run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "presetkit dev (commit none, built unknown)\n", stdout)

	stdout, _, err = h.run(t, "version", "--json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"dev","commit":"none","compiled_at":"unknown"}`, stdout)
}
