package config_test

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/0xalexb/presetkit/config"
	"github.com/0xalexb/presetkit/config/document"
	filefetcher "github.com/0xalexb/presetkit/config/fetcher/file"
	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ServeConfig represents settings for a resolution service.
type ServeConfig struct {
	Address        string `yaml:"address"`
	MaxBodyBytes   int    `yaml:"max_body_bytes"`
	UserPresetsDir string `yaml:"user_presets_dir"`
}

// SetDefaults sets default values for the configuration.
func (c *ServeConfig) SetDefaults() bool {
	changed := false

	if c.Address == "" {
		c.Address = ":8080"
		changed = true
	}

	if c.MaxBodyBytes == 0 {
		c.MaxBodyBytes = 65536
		changed = true
	}

	return changed
}

// Validate validates the configuration.
func (c *ServeConfig) Validate() error {
	if c.MaxBodyBytes < 0 {
		return errors.New("max_body_bytes must not be negative")
	}

	return nil
}

// StaticDataFetcher implements config.DataFetcher with static data.
// Useful for unit tests that don't need file I/O.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

func ExampleProvider() {
	cfg := &ServeConfig{}

	// An empty path parses the entire document.
	provider := config.Provider(cfg, "")

	parser := yamlparser.NewParser()
	fetcher := &StaticDataFetcher{
		Data: []byte("user_presets_dir: /srv/presets\n"),
	}

	result, err := provider(parser, fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Address: %s, Presets: %s\n", result.Address, result.UserPresetsDir)
	// Output: Address: :8080, Presets: /srv/presets
}

func ExampleProvider_pathNavigation() {
	yamlData := []byte(`
server:
  address: ":9000"
  max_body_bytes: 1024
logging:
  level: debug
`)

	cfg := &ServeConfig{}

	provider := config.Provider(cfg, "server")

	result, err := provider(yamlparser.NewParser(), &StaticDataFetcher{Data: yamlData})
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Address: %s, MaxBodyBytes: %d\n", result.Address, result.MaxBodyBytes)
	// Output: Address: :9000, MaxBodyBytes: 1024
}

func ExampleLoadDocument() {
	user := &StaticDataFetcher{Data: []byte("layout: src\ndependencies:\n  main: [rich]\n")}
	template := &StaticDataFetcher{Data: []byte("layout: flat\ndependencies:\n  main: [typer]\n")}

	parser := yamlparser.NewParser()

	userDoc, err := config.LoadDocument(parser, user, "user")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	templateDoc, err := config.LoadDocument(parser, template, "template")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	merged := document.Merge(userDoc, templateDoc)
	main, _ := merged.Lookup("dependencies.main")

	fmt.Println(merged["layout"], main)
	// Output: flat [rich typer]
}

func TestProvider_FileDataFetcher(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presetkit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  address: \"127.0.0.1:7070\"\n"), 0o600))

	fetcher, err := filefetcher.NewFetcher(path)()
	require.NoError(t, err)

	result, err := config.Provider(&ServeConfig{}, "server")(yamlparser.NewParser(), fetcher)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:7070", result.Address)
	assert.Equal(t, 65536, result.MaxBodyBytes)
}

func TestProvider_ValidationFailure(t *testing.T) {
	t.Parallel()

	fetcher := &StaticDataFetcher{Data: []byte("max_body_bytes: -1\n")}

	_, err := config.Provider(&ServeConfig{}, "")(yamlparser.NewParser(), fetcher)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "validating configuration")
}

func TestYAMLParser_PathNavigation(t *testing.T) {
	t.Parallel()

	yamlData := []byte(`
server:
  address: ":8080"
  max_body_bytes: 2048
presets:
  user:
    user_presets_dir: /home/me/presets
`)

	parser := yamlparser.NewParser()

	t.Run("navigate to nested section", func(t *testing.T) {
		t.Parallel()

		cfg := &ServeConfig{}
		err := parser.Parse(yamlData, cfg, "server")
		require.NoError(t, err)

		assert.Equal(t, ":8080", cfg.Address)
		assert.Equal(t, 2048, cfg.MaxBodyBytes)
	})

	t.Run("navigate to deeply nested section", func(t *testing.T) {
		t.Parallel()

		cfg := &ServeConfig{}
		err := parser.Parse(yamlData, cfg, "presets:user")
		require.NoError(t, err)

		assert.Equal(t, "/home/me/presets", cfg.UserPresetsDir)
	})

	t.Run("invalid path returns error", func(t *testing.T) {
		t.Parallel()

		cfg := &ServeConfig{}
		err := parser.Parse(yamlData, cfg, "nonexistent:path")
		require.Error(t, err)
		assert.ErrorIs(t, err, yamlparser.ErrPathNotFound)
	})
}
