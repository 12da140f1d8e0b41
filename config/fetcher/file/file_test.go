package file

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePreset(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	return path
}

func TestNewFetcher(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content []byte
	}{
		{name: "preset", content: []byte("name: cli-tool\nbase: empty-package\n")},
		{name: "empty", content: []byte{}},
		{name: "jsonc", content: []byte("{\n  // comment\n  \"layout\": \"flat\",\n}\n")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writePreset(t, tt.name+".yaml", tt.content)

			fetcher, err := NewFetcher(path)()
			require.NoError(t, err)
			assert.Equal(t, path, fetcher.Source())

			data, err := fetcher.Fetch()
			require.NoError(t, err)
			assert.Equal(t, tt.content, data)
		})
	}
}

func TestNewFetcher_CleansPath(t *testing.T) {
	t.Parallel()

	path := writePreset(t, "web-api.yaml", []byte("name: web-api\n"))
	sep := string(filepath.Separator)
	messy := filepath.Dir(path) + sep + "." + sep + sep + "web-api.yaml"

	fetcher, err := NewFetcher(messy)()
	require.NoError(t, err)
	assert.Equal(t, path, fetcher.Source())
}

func TestNewFetcher_Missing(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(filepath.Join(t.TempDir(), "ghost.yaml"))()

	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Nil(t, fetcher)
	assert.Contains(t, err.Error(), "ghost.yaml")
}

func TestNewFetcher_Directory(t *testing.T) {
	t.Parallel()

	fetcher, err := NewFetcher(t.TempDir())()

	require.ErrorIs(t, err, ErrPathIsDirectory)
	assert.Nil(t, fetcher)
}

func TestFetcher_ReadsOnce(t *testing.T) {
	t.Parallel()

	path := writePreset(t, "house.yaml", []byte("layout: src\n"))

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("layout: flat\n"), 0o600))

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte("layout: src\n"), data, "the file is read at construction only")

	fresh, err := NewFetcher(path)()
	require.NoError(t, err)

	data, err = fresh.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte("layout: flat\n"), data)
}

func TestFetcher_FetchReturnsCopy(t *testing.T) {
	t.Parallel()

	path := writePreset(t, "house.yaml", []byte("layout: src\n"))

	fetcher, err := NewFetcher(path)()
	require.NoError(t, err)

	first, err := fetcher.Fetch()
	require.NoError(t, err)

	first[0] = 'X'

	second, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte("layout: src\n"), second)
}

func TestNewFSFetcher(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"cli-tool.yaml": &fstest.MapFile{Data: []byte("name: cli-tool\n")},
		"nested":        &fstest.MapFile{Mode: fs.ModeDir},
	}

	fetcher, err := NewFSFetcher(fsys, "builtin:", "./cli-tool.yaml")()
	require.NoError(t, err)

	data, err := fetcher.Fetch()
	require.NoError(t, err)
	assert.Equal(t, []byte("name: cli-tool\n"), data)
	assert.Equal(t, "builtin:cli-tool.yaml", fetcher.Source())

	_, err = NewFSFetcher(fsys, "builtin:", "missing.yaml")()
	require.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "builtin:missing.yaml")

	_, err = NewFSFetcher(fsys, "builtin:", "nested")()
	require.ErrorIs(t, err, ErrPathIsDirectory)
}
