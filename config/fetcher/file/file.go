package file

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// ErrPathIsDirectory is returned when the path provided to the Fetcher points to a directory instead of a file.
var ErrPathIsDirectory = errors.New("path is a directory, not a file")

// Fetcher implements config.DataFetcher for one preset or settings file.
// The file is read once, when the Fetcher is built; later changes on disk
// are not seen.
type Fetcher struct {
	source string
	data   []byte
}

// NewFetcher returns a constructor that reads the file at fpath. Building
// the Fetcher is deferred so an Fx container, or a preset search, decides
// when the read happens. Stat failures keep fs.ErrNotExist reachable so
// callers can move on to the next candidate.
func NewFetcher(fpath string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanPath := filepath.Clean(fpath)

		return read(cleanPath, cleanPath, os.Stat, os.ReadFile)
	}
}

// NewFSFetcher is like NewFetcher but reads name from fsys, e.g. an embedded
// preset directory. Source reports the name prefixed with label.
func NewFSFetcher(fsys fs.FS, label, name string) func() (*Fetcher, error) {
	return func() (*Fetcher, error) {
		cleanName := path.Clean(name)

		return read(label+cleanName, cleanName,
			func(name string) (fs.FileInfo, error) { return fs.Stat(fsys, name) },
			func(name string) ([]byte, error) { return fs.ReadFile(fsys, name) },
		)
	}
}

func read(
	source, name string,
	stat func(string) (fs.FileInfo, error),
	readFile func(string) ([]byte, error),
) (*Fetcher, error) {
	info, err := stat(name)
	if err != nil {
		return nil, fmt.Errorf("stat file %q: %w", source, err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path %q: %w", source, ErrPathIsDirectory)
	}

	data, err := readFile(name) // #nosec G304 -- preset and settings paths are chosen by the user
	if err != nil {
		return nil, fmt.Errorf("reading file %q: %w", source, err)
	}

	return &Fetcher{source: source, data: data}, nil
}

// Fetch returns a copy of the bytes read at construction time.
func (f *Fetcher) Fetch() ([]byte, error) {
	result := make([]byte, len(f.data))
	copy(result, f.data)

	return result, nil
}

// Source returns the location the data was read from.
func (f *Fetcher) Source() string {
	return f.source
}
