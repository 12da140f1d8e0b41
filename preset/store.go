package preset

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/0xalexb/presetkit/config"
	"github.com/0xalexb/presetkit/config/document"
	filefetcher "github.com/0xalexb/presetkit/config/fetcher/file"
	jsoncparser "github.com/0xalexb/presetkit/config/parser/jsonc"
	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"
)

// Scope tells where a preset was found.
type Scope string

// Scope values.
const (
	ScopeUser    Scope = "user"
	ScopeBuiltin Scope = "builtin"
)

const builtinLabel = "builtin:"

// Extensions are tried in order when a preset is looked up by name.
//
//nolint:gochecknoglobals // fixed table
var Extensions = []string{".yaml", ".yml", ".json", ".jsonc"}

// Info describes a preset available by name.
type Info struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Scope       Scope  `json:"scope" yaml:"scope"`
	Source      string `json:"source" yaml:"source"`
}

// Store loads preset documents from a user directory and a built-in file
// system. User presets shadow built-in presets with the same name. The store
// never caches: every Load reads from storage again.
type Store struct {
	userDir string
	builtin fs.FS
	logger  *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithStoreLogger sets the logger used for skipped or unreadable presets.
func WithStoreLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store. userDir may be empty and builtin may be nil to
// disable that scope.
func NewStore(userDir string, builtin fs.FS, opts ...StoreOption) *Store {
	store := &Store{
		userDir: userDir,
		builtin: builtin,
		logger:  slog.Default(),
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// DefaultUserDir returns <user config dir>/presetkit/presets.
func DefaultUserDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}

	return filepath.Join(dir, "presetkit", "presets"), nil
}

// UserDir returns the user preset directory.
func (s *Store) UserDir() string {
	return s.userDir
}

// Load returns the document for an existing file path, or else for the
// preset name found first in the user scope and then the built-in scope.
func (s *Store) Load(nameOrPath string) (document.Document, error) {
	if nameOrPath == "" {
		return nil, &NotFoundError{Name: nameOrPath}
	}

	if isRegularFile(nameOrPath) {
		return s.load(filefetcher.NewFetcher(nameOrPath), nameOrPath)
	}

	return s.LoadName(nameOrPath)
}

// LoadName resolves name across the user and built-in scopes only.
func (s *Store) LoadName(name string) (document.Document, error) {
	var searched []string

	for _, candidate := range s.candidates(name) {
		searched = append(searched, candidate.source)

		fetcher, err := candidate.open()
		if err != nil {
			if isMissing(err) {
				continue
			}

			return nil, fmt.Errorf("opening preset %q: %w", name, err)
		}

		return s.parse(fetcher, candidate.file, candidate.source)
	}

	return nil, &NotFoundError{Name: name, Searched: searched}
}

// List returns every preset available by name, sorted by name. A user preset
// hides a built-in preset of the same name.
func (s *Store) List() ([]Info, error) {
	seen := make(map[string]bool)

	var presets []Info

	userFiles, err := s.userFiles()
	if err != nil {
		return nil, err
	}

	for _, file := range userFiles {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		if seen[name] {
			continue
		}

		seen[name] = true
		source := filepath.Join(s.userDir, file)
		presets = append(presets, s.info(name, ScopeUser, source, filefetcher.NewFetcher(source), file))
	}

	builtinFiles, err := s.builtinFiles()
	if err != nil {
		return nil, err
	}

	for _, file := range builtinFiles {
		name := strings.TrimSuffix(file, filepath.Ext(file))
		if seen[name] {
			continue
		}

		seen[name] = true
		presets = append(presets, s.info(name, ScopeBuiltin, builtinLabel+file,
			filefetcher.NewFSFetcher(s.builtin, builtinLabel, file), file))
	}

	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Name < presets[j].Name
	})

	return presets, nil
}

type candidate struct {
	file   string
	source string
	open   func() (*filefetcher.Fetcher, error)
}

func (s *Store) candidates(name string) []candidate {
	var out []candidate

	if s.userDir != "" && isPlainName(name) {
		for _, ext := range Extensions {
			source := filepath.Join(s.userDir, name+ext)
			out = append(out, candidate{file: name + ext, source: source, open: filefetcher.NewFetcher(source)})
		}
	}

	if s.builtin != nil && isPlainName(name) {
		for _, ext := range Extensions {
			out = append(out, candidate{
				file:   name + ext,
				source: builtinLabel + name + ext,
				open:   filefetcher.NewFSFetcher(s.builtin, builtinLabel, name+ext),
			})
		}
	}

	return out
}

func (s *Store) info(name string, scope Scope, source string, open func() (*filefetcher.Fetcher, error), file string) Info {
	info := Info{Name: name, Scope: scope, Source: source}

	fetcher, err := open()
	if err != nil {
		s.logger.Warn("preset unreadable", slog.String("source", source), slog.Any("error", err))

		return info
	}

	doc, err := s.parse(fetcher, file, source)
	if err != nil {
		s.logger.Warn("preset unparsable", slog.String("source", source), slog.Any("error", err))

		return info
	}

	info.Description, _ = doc.String(KeyDescription)

	return info
}

func (s *Store) load(open func() (*filefetcher.Fetcher, error), path string) (document.Document, error) {
	fetcher, err := open()
	if err != nil {
		if isMissing(err) {
			return nil, &NotFoundError{Name: path, Searched: []string{path}}
		}

		return nil, fmt.Errorf("opening preset %q: %w", path, err)
	}

	return s.parse(fetcher, path, fetcher.Source())
}

func (s *Store) parse(fetcher config.DataFetcher, file, source string) (document.Document, error) {
	doc, err := config.LoadDocument(ParserFor(file), fetcher, source)
	if err != nil {
		return nil, &ParseError{Source: source, Err: err}
	}

	return doc, nil
}

func (s *Store) userFiles() ([]string, error) {
	if s.userDir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(s.userDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, fmt.Errorf("listing user presets in %q: %w", s.userDir, err)
	}

	return presetFiles(entries), nil
}

func (s *Store) builtinFiles() ([]string, error) {
	if s.builtin == nil {
		return nil, nil
	}

	entries, err := fs.ReadDir(s.builtin, ".")
	if err != nil {
		return nil, fmt.Errorf("listing built-in presets: %w", err)
	}

	return presetFiles(entries), nil
}

// presetFiles keeps regular files with a known extension, ordered so that a
// name's preferred extension comes first.
func presetFiles(entries []fs.DirEntry) []string {
	rank := make(map[string]int, len(Extensions))
	for i, ext := range Extensions {
		rank[ext] = i
	}

	var files []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if _, ok := rank[filepath.Ext(entry.Name())]; ok {
			files = append(files, entry.Name())
		}
	}

	sort.Slice(files, func(i, j int) bool {
		nameI := strings.TrimSuffix(files[i], filepath.Ext(files[i]))
		nameJ := strings.TrimSuffix(files[j], filepath.Ext(files[j]))

		if nameI != nameJ {
			return nameI < nameJ
		}

		return rank[filepath.Ext(files[i])] < rank[filepath.Ext(files[j])]
	})

	return files
}

// ParserFor picks the document parser for a file name by its extension.
//
//nolint:ireturn // the parser depends on the file type
func ParserFor(file string) config.DocumentParser {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".json", ".jsonc":
		return jsoncparser.NewParser()
	default:
		return yamlparser.NewParser()
	}
}

func isRegularFile(path string) bool {
	stat, err := os.Stat(path)

	return err == nil && stat.Mode().IsRegular()
}

// isPlainName rejects names that would escape a preset directory.
func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`)
}

func isMissing(err error) bool {
	return errors.Is(err, fs.ErrNotExist) ||
		errors.Is(err, fs.ErrInvalid) ||
		errors.Is(err, filefetcher.ErrPathIsDirectory)
}
