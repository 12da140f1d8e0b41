package userconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/renameio"

	"github.com/0xalexb/presetkit/config"
	"github.com/0xalexb/presetkit/config/document"
	filefetcher "github.com/0xalexb/presetkit/config/fetcher/file"
	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"
	"github.com/0xalexb/presetkit/preset"
)

const (
	dirPerm  = 0o750
	filePerm = 0o600
)

var (
	// ErrExists is returned by Init when the file already exists.
	ErrExists = errors.New("user config already exists")
	// ErrInvalidValue is returned by Set for a value outside an enumerated key's legal values.
	ErrInvalidValue = errors.New("invalid value")
	// ErrEmptyKey is returned by Set without a key.
	ErrEmptyKey = errors.New("empty key")
)

// Shorthand keys and the field path each one fills.
//
//nolint:gochecknoglobals // fixed table
var flatKeys = map[string]string{
	"python_version":    "metadata.python_version",
	"layout":            "layout",
	"typing_level":      "typing_level",
	"formatter":         "formatting.tool",
	"line_length":       "formatting.line_length",
	"testing_framework": "testing.framework",
	"type_checker":      "formatting.type_checker",
	"package_manager":   "package_manager",
}

// Template returns the settings written by Init.
func Template() document.Document {
	return document.Document{
		"python_version":    "3.12",
		"layout":            string(preset.LayoutSrc),
		"typing_level":      string(preset.TypingStrict),
		"formatter":         string(preset.FormatterRuff),
		"line_length":       preset.DefaultLineLength,
		"testing_framework": string(preset.TestingPytest),
		"type_checker":      string(preset.TypeCheckerMypy),
		"package_manager":   string(preset.PackageManagerPoetry),
	}
}

// Store reads and writes the user defaults file.
type Store struct {
	path   string
	logger *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for dropped settings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a Store for the file at path.
func NewStore(path string, opts ...Option) *Store {
	store := &Store{
		path:   path,
		logger: slog.Default(),
	}

	for _, apply := range opts {
		apply(store)
	}

	return store
}

// DefaultPath returns <user config dir>/presetkit/config.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating user config dir: %w", err)
	}

	return filepath.Join(dir, "presetkit", "config.yaml"), nil
}

// Path returns the file location.
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the file exists.
func (s *Store) Exists() bool {
	_, err := os.Stat(s.path)

	return err == nil
}

// Load returns the stored settings as written. A missing file yields empty
// settings; malformed content is a *preset.ParseError. Enumerated shorthand
// keys holding an illegal value are dropped with a warning.
func (s *Store) Load() (document.Document, error) {
	fetcher, err := filefetcher.NewFetcher(s.path)()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return document.New(), nil
		}

		return nil, fmt.Errorf("opening user config: %w", err)
	}

	settings, err := config.LoadDocument(yamlparser.NewParser(), fetcher, s.path)
	if err != nil {
		return nil, &preset.ParseError{Source: s.path, Err: err}
	}

	for key, value := range settings {
		if err := checkValue(key, value); err != nil {
			s.logger.Warn("ignoring user config setting",
				slog.String("key", key),
				slog.Any("value", value),
				slog.String("path", s.path),
				slog.Any("error", err),
			)
			delete(settings, key)
		}
	}

	return settings, nil
}

// Defaults returns the stored settings lifted into a document that can be
// layered underneath a template.
func (s *Store) Defaults() (document.Document, error) {
	settings, err := s.Load()
	if err != nil {
		return nil, err
	}

	return Lift(settings), nil
}

// Save replaces the file with settings.
func (s *Store) Save(settings document.Document) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	return s.write(settings)
}

// Set stores one setting and returns the value actually written. raw is
// stored as an integer or boolean when it parses as one, else as a string.
// A dotted key such as "formatting.line_length" sets a nested value.
func (s *Store) Set(key, raw string) (any, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	value := Coerce(raw)
	if err := checkValue(key, value); err != nil {
		return nil, err
	}

	unlock, err := s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	settings, err := s.Load()
	if err != nil {
		return nil, err
	}

	if err := s.write(settings.Set(key, value)); err != nil {
		return nil, err
	}

	s.logger.Debug("user config updated", slog.String("key", key), slog.Any("value", value))

	return value, nil
}

// Init writes Template. An existing file is kept unless force is set.
func (s *Store) Init(force bool) error {
	unlock, err := s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if s.Exists() && !force {
		return fmt.Errorf("%w: %s", ErrExists, s.path)
	}

	return s.write(Template())
}

// Lift maps flat shorthand keys onto the field paths they stand for. Other
// keys are kept as they are and win over a shorthand for the same field.
func Lift(settings document.Document) document.Document {
	lifted := document.New()

	for key, value := range settings {
		if _, isFlat := flatKeys[key]; !isFlat {
			lifted = document.Merge(lifted, document.Document{key: value})
		}
	}

	for key, path := range flatKeys {
		value, ok := settings[key]
		if !ok || value == nil {
			continue
		}

		if !hasPath(lifted, path) {
			lifted = lifted.Set(path, value)
		}
	}

	return lifted
}

// Coerce converts a command line value to an integer, or to a boolean for
// "true" and "false".
func Coerce(raw string) any {
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}

	switch raw {
	case "true":
		return true
	case "false":
		return false
	default:
		return raw
	}
}

func hasPath(doc document.Document, path string) bool {
	value, ok := doc.Lookup(path)

	return ok && value != nil
}

// checkValue validates the enumerated shorthand keys.
func checkValue(key string, value any) error {
	path, ok := flatKeys[key]
	if !ok {
		path = key
	}

	legal := preset.LegalValues(path)
	if legal == nil || value == nil {
		return nil
	}

	s, isString := value.(string)
	if !isString || !slices.Contains(legal, s) {
		return fmt.Errorf("%w for %s: %v (valid: %s)", ErrInvalidValue, key, value, strings.Join(legal, ", "))
	}

	return nil
}

func (s *Store) write(settings document.Document) error {
	data, err := yamlparser.NewParser().Marshal(map[string]any(settings))
	if err != nil {
		return fmt.Errorf("encoding user config: %w", err)
	}

	err = renameio.WriteFile(s.path, data, filePerm)
	if err != nil {
		return fmt.Errorf("writing user config %q: %w", s.path, err)
	}

	return nil
}

// lock takes the cross-process write lock next to the file.
func (s *Store) lock() (func(), error) {
	err := os.MkdirAll(filepath.Dir(s.path), dirPerm)
	if err != nil {
		return nil, fmt.Errorf("creating user config dir: %w", err)
	}

	fileLock := flock.New(s.path + ".lock")

	err = fileLock.Lock()
	if err != nil {
		return nil, fmt.Errorf("locking user config: %w", err)
	}

	return func() {
		if err := fileLock.Unlock(); err != nil {
			s.logger.Warn("unlocking user config", slog.Any("error", err))
		}
	}, nil
}
