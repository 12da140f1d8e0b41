package config

import (
	"fmt"
	"log/slog"

	"github.com/0xalexb/presetkit/config/document"
)

// Parser reads data into a typed target. path selects a section with
// colon-separated keys, e.g. "server" or "server:limits"; an empty path
// means the whole document. See config/parser/yaml.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DocumentParser parses configuration data into an untyped document that can
// be merged with other layers before validation.
type DocumentParser interface {
	ParseDocument(data []byte) (document.Document, error)
}

// DataFetcher returns the raw bytes of one configuration source.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Sourcer is implemented by fetchers that know where their data came from.
type Sourcer interface {
	Source() string
}

// Validator is implemented by settings that can check themselves.
type Validator interface {
	Validate() error
}

// Defaulter is implemented by settings that fill in unset fields. It reports
// whether anything was filled.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// Provider returns a function that fetches, parses, defaults and validates
// the section of a settings file at path into target. Errors name the source
// when the fetcher is a Sourcer.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, fetcher DataFetcher) (*T, error) {
		source := sourceOf(fetcher)

		data, err := fetcher.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", source, err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", source, err)
		}

		if defaulter, ok := any(target).(Defaulter); ok && defaulter.SetDefaults() {
			slog.Debug("defaults applied", slog.String("source", source), slog.String("path", path))
		}

		if validator, ok := any(target).(Validator); ok {
			err = validator.Validate()
			if err != nil {
				return nil, fmt.Errorf("validating %s: %w", source, err)
			}
		}

		return target, nil
	}
}

// LoadDocument fetches raw data and parses it into an untyped document.
// The source is only used in log entries.
func LoadDocument(parser DocumentParser, fetcher DataFetcher, source string) (document.Document, error) {
	data, err := fetcher.Fetch()
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}

	doc, err := parser.ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	slog.Debug("document loaded", slog.String("source", source), slog.Int("keys", len(doc)))

	return doc, nil
}

func sourceOf(fetcher DataFetcher) string {
	if sourcer, ok := fetcher.(Sourcer); ok && sourcer.Source() != "" {
		return sourcer.Source()
	}

	return "configuration"
}
