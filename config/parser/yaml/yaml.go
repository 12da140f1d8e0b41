package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/0xalexb/presetkit/config/document"
)

var (
	// ErrEmptyData is returned by Parse for empty input.
	ErrEmptyData = errors.New("empty data")
	// ErrPathNotFound is returned when a section path names a missing key.
	ErrPathNotFound = errors.New("path not found")
	// ErrNotMapping is returned when a document's top level is not a mapping.
	ErrNotMapping = errors.New("top level is not a mapping")
)

// Parser reads YAML settings, preset documents and renders YAML output.
type Parser struct{}

// NewParser returns a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes data into target. A non-empty path such as "server:limits"
// decodes only that section.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return ErrEmptyData
	}

	if path == "" {
		if err := yaml.Unmarshal(data, target); err != nil {
			return fmt.Errorf("decoding yaml: %w", err)
		}

		return nil
	}

	selector, err := yaml.PathString(sectionPath(path))
	if err != nil {
		return fmt.Errorf("invalid path %q: %w", path, err)
	}

	err = selector.Read(bytes.NewReader(data), target)

	switch {
	case err == nil:
		return nil
	case yaml.IsNotFoundNodeError(err):
		return fmt.Errorf("%w: %s", ErrPathNotFound, path)
	default:
		return fmt.Errorf("reading path %q: %w", path, err)
	}
}

// ParseDocument parses YAML data into an untyped document. Empty or
// null-only input yields an empty document; a top level that is not a
// mapping is rejected with ErrNotMapping.
func (p *Parser) ParseDocument(data []byte) (document.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return document.New(), nil
	}

	var raw any

	err := yaml.Unmarshal(data, &raw)
	if err != nil {
		return nil, fmt.Errorf("decoding yaml: %w", err)
	}

	switch typed := raw.(type) {
	case nil:
		return document.New(), nil
	case map[string]any:
		return document.FromMap(typed), nil
	case map[any]any:
		root, _ := document.FromMap(map[string]any{"root": typed}).Lookup("root")
		mapping, _ := document.AsMapping(root)

		return document.Document(mapping), nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrNotMapping, raw)
	}
}

// Marshal renders v as YAML with block-style sequences.
func (p *Parser) Marshal(v any) ([]byte, error) {
	data, err := yaml.MarshalWithOptions(v, yaml.IndentSequence(true))
	if err != nil {
		return nil, fmt.Errorf("encoding yaml: %w", err)
	}

	return data, nil
}

// sectionPath turns "server:limits" into the "$.server.limits" form the
// yaml package expects.
func sectionPath(path string) string {
	return "$." + strings.ReplaceAll(path, ":", ".")
}
