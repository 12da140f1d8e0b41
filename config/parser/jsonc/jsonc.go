package jsonc

import (
	"bytes"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/0xalexb/presetkit/config/document"
	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"
)

// Parser implements config.Parser and config.DocumentParser for JSON and
// JSONC data.
type Parser struct {
	yaml *yamlparser.Parser
}

// NewParser creates a new JSONC parser instance.
func NewParser() *Parser {
	return &Parser{yaml: yamlparser.NewParser()}
}

// Parse strips comments from data and unmarshals it into target. The path
// parameter follows the colon-separated convention of the YAML parser.
func (p *Parser) Parse(data []byte, target any, path string) error {
	if len(data) == 0 {
		return yamlparser.ErrEmptyData
	}

	err := p.yaml.Parse(jsonc.ToJSON(data), target, path)
	if err != nil {
		return fmt.Errorf("jsonc: %w", err)
	}

	return nil
}

// ParseDocument strips comments from data and parses it into an untyped
// document. Empty input yields an empty document.
func (p *Parser) ParseDocument(data []byte) (document.Document, error) {
	cleaned := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(cleaned) == 0 {
		return document.New(), nil
	}

	if cleaned[0] != '{' && !bytes.Equal(cleaned, []byte("null")) {
		return nil, fmt.Errorf("jsonc: %w", yamlparser.ErrNotMapping)
	}

	doc, err := p.yaml.ParseDocument(cleaned)
	if err != nil {
		return nil, fmt.Errorf("jsonc: %w", err)
	}

	return doc, nil
}
