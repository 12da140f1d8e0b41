package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	yamlparser "github.com/0xalexb/presetkit/config/parser/yaml"
)

// render writes v as YAML, or as indented JSON when asJSON is set.
func render(w io.Writer, v any, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(v)
		if err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}

		return nil
	}

	data, err := yamlparser.NewParser().Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}

	_, err = w.Write(data)
	if err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return nil
}
