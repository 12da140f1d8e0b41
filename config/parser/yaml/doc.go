// Package yaml reads and writes YAML with github.com/goccy/go-yaml.
//
// Parse decodes a typed settings struct, optionally from one section of the
// file. Sections are addressed with colon-separated keys:
//
//	var cfg api.Config
//	err := yaml.NewParser().Parse(data, &cfg, "server")
//
// ParseDocument turns a preset or user-defaults file into an untyped
// document.Document, and Marshal renders resolved configuration with
// block-style sequences.
package yaml
