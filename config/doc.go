// Package config provides configuration loading interfaces shared by presets,
// user defaults and service settings.
//
// Parsers and fetchers are small interfaces: a Parser decodes typed settings,
// a DocumentParser produces an untyped document.Document, and a DataFetcher
// returns raw bytes (a Sourcer fetcher also says where they came from).
// Settings types opt into Defaulter and Validator.
//
// Typed settings go through Provider (fetch, parse, default, validate).
// Layered documents go through LoadDocument and are combined with
// document.Merge before any typed validation happens.
//
// # Sections
//
// Provider reads one section of a file, addressed with colon-separated keys:
// "server", "server:limits", or "" for the whole file.
//
// # Example
//
//	type ServeConfig struct {
//	    Address string `yaml:"address"`
//	}
//
//	provider := config.Provider(&ServeConfig{}, "server")
//	fetcher, err := filefetcher.NewFetcher("presetkit.yaml")()
//	cfg, err := provider(yamlparser.NewParser(), fetcher)
//
//	doc, err := config.LoadDocument(yamlparser.NewParser(), fetcher, "presetkit.yaml")
package config
