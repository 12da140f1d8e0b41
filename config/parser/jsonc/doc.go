// Package jsonc provides a JSON-with-comments parser for the config package.
//
// Comments and trailing commas are stripped with github.com/tidwall/jsonc;
// the cleaned JSON is then decoded with github.com/goccy/go-yaml (JSON is a
// subset of YAML), so JSON and YAML presets produce identically typed
// documents.
//
// Usage:
//
//	parser := jsonc.NewParser()
//	doc, err := parser.ParseDocument(data)
package jsonc
