// Package userconfig stores the user's persistent project defaults.
//
// The file is a flat YAML mapping such as:
//
//	python_version: "3.12"
//	formatter: ruff
//	line_length: 100
//
// Flat shorthand keys are lifted into the sections a preset uses before the
// defaults are layered underneath a template; any other key, including nested
// sections like dependencies, is passed through unchanged. Writes are
// serialized across processes with a lock file and replace the file
// atomically.
package userconfig
