// Package presets ships the built-in project templates.
package presets

import (
	"embed"
	"io/fs"
)

// builtinFS contains the built-in templates at its root.
//
//go:embed *.yaml
var builtinFS embed.FS

// FS returns the read-only built-in preset file system.
//
//nolint:ireturn // callers only need fs.FS
func FS() fs.FS {
	return builtinFS
}
