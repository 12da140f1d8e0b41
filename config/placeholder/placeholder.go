// Package placeholder replaces the reserved project-name tokens inside the
// string values of a configuration document.
//
// Two tokens are recognized:
//
//	__PROJECT_NAME__  the hyphenated project name, e.g. "my-app"
//	__PACKAGE_NAME__  the identifier-safe package name, e.g. "my_app"
//
// Derived names never contain a double underscore. Replacement repeats until
// no token is left, so text around a token that forms a new token once the
// first is replaced is expanded too, and substituting again is a no-op.
package placeholder

import (
	"strings"
	"unicode"

	"github.com/0xalexb/presetkit/config/document"
)

const (
	// ProjectToken is replaced by the hyphenated project name.
	ProjectToken = "__PROJECT_NAME__"
	// PackageToken is replaced by the identifier-safe package name.
	PackageToken = "__PACKAGE_NAME__"
)

// Names holds the two names derived from a project display name.
type Names struct {
	Project string
	Package string
}

// Derive computes the hyphenated and identifier-safe forms of displayName.
func Derive(displayName string) Names {
	return Names{
		Project: collapse(displayName, '-', func(r rune) bool {
			return unicode.IsSpace(r) || r == '_' || r == '-'
		}),
		Package: packageName(displayName),
	}
}

func packageName(displayName string) string {
	name := collapse(displayName, '_', func(r rune) bool {
		return !isASCIIAlnum(r)
	})

	if name != "" && name[0] >= '0' && name[0] <= '9' {
		name = "_" + name
	}

	return name
}

// collapse replaces every run of separator runes with sep and trims sep from
// both ends.
func collapse(s string, sep rune, isSeparator func(rune) bool) string {
	var builder strings.Builder

	pending := false

	for _, r := range strings.TrimSpace(s) {
		if isSeparator(r) {
			pending = true

			continue
		}

		if pending && builder.Len() > 0 {
			builder.WriteRune(sep)
		}

		pending = false

		builder.WriteRune(r)
	}

	return builder.String()
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}

// Substitute returns a copy of doc with both tokens replaced in every string
// value, at any depth. Keys, non-string scalars and ordering are untouched.
func Substitute(doc document.Document, displayName string) document.Document {
	if !Contains(doc) {
		return document.Clone(doc)
	}

	names := Derive(displayName)
	replacer := strings.NewReplacer(ProjectToken, names.Project, PackageToken, names.Package)

	out, _ := walk(map[string]any(doc), replacer).(map[string]any)

	return document.Document(out)
}

// Contains reports whether any string value in doc still holds a token.
func Contains(doc document.Document) bool {
	found := false

	var visit func(v any)
	visit = func(v any) {
		switch typed := v.(type) {
		case string:
			found = found || hasToken(typed)
		case document.Document:
			visit(map[string]any(typed))
		case map[string]any:
			for _, value := range typed {
				visit(value)
			}
		case []any:
			for _, value := range typed {
				visit(value)
			}
		case []string:
			for _, value := range typed {
				visit(value)
			}
		}
	}

	visit(map[string]any(doc))

	return found
}

func walk(v any, replacer *strings.Replacer) any {
	switch typed := v.(type) {
	case string:
		return expand(typed, replacer)
	case document.Document:
		return walk(map[string]any(typed), replacer)
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = walk(value, replacer)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = walk(value, replacer)
		}

		return out
	case []string:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = expand(value, replacer)
		}

		return out
	default:
		return v
	}
}

// expand replaces tokens until none is left. A token's leading "__" can never
// come from a derived name, so every pass consumes original text and the loop
// ends.
func expand(s string, replacer *strings.Replacer) string {
	for hasToken(s) {
		s = replacer.Replace(s)
	}

	return s
}

func hasToken(s string) bool {
	return strings.Contains(s, ProjectToken) || strings.Contains(s, PackageToken)
}
