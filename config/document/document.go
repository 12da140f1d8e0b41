package document

import (
	"fmt"
	"strings"
)

// PathSeparator separates keys in a Lookup or Set path.
const PathSeparator = "."

// Document is an untyped configuration tree keyed by section name.
type Document map[string]any

// New returns an empty Document.
func New() Document {
	return Document{}
}

// Has reports whether key is present at the top level.
func (d Document) Has(key string) bool {
	_, ok := d[key]

	return ok
}

// String returns the top-level value for key when it is a string.
func (d Document) String(key string) (string, bool) {
	value, ok := d[key].(string)

	return value, ok
}

// Lookup returns the value at a dotted path such as "formatting.line_length".
func (d Document) Lookup(path string) (any, bool) {
	var current any = d

	for _, key := range strings.Split(path, PathSeparator) {
		mapping, ok := AsMapping(current)
		if !ok {
			return nil, false
		}

		current, ok = mapping[key]
		if !ok {
			return nil, false
		}
	}

	return current, true
}

// Set returns a copy of d with value stored at a dotted path. Intermediate
// mappings are created as needed; a non-mapping on the way is replaced.
func (d Document) Set(path string, value any) Document {
	keys := strings.Split(path, PathSeparator)
	result := Clone(d)

	current := map[string]any(result)
	for _, key := range keys[:len(keys)-1] {
		next, ok := AsMapping(current[key])
		if !ok {
			next = map[string]any{}
		}

		current[key] = next
		current = next
	}

	current[keys[len(keys)-1]] = cloneValue(value)

	return result
}

// Without returns a copy of d without the given top-level keys.
func (d Document) Without(keys ...string) Document {
	result := Clone(d)
	for _, key := range keys {
		delete(result, key)
	}

	return result
}

// FromMap converts a parsed map into a Document, normalizing nested maps with
// non-string keys into string-keyed mappings.
func FromMap(m map[string]any) Document {
	if m == nil {
		return New()
	}

	doc, _ := normalize(m).(map[string]any)

	return Document(doc)
}

// AsMapping reports whether v is a mapping node and returns it as a plain map.
func AsMapping(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case Document:
		return map[string]any(typed), true
	case map[string]any:
		return typed, true
	default:
		return nil, false
	}
}

// AsSequence reports whether v is a sequence node.
func AsSequence(v any) ([]any, bool) {
	switch typed := v.(type) {
	case []any:
		return typed, true
	case []string:
		out := make([]any, len(typed))
		for i, s := range typed {
			out[i] = s
		}

		return out, true
	default:
		return nil, false
	}
}

func normalize(v any) any {
	switch typed := v.(type) {
	case Document:
		return normalize(map[string]any(typed))
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[key] = normalize(value)
		}

		return out
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprint(key)] = normalize(value)
		}

		return out
	case []any:
		out := make([]any, len(typed))
		for i, value := range typed {
			out[i] = normalize(value)
		}

		return out
	case []string:
		seq, _ := AsSequence(typed)

		return seq
	default:
		return v
	}
}
