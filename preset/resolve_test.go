package preset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xalexb/presetkit/config/document"
)

type mapLoader map[string]document.Document

func (m mapLoader) Load(name string) (document.Document, error) {
	doc, ok := m[name]
	if !ok {
		return nil, &NotFoundError{Name: name}
	}

	return doc, nil
}

func (m mapLoader) LoadName(name string) (document.Document, error) {
	return m.Load(name)
}

func TestResolver_NoBase(t *testing.T) {
	t.Parallel()

	doc := document.Document{"name": "solo", "layout": "flat"}

	resolved, err := NewResolver(mapLoader{}).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, doc, resolved)
}

func TestResolver_NullBase(t *testing.T) {
	t.Parallel()

	doc := document.Document{"name": "solo", "base": nil}

	resolved, err := NewResolver(mapLoader{}).Resolve(doc)
	require.NoError(t, err)
	assert.Equal(t, document.Document{"name": "solo"}, resolved)
	assert.True(t, doc.Has("base"), "input must not be modified")
}

func TestResolver_ChildOverridesBase(t *testing.T) {
	t.Parallel()

	loader := mapLoader{
		"parent": {
			"name":   "parent",
			"layout": "src",
			"dependencies": map[string]any{
				"dev": []any{"pytest"},
			},
		},
	}

	child := document.Document{
		"name":   "child",
		"base":   "parent",
		"layout": "flat",
		"dependencies": map[string]any{
			"dev": []any{"mypy"},
		},
	}

	resolved, err := NewResolver(loader).Resolve(child)
	require.NoError(t, err)

	assert.Equal(t, document.Document{
		"name":   "child",
		"layout": "flat",
		"dependencies": map[string]any{
			"dev": []any{"pytest", "mypy"},
		},
	}, resolved)

	assert.Equal(t, "parent", child["base"], "input must not be modified")
}

func TestResolver_SelfReference(t *testing.T) {
	t.Parallel()

	loader := mapLoader{"loop": {"name": "loop", "base": "loop"}}

	_, err := NewResolver(loader).Resolve(loader["loop"])
	require.ErrorIs(t, err, ErrInheritance)

	var inheritance *InheritanceError
	require.True(t, errors.As(err, &inheritance))
	assert.Equal(t, "loop", inheritance.Preset)
	assert.Equal(t, "loop", inheritance.Base)
}

func TestResolver_ChainedBase(t *testing.T) {
	t.Parallel()

	loader := mapLoader{
		"grandparent": {"name": "grandparent"},
		"parent":      {"name": "parent", "base": "grandparent"},
	}

	_, err := NewResolver(loader).Resolve(document.Document{"name": "child", "base": "parent"})
	require.ErrorIs(t, err, ErrInheritance)
	assert.Contains(t, err.Error(), "one level")
}

func TestResolver_MissingBase(t *testing.T) {
	t.Parallel()

	_, err := NewResolver(mapLoader{}).Resolve(document.Document{"name": "child", "base": "ghost"})
	require.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInheritance)
}

func TestResolver_InvalidBaseReference(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base any
	}{
		{name: "number", base: 3},
		{name: "list", base: []any{"a", "b"}},
		{name: "blank", base: "  "},
		{name: "path", base: "../shared/base"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewResolver(mapLoader{}).Resolve(document.Document{"name": "child", "base": tt.base})
			require.ErrorIs(t, err, ErrInheritance)
		})
	}
}

func TestResolver_WithStore(t *testing.T) {
	t.Parallel()

	store := NewStore("", builtinFS())

	doc, err := store.Load("cli-tool")
	require.NoError(t, err)

	resolved, err := NewResolver(store).Resolve(doc)
	require.NoError(t, err)

	assert.False(t, resolved.Has("base"))
	assert.Equal(t, "cli-tool", resolved["name"])
	assert.Equal(t, "Command line tool", resolved["description"])
	assert.Equal(t, "src", resolved["layout"])

	dev, ok := resolved.Lookup("dependencies.dev")
	require.True(t, ok)
	assert.Equal(t, []any{"pytest"}, dev)
}
