package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_KeysOnOneSideSurvive(t *testing.T) {
	t.Parallel()

	base := Document{"layout": "src", "metadata": map[string]any{"version": "0.1.0"}}
	override := Document{"package_manager": "uv"}

	result := Merge(base, override)

	assert.Equal(t, Document{
		"layout":          "src",
		"metadata":        map[string]any{"version": "0.1.0"},
		"package_manager": "uv",
	}, result)
}

func TestMerge_Rules(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		base     Document
		override Document
		expected Document
	}{
		{
			name:     "scalar replaced",
			base:     Document{"layout": "src"},
			override: Document{"layout": "flat"},
			expected: Document{"layout": "flat"},
		},
		{
			name:     "mappings recurse",
			base:     Document{"formatting": map[string]any{"tool": "ruff", "line_length": 100}},
			override: Document{"formatting": map[string]any{"line_length": 120}},
			expected: Document{"formatting": map[string]any{"tool": "ruff", "line_length": 120}},
		},
		{
			name:     "sequences concatenate in order",
			base:     Document{"dependencies": map[string]any{"main": []any{"y"}}},
			override: Document{"dependencies": map[string]any{"main": []any{"x"}}},
			expected: Document{"dependencies": map[string]any{"main": []any{"y", "x"}}},
		},
		{
			name:     "duplicates are kept",
			base:     Document{"keywords": []any{"cli", "tool"}},
			override: Document{"keywords": []any{"cli"}},
			expected: Document{"keywords": []any{"cli", "tool", "cli"}},
		},
		{
			name:     "mapping replaced by scalar",
			base:     Document{"testing": map[string]any{"enabled": true}},
			override: Document{"testing": false},
			expected: Document{"testing": false},
		},
		{
			name:     "scalar replaced by sequence",
			base:     Document{"authors": "me"},
			override: Document{"authors": []any{"you"}},
			expected: Document{"authors": []any{"you"}},
		},
		{
			name:     "nil override is ignored",
			base:     Document{"layout": "src"},
			override: Document{"layout": nil},
			expected: Document{"layout": "src"},
		},
		{
			name:     "nested nil override is ignored",
			base:     Document{"metadata": map[string]any{"license": "MIT"}},
			override: Document{"metadata": map[string]any{"license": nil, "readme": "README.rst"}},
			expected: Document{"metadata": map[string]any{"license": "MIT", "readme": "README.rst"}},
		},
		{
			name:     "empty override keeps base",
			base:     Document{"layout": "src"},
			override: Document{},
			expected: Document{"layout": "src"},
		},
		{
			name:     "nil base",
			base:     nil,
			override: Document{"layout": "flat"},
			expected: Document{"layout": "flat"},
		},
		{
			name:     "string slice is treated as sequence",
			base:     Document{"main": []any{"a"}},
			override: Document{"main": []string{"b"}},
			expected: Document{"main": []any{"a", "b"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, Merge(tt.base, tt.override))
		})
	}
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	base := Document{
		"dependencies": map[string]any{"main": []any{"a"}},
		"metadata":     map[string]any{"version": "1.0.0"},
	}
	override := Document{
		"dependencies": map[string]any{"main": []any{"b"}},
		"metadata":     map[string]any{"version": "2.0.0"},
	}

	result := Merge(base, override)

	deps, ok := result["dependencies"].(map[string]any)
	require.True(t, ok)

	main, ok := deps["main"].([]any)
	require.True(t, ok)

	main[0] = "changed"

	assert.Equal(t, []any{"a"}, base["dependencies"].(map[string]any)["main"])
	assert.Equal(t, []any{"b"}, override["dependencies"].(map[string]any)["main"])
	assert.Equal(t, "1.0.0", base["metadata"].(map[string]any)["version"])
}

func TestMerge_Deterministic(t *testing.T) {
	t.Parallel()

	base := Document{
		"structure": map[string]any{
			"directories": []any{"src", "tests"},
			"files":       []any{map[string]any{"path": "README.md"}},
		},
	}
	override := Document{
		"structure": map[string]any{"directories": []any{"docs"}},
		"layout":    "flat",
	}

	first := Merge(base, override)
	for range 10 {
		assert.Equal(t, first, Merge(base, override))
	}
}

func TestMerge_NotCommutative(t *testing.T) {
	t.Parallel()

	a := Document{"layout": "src", "keywords": []any{"a"}}
	b := Document{"layout": "flat", "keywords": []any{"b"}}

	assert.NotEqual(t, Merge(a, b), Merge(b, a))
}

func TestMergeAll_LeftToRight(t *testing.T) {
	t.Parallel()

	defaults := Document{"layout": "src", "dependencies": map[string]any{"main": []any{"y"}}}
	template := Document{"layout": "flat", "dependencies": map[string]any{"main": []any{"x"}}}
	overrides := Document{"dependencies": map[string]any{"main": []any{"z"}}}

	result := MergeAll(defaults, template, overrides)

	assert.Equal(t, "flat", result["layout"])
	assert.Equal(t, []any{"y", "x", "z"}, result["dependencies"].(map[string]any)["main"])
}

func TestMergeAll_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Document{}, MergeAll())
}

func TestClone_IsDeep(t *testing.T) {
	t.Parallel()

	original := Document{"extras": map[string]any{"tags": []any{"a"}}}
	clone := Clone(original)

	clone["extras"].(map[string]any)["tags"].([]any)[0] = "b"

	assert.Equal(t, "a", original["extras"].(map[string]any)["tags"].([]any)[0])
}
