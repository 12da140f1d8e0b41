package preset

import (
	"sort"

	"github.com/0xalexb/presetkit/config/document"
)

// Overrides are explicit per-invocation choices. Nil fields are left to the
// template and user defaults. Values holds further settings keyed by dotted
// path, such as "formatting.line_length".
type Overrides struct {
	Testing          *bool          `json:"testing,omitempty"`
	Formatting       *bool          `json:"formatting,omitempty"`
	Radon            *bool          `json:"radon,omitempty"`
	PreCommit        *bool          `json:"pre_commit,omitempty"`
	VersionBumping   *bool          `json:"version_bumping,omitempty"`
	PythonVersion    *string        `json:"python_version,omitempty"`
	TypingLevel      *string        `json:"typing_level,omitempty"`
	Layout           *string        `json:"layout,omitempty"`
	TypeChecker      *string        `json:"type_checker,omitempty"`
	PackageManager   *string        `json:"package_manager,omitempty"`
	ExtraPackages    []string       `json:"extra_packages,omitempty"`
	ExtraDevPackages []string       `json:"extra_dev_packages,omitempty"`
	Values           map[string]any `json:"values,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// Document renders the overrides as a sparse document. Extra packages become
// sequences so that merging appends them after the template's packages.
func (o Overrides) Document() document.Document {
	doc := document.New()

	paths := make([]string, 0, len(o.Values))
	for path := range o.Values {
		paths = append(paths, path)
	}

	sort.Strings(paths)

	for _, path := range paths {
		doc = doc.Set(path, o.Values[path])
	}

	setBool := func(path string, v *bool) {
		if v != nil {
			doc = doc.Set(path, *v)
		}
	}

	setString := func(path string, v *string) {
		if v != nil {
			doc = doc.Set(path, *v)
		}
	}

	setBool("testing.enabled", o.Testing)
	setBool("formatting.enabled", o.Formatting)
	setBool("formatting.radon", o.Radon)
	setBool("formatting.pre_commit", o.PreCommit)
	setBool("formatting.version_bumping", o.VersionBumping)
	setString("metadata.python_version", o.PythonVersion)
	setString("typing_level", o.TypingLevel)
	setString("layout", o.Layout)
	setString("formatting.type_checker", o.TypeChecker)
	setString("package_manager", o.PackageManager)

	if len(o.ExtraPackages) > 0 {
		doc = doc.Set("dependencies.main", stringsToSequence(o.ExtraPackages))
	}

	if len(o.ExtraDevPackages) > 0 {
		doc = doc.Set("dependencies.dev", stringsToSequence(o.ExtraDevPackages))
	}

	return doc
}

// IsZero reports whether no override is set.
func (o Overrides) IsZero() bool {
	return len(o.Document()) == 0
}

func stringsToSequence(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}
