package preset

import (
	"fmt"
	"strings"

	"github.com/0xalexb/presetkit/config/document"
)

// Template keys consumed by the resolver and never copied into the
// configuration itself.
const (
	KeyName        = "name"
	KeyDescription = "description"
	KeyBase        = "base"
)

// Loader returns the raw document for a preset name or file path.
type Loader interface {
	Load(nameOrPath string) (document.Document, error)
}

// NameLoader returns the raw document for a preset name. It never treats
// the name as a file path.
type NameLoader interface {
	LoadName(name string) (document.Document, error)
}

// NameLoaderFunc adapts a function to NameLoader.
type NameLoaderFunc func(name string) (document.Document, error)

// LoadName calls f.
func (f NameLoaderFunc) LoadName(name string) (document.Document, error) {
	return f(name)
}

// Resolver expands a template's base reference. Only one level of
// inheritance is supported: a base may not itself declare a base.
type Resolver struct {
	loader NameLoader
}

// NewResolver creates a Resolver that looks bases up by name through loader.
func NewResolver(loader NameLoader) *Resolver {
	return &Resolver{loader: loader}
}

// Resolve returns doc with its base merged underneath. A document without a
// base is returned unchanged. The result never contains the base key.
func (r *Resolver) Resolve(doc document.Document) (document.Document, error) {
	if !doc.Has(KeyBase) {
		return doc, nil
	}

	rawBase := doc[KeyBase]
	if rawBase == nil {
		return doc.Without(KeyBase), nil
	}

	name, _ := doc.String(KeyName)

	base, ok := rawBase.(string)
	if !ok || strings.TrimSpace(base) == "" {
		return nil, &InheritanceError{
			Preset: name,
			Base:   fmt.Sprint(rawBase),
			Reason: "base must be a preset name",
		}
	}

	if strings.ContainsAny(base, `/\`) {
		return nil, &InheritanceError{Preset: name, Base: base, Reason: "base must be a preset name, not a path"}
	}

	if base == name {
		return nil, &InheritanceError{Preset: name, Base: base, Reason: "a preset cannot extend itself"}
	}

	parent, err := r.loader.LoadName(base)
	if err != nil {
		return nil, fmt.Errorf("loading base of preset %q: %w", name, err)
	}

	if grandparent, ok := parent[KeyBase]; ok && grandparent != nil {
		return nil, &InheritanceError{
			Preset: name,
			Base:   base,
			Reason: fmt.Sprintf("base declares its own base %v; only one level of inheritance is supported", grandparent),
		}
	}

	return document.Merge(parent.Without(KeyBase), doc.Without(KeyBase)), nil
}
