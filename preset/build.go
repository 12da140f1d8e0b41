package preset

import (
	"errors"
	"log/slog"

	"github.com/0xalexb/presetkit/config/document"
	"github.com/0xalexb/presetkit/config/placeholder"
)

// DefaultPreset is the template used when none is chosen.
const DefaultPreset = "empty-package"

const sectionMetadata = "metadata"

// ErrEmptyReference is returned when Build is called without a preset.
var ErrEmptyReference = errors.New("preset name or path is required")

// Builder produces a Config from a template, the user's defaults and
// explicit overrides. Precedence from lowest to highest is user defaults,
// the resolved template, then overrides; the display name always wins for
// metadata.name.
type Builder struct {
	loader   Loader
	resolver *Resolver
	logger   *slog.Logger
}

// BuilderOption configures a Builder.
type BuilderOption func(*Builder)

// WithLogger sets the builder's logger.
func WithLogger(logger *slog.Logger) BuilderOption {
	return func(b *Builder) {
		b.logger = logger
	}
}

// NewBuilder creates a Builder that loads templates through loader. Bases
// are looked up through LoadName when loader is also a NameLoader, so a base
// never resolves to a file path.
func NewBuilder(loader Loader, opts ...BuilderOption) *Builder {
	builder := &Builder{
		loader:   loader,
		resolver: NewResolver(byName(loader)),
		logger:   slog.Default(),
	}

	for _, apply := range opts {
		apply(builder)
	}

	return builder
}

// Build resolves ref into a validated Config named displayName. userDefaults
// and overrides may be nil.
func (b *Builder) Build(ref string, userDefaults, overrides document.Document, displayName string) (Config, error) {
	merged, err := b.Merged(ref, userDefaults, overrides, displayName)
	if err != nil {
		return Config{}, err
	}

	cfg, err := Materialize(merged, displayName, b.logger)
	if err != nil {
		return Config{}, err
	}

	b.logger.Debug("configuration built",
		slog.String("preset", ref),
		slog.String("name", displayName),
		slog.String("package", cfg.PackageName),
	)

	return cfg, nil
}

// Merged returns the substituted document Build would materialize, without
// validating it. It is used to show intermediate results.
func (b *Builder) Merged(ref string, userDefaults, overrides document.Document, displayName string) (document.Document, error) {
	if ref == "" {
		return nil, ErrEmptyReference
	}

	template, err := b.loader.Load(ref)
	if err != nil {
		return nil, err
	}

	resolved, err := b.resolver.Resolve(template)
	if err != nil {
		return nil, err
	}

	merged := document.MergeAll(userDefaults, resolved, overrides)
	b.logger.Debug("layers merged",
		slog.String("preset", ref),
		slog.Int("defaults", len(userDefaults)),
		slog.Int("overrides", len(overrides)),
	)

	// A metadata value that is not a mapping is left for Materialize to reject.
	metadata := merged[sectionMetadata]
	if _, isMapping := document.AsMapping(metadata); isMapping || metadata == nil {
		merged = merged.Set(sectionMetadata+document.PathSeparator+KeyName, displayName)
	}

	return placeholder.Substitute(merged, displayName), nil
}

//nolint:ireturn // either the loader itself or an adapter
func byName(loader Loader) NameLoader {
	if named, ok := loader.(NameLoader); ok {
		return named
	}

	return NameLoaderFunc(loader.Load)
}
