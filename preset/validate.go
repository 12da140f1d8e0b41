package preset

import (
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sort"
	"strings"

	"go.uber.org/multierr"

	"github.com/0xalexb/presetkit/config/document"
	"github.com/0xalexb/presetkit/config/placeholder"
)

// Default values of optional fields.
const (
	DefaultVersion               = "0.1.0"
	DefaultReadme                = "README.md"
	DefaultPythonVersion         = "3.11"
	DefaultLineLength            = 100
	DefaultOpenPullRequestsLimit = 5
)

const (
	minLineLength            = 1
	maxLineLength            = 1000
	minOpenPullRequestsLimit = 0
	maxOpenPullRequestsLimit = 100
	maxExactFloat            = 1 << 53
)

// Fields known in each section. Anything else is ignored with a warning.
//
//nolint:gochecknoglobals // fixed tables
var sectionFields = map[string][]string{
	"metadata": {
		"name", "version", "description", "authors", "license", "readme",
		"python_version", "keywords", "classifiers",
	},
	"structure":    {"directories", "files"},
	"dependencies": {"main", "dev", "optional"},
	"testing":      {"enabled", "framework", "coverage"},
	"formatting": {
		"enabled", "tool", "line_length", "radon", "pre_commit",
		"version_bumping", "type_checker",
	},
	"dependabot": {"enabled", "schedule", "open_pull_requests_limit"},
}

//nolint:gochecknoglobals // fixed tables
var topLevelFields = []string{
	KeyName, KeyDescription, KeyBase,
	"metadata", "structure", "dependencies", "testing", "formatting", "dependabot",
	"typing_level", "layout", "package_manager", "entry_points", "extras",
}

// Materialize converts a fully merged and substituted document into a Config.
// Every illegal field is reported in a single ValidationError ordered by path.
func Materialize(doc document.Document, displayName string, logger *slog.Logger) (Config, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dec := &decoder{doc: doc, logger: logger}
	dec.checkSections()

	presetName, _ := doc.String(KeyName)
	presetDescription, _ := doc.String(KeyDescription)

	pullRequestsLimit := dec.integer("dependabot.open_pull_requests_limit",
		DefaultOpenPullRequestsLimit, minOpenPullRequestsLimit, maxOpenPullRequestsLimit)

	cfg := Config{
		Name:        displayName,
		PackageName: placeholder.Derive(displayName).Package,
		Preset:      PresetInfo{Name: presetName, Description: presetDescription},
		Metadata: Metadata{
			Name:          dec.requiredString("metadata.name"),
			Version:       dec.str("metadata.version", DefaultVersion),
			Description:   dec.str("metadata.description", ""),
			Authors:       dec.stringList("metadata.authors"),
			License:       dec.str("metadata.license", ""),
			Readme:        dec.str("metadata.readme", DefaultReadme),
			PythonVersion: dec.str("metadata.python_version", DefaultPythonVersion),
			Keywords:      dec.stringList("metadata.keywords"),
			Classifiers:   dec.stringList("metadata.classifiers"),
		},
		Structure: Structure{
			Directories: dec.stringList("structure.directories"),
			Files:       dec.files("structure.files"),
		},
		Dependencies: Dependencies{
			Main:     dec.stringList("dependencies.main"),
			Dev:      dec.stringList("dependencies.dev"),
			Optional: dec.groups("dependencies.optional"),
		},
		Testing: Testing{
			Enabled:   dec.boolean("testing.enabled", true),
			Framework: TestingFramework(dec.enum("testing.framework", string(TestingPytest))),
			Coverage:  dec.boolean("testing.coverage", false),
		},
		Formatting: Formatting{
			Enabled:        dec.boolean("formatting.enabled", true),
			Tool:           FormattingTool(dec.enum("formatting.tool", string(FormatterRuff))),
			LineLength:     dec.integer("formatting.line_length", DefaultLineLength, minLineLength, maxLineLength),
			Radon:          dec.boolean("formatting.radon", false),
			PreCommit:      dec.boolean("formatting.pre_commit", false),
			VersionBumping: dec.boolean("formatting.version_bumping", false),
			TypeChecker:    TypeChecker(dec.enum("formatting.type_checker", string(TypeCheckerMypy))),
		},
		Dependabot: Dependabot{
			Enabled:               dec.boolean("dependabot.enabled", true),
			Schedule:              Schedule(dec.enum("dependabot.schedule", string(ScheduleWeekly))),
			OpenPullRequestsLimit: pullRequestsLimit,
		},
		TypingLevel:    TypingLevel(dec.enum("typing_level", string(TypingStrict))),
		Layout:         Layout(dec.enum("layout", string(LayoutSrc))),
		PackageManager: PackageManager(dec.enum("package_manager", string(PackageManagerPoetry))),
		EntryPoints:    dec.entryPoints("entry_points"),
		Extras:         dec.extras(),
	}

	if err := dec.err(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

type decoder struct {
	doc    document.Document
	logger *slog.Logger
	errs   error
}

func (d *decoder) fail(path string, value any, reason string) {
	d.errs = multierr.Append(d.errs, FieldError{Path: path, Value: value, Reason: reason})
}

func (d *decoder) err() error {
	if d.errs == nil {
		return nil
	}

	var fields []FieldError

	for _, err := range multierr.Errors(d.errs) {
		if field, ok := err.(FieldError); ok { //nolint:errorlint // only FieldError values are appended
			fields = append(fields, field)
		}
	}

	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Path < fields[j].Path
	})

	return &ValidationError{Fields: fields}
}

// lookup returns a present, non-null value at path.
func (d *decoder) lookup(path string) (any, bool) {
	value, ok := d.doc.Lookup(path)
	if !ok || value == nil {
		return nil, false
	}

	return value, true
}

func (d *decoder) checkSections() {
	for section, known := range sectionFields {
		value, ok := d.lookup(section)
		if !ok {
			continue
		}

		mapping, ok := document.AsMapping(value)
		if !ok {
			d.fail(section, value, "must be a mapping")

			continue
		}

		for key := range mapping {
			if !slices.Contains(known, key) {
				d.logger.Warn("ignoring unknown field", slog.String("path", section+document.PathSeparator+key))
			}
		}
	}
}

// sectionValid reports whether the parent section of path is a mapping or
// absent, so that a broken section is reported once.
func (d *decoder) sectionValid(path string) bool {
	section, _, nested := strings.Cut(path, document.PathSeparator)
	if !nested {
		return true
	}

	value, ok := d.lookup(section)
	if !ok {
		return true
	}

	_, isMapping := document.AsMapping(value)

	return isMapping
}

func (d *decoder) str(path, def string) string {
	if !d.sectionValid(path) {
		return def
	}

	value, ok := d.lookup(path)
	if !ok {
		return def
	}

	s, ok := value.(string)
	if !ok {
		d.fail(path, value, "must be a string")

		return def
	}

	return s
}

func (d *decoder) requiredString(path string) string {
	if value, ok := d.lookup(path); ok {
		if _, isString := value.(string); !isString {
			return d.str(path, "")
		}
	}

	s := d.str(path, "")
	if strings.TrimSpace(s) == "" && d.sectionValid(path) {
		d.fail(path, nil, "must not be empty")
	}

	return s
}

func (d *decoder) boolean(path string, def bool) bool {
	if !d.sectionValid(path) {
		return def
	}

	value, ok := d.lookup(path)
	if !ok {
		return def
	}

	b, ok := value.(bool)
	if !ok {
		d.fail(path, value, "must be a boolean")

		return def
	}

	return b
}

func (d *decoder) integer(path string, def, lowest, highest int) int {
	if !d.sectionValid(path) {
		return def
	}

	value, ok := d.lookup(path)
	if !ok {
		return def
	}

	n, ok := toInt(value)
	if !ok {
		d.fail(path, value, "must be an integer")

		return def
	}

	if n < lowest || n > highest {
		d.fail(path, value, fmt.Sprintf("must be between %d and %d", lowest, highest))

		return def
	}

	return n
}

func (d *decoder) enum(path, def string) string {
	s := d.str(path, def)

	legal := enumValues[path]
	if !slices.Contains(legal, s) {
		d.fail(path, s, "must be one of "+strings.Join(legal, ", "))

		return def
	}

	return s
}

func (d *decoder) stringList(path string) []string {
	out := []string{}

	if !d.sectionValid(path) {
		return out
	}

	value, ok := d.lookup(path)
	if !ok {
		return out
	}

	return d.stringSequence(path, value)
}

func (d *decoder) stringSequence(path string, value any) []string {
	out := []string{}

	seq, ok := document.AsSequence(value)
	if !ok {
		d.fail(path, value, "must be a list of strings")

		return out
	}

	for i, item := range seq {
		s, ok := item.(string)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), item, "must be a string")

			continue
		}

		out = append(out, s)
	}

	return out
}

func (d *decoder) groups(path string) map[string][]string {
	out := map[string][]string{}

	if !d.sectionValid(path) {
		return out
	}

	value, ok := d.lookup(path)
	if !ok {
		return out
	}

	mapping, ok := document.AsMapping(value)
	if !ok {
		d.fail(path, value, "must be a mapping of lists")

		return out
	}

	for group, packages := range mapping {
		out[group] = d.stringSequence(path+document.PathSeparator+group, packages)
	}

	return out
}

// items returns the mappings of a sequence of mappings at path.
func (d *decoder) items(path string) []map[string]any {
	if !d.sectionValid(path) {
		return nil
	}

	value, ok := d.lookup(path)
	if !ok {
		return nil
	}

	seq, ok := document.AsSequence(value)
	if !ok {
		d.fail(path, value, "must be a list")

		return nil
	}

	var out []map[string]any

	for i, item := range seq {
		mapping, ok := document.AsMapping(item)
		if !ok {
			d.fail(fmt.Sprintf("%s[%d]", path, i), item, "must be a mapping")

			continue
		}

		out = append(out, mapping)
	}

	return out
}

func (d *decoder) files(path string) []FileTemplate {
	out := []FileTemplate{}

	for i, mapping := range d.items(path) {
		item := &decoder{doc: document.Document(mapping), logger: d.logger}
		prefix := fmt.Sprintf("%s[%d].", path, i)

		file := FileTemplate{
			Path:       item.requiredString("path"),
			Template:   item.str("template", ""),
			Content:    item.str("content", ""),
			Executable: item.boolean("executable", false),
		}

		d.adopt(prefix, item)
		out = append(out, file)
	}

	return out
}

func (d *decoder) entryPoints(path string) []EntryPoint {
	out := []EntryPoint{}

	for i, mapping := range d.items(path) {
		item := &decoder{doc: document.Document(mapping), logger: d.logger}
		prefix := fmt.Sprintf("%s[%d].", path, i)

		entry := EntryPoint{
			Name:   item.requiredString("name"),
			Module: item.requiredString("module"),
		}

		d.adopt(prefix, item)
		out = append(out, entry)
	}

	return out
}

// adopt copies the failures of a nested decoder under prefix.
func (d *decoder) adopt(prefix string, nested *decoder) {
	for _, err := range multierr.Errors(nested.errs) {
		if field, ok := err.(FieldError); ok { //nolint:errorlint // only FieldError values are appended
			field.Path = prefix + field.Path
			d.errs = multierr.Append(d.errs, field)
		}
	}
}

// extras collects the extras mapping plus unknown top-level keys. Keys
// already under extras win.
func (d *decoder) extras() Payload {
	out := Payload{}

	for key, value := range d.doc {
		if slices.Contains(topLevelFields, key) {
			continue
		}

		out[key] = value
	}

	value, ok := d.lookup("extras")
	if !ok {
		return Payload(document.Clone(document.Document(out)))
	}

	mapping, ok := document.AsMapping(value)
	if !ok {
		d.fail("extras", value, "must be a mapping")

		return Payload(document.Clone(document.Document(out)))
	}

	for key, value := range mapping {
		out[key] = value
	}

	return Payload(document.Clone(document.Document(out)))
}

func toInt(value any) (int, bool) {
	switch n := value.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return clampInt64(n)
	case uint:
		return clampUint64(uint64(n))
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return clampUint64(uint64(n))
	case uint64:
		return clampUint64(n)
	case float64:
		if n != math.Trunc(n) || math.Abs(n) > maxExactFloat {
			return 0, false
		}

		return clampInt64(int64(n))
	default:
		return 0, false
	}
}

func clampInt64(n int64) (int, bool) {
	if n > math.MaxInt || n < math.MinInt {
		return 0, false
	}

	return int(n), true
}

func clampUint64(n uint64) (int, bool) {
	if n > math.MaxInt {
		return 0, false
	}

	return int(n), true
}
