package preset

// Layout is the project directory layout style.
type Layout string

// Layout values.
const (
	LayoutSrc  Layout = "src"
	LayoutFlat Layout = "flat"
)

// TypingLevel is the typing strictness level.
type TypingLevel string

// TypingLevel values.
const (
	TypingNone   TypingLevel = "none"
	TypingBasic  TypingLevel = "basic"
	TypingStrict TypingLevel = "strict"
)

// TestingFramework is the test runner.
type TestingFramework string

// TestingFramework values.
const (
	TestingPytest   TestingFramework = "pytest"
	TestingUnittest TestingFramework = "unittest"
	TestingNone     TestingFramework = "none"
)

// FormattingTool is the formatter/linter.
type FormattingTool string

// FormattingTool values.
const (
	FormatterRuff  FormattingTool = "ruff"
	FormatterBlack FormattingTool = "black"
	FormatterNone  FormattingTool = "none"
)

// TypeChecker is the static type checker.
type TypeChecker string

// TypeChecker values.
const (
	TypeCheckerMypy    TypeChecker = "mypy"
	TypeCheckerPyright TypeChecker = "pyright"
	TypeCheckerTy      TypeChecker = "ty"
	TypeCheckerNone    TypeChecker = "none"
)

// PackageManager is the tool used to create and install the project.
type PackageManager string

// PackageManager values.
const (
	PackageManagerPoetry PackageManager = "poetry"
	PackageManagerUV     PackageManager = "uv"
)

// Schedule is the dependabot update frequency.
type Schedule string

// Schedule values.
const (
	ScheduleDaily   Schedule = "daily"
	ScheduleWeekly  Schedule = "weekly"
	ScheduleMonthly Schedule = "monthly"
)

// Legal values of every enumerated field, keyed by field path.
//
//nolint:gochecknoglobals // fixed tables
var enumValues = map[string][]string{
	"layout":                  {string(LayoutSrc), string(LayoutFlat)},
	"typing_level":            {string(TypingNone), string(TypingBasic), string(TypingStrict)},
	"package_manager":         {string(PackageManagerPoetry), string(PackageManagerUV)},
	"testing.framework":       {string(TestingPytest), string(TestingUnittest), string(TestingNone)},
	"formatting.tool":         {string(FormatterRuff), string(FormatterBlack), string(FormatterNone)},
	"formatting.type_checker": {string(TypeCheckerMypy), string(TypeCheckerPyright), string(TypeCheckerTy), string(TypeCheckerNone)},
	"dependabot.schedule":     {string(ScheduleDaily), string(ScheduleWeekly), string(ScheduleMonthly)},
}

// LegalValues returns the accepted values of an enumerated field path such as
// "formatting.type_checker", or nil when the field is not enumerated.
func LegalValues(path string) []string {
	values, ok := enumValues[path]
	if !ok {
		return nil
	}

	out := make([]string, len(values))
	copy(out, values)

	return out
}

// Payload is free-form preset data passed through to generators untouched.
type Payload map[string]any

// Config is a fully resolved project configuration. Every field holds a
// concrete value and no placeholder token remains.
type Config struct {
	Name           string         `json:"name" yaml:"name"`
	PackageName    string         `json:"package_name" yaml:"package_name"`
	Preset         PresetInfo     `json:"preset" yaml:"preset"`
	Metadata       Metadata       `json:"metadata" yaml:"metadata"`
	Structure      Structure      `json:"structure" yaml:"structure"`
	Dependencies   Dependencies   `json:"dependencies" yaml:"dependencies"`
	Testing        Testing        `json:"testing" yaml:"testing"`
	Formatting     Formatting     `json:"formatting" yaml:"formatting"`
	Dependabot     Dependabot     `json:"dependabot" yaml:"dependabot"`
	TypingLevel    TypingLevel    `json:"typing_level" yaml:"typing_level"`
	Layout         Layout         `json:"layout" yaml:"layout"`
	PackageManager PackageManager `json:"package_manager" yaml:"package_manager"`
	EntryPoints    []EntryPoint   `json:"entry_points" yaml:"entry_points"`
	Extras         Payload        `json:"extras" yaml:"extras"`
}

// PresetInfo identifies the preset a configuration was resolved from.
type PresetInfo struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Metadata mirrors the project metadata table.
type Metadata struct {
	Name          string   `json:"name" yaml:"name"`
	Version       string   `json:"version" yaml:"version"`
	Description   string   `json:"description" yaml:"description"`
	Authors       []string `json:"authors" yaml:"authors"`
	License       string   `json:"license" yaml:"license"`
	Readme        string   `json:"readme" yaml:"readme"`
	PythonVersion string   `json:"python_version" yaml:"python_version"`
	Keywords      []string `json:"keywords" yaml:"keywords"`
	Classifiers   []string `json:"classifiers" yaml:"classifiers"`
}

// Structure lists directories and files to create.
type Structure struct {
	Directories []string       `json:"directories" yaml:"directories"`
	Files       []FileTemplate `json:"files" yaml:"files"`
}

// FileTemplate is a file rendered from a template or inline content.
type FileTemplate struct {
	Path       string `json:"path" yaml:"path"`
	Template   string `json:"template,omitempty" yaml:"template,omitempty"`
	Content    string `json:"content,omitempty" yaml:"content,omitempty"`
	Executable bool   `json:"executable" yaml:"executable"`
}

// Dependencies lists runtime, development and optional packages.
type Dependencies struct {
	Main     []string            `json:"main" yaml:"main"`
	Dev      []string            `json:"dev" yaml:"dev"`
	Optional map[string][]string `json:"optional" yaml:"optional"`
}

// Testing configures the test setup.
type Testing struct {
	Enabled   bool             `json:"enabled" yaml:"enabled"`
	Framework TestingFramework `json:"framework" yaml:"framework"`
	Coverage  bool             `json:"coverage" yaml:"coverage"`
}

// Formatting configures formatting, linting and type checking.
type Formatting struct {
	Enabled        bool           `json:"enabled" yaml:"enabled"`
	Tool           FormattingTool `json:"tool" yaml:"tool"`
	LineLength     int            `json:"line_length" yaml:"line_length"`
	Radon          bool           `json:"radon" yaml:"radon"`
	PreCommit      bool           `json:"pre_commit" yaml:"pre_commit"`
	VersionBumping bool           `json:"version_bumping" yaml:"version_bumping"`
	TypeChecker    TypeChecker    `json:"type_checker" yaml:"type_checker"`
}

// Dependabot configures automatic dependency updates.
type Dependabot struct {
	Enabled               bool     `json:"enabled" yaml:"enabled"`
	Schedule              Schedule `json:"schedule" yaml:"schedule"`
	OpenPullRequestsLimit int      `json:"open_pull_requests_limit" yaml:"open_pull_requests_limit"`
}

// EntryPoint is a console script.
type EntryPoint struct {
	Name   string `json:"name" yaml:"name"`
	Module string `json:"module" yaml:"module"`
}
