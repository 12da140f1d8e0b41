package preset

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is matched by errors for preset names or paths that do not resolve.
	ErrNotFound = errors.New("preset not found")
	// ErrParse is matched by errors for malformed preset or defaults content.
	ErrParse = errors.New("malformed document")
	// ErrInheritance is matched by errors for self-referencing or chained bases.
	ErrInheritance = errors.New("invalid preset inheritance")
	// ErrValidation is matched by errors for fields with illegal values after merging.
	ErrValidation = errors.New("invalid configuration")
)

// NotFoundError reports a name or path that resolved nowhere.
type NotFoundError struct {
	Name     string
	Searched []string
}

func (e *NotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("preset %q not found", e.Name)
	}

	return fmt.Sprintf("preset %q not found (searched %s)", e.Name, strings.Join(e.Searched, ", "))
}

// Is matches ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ParseError reports content that is not well-formed structured data.
type ParseError struct {
	Source string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Source, e.Err)
}

// Is matches ErrParse.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

// Unwrap returns the parser error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// InheritanceError reports a base reference that cannot be honoured.
type InheritanceError struct {
	Preset string
	Base   string
	Reason string
}

func (e *InheritanceError) Error() string {
	return fmt.Sprintf("preset %q extends %q: %s", e.Preset, e.Base, e.Reason)
}

// Is matches ErrInheritance.
func (e *InheritanceError) Is(target error) bool {
	return target == ErrInheritance
}

// FieldError is a single illegal field in a merged configuration.
type FieldError struct {
	Path   string `json:"path"`
	Value  any    `json:"value,omitempty"`
	Reason string `json:"reason"`
}

func (e FieldError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("%s: %s", e.Path, e.Reason)
	}

	return fmt.Sprintf("%s: %s (got %v)", e.Path, e.Reason, e.Value)
}

// ValidationError lists every illegal field found in a merged configuration.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	messages := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		messages[i] = field.Error()
	}

	return fmt.Sprintf("invalid configuration: %s", strings.Join(messages, "; "))
}

// Is matches ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Paths returns the offending field paths in report order.
func (e *ValidationError) Paths() []string {
	paths := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		paths[i] = field.Path
	}

	return paths
}
