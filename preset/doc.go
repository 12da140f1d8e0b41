// Package preset turns named project templates into fully resolved project
// configurations.
//
// A template is a YAML or JSONC document found either at an explicit path, in
// the user's preset directory or among the built-in presets. A template may
// name a single base template whose values it overrides:
//
//	name: cli-tool
//	base: empty-package
//	dependencies:
//	  main: [typer]
//
// Building a configuration layers three documents with [document.Merge]:
//
//  1. user defaults (lowest precedence)
//  2. the template merged over its base
//  3. explicit overrides (highest precedence)
//
// The project display name is then forced into metadata.name, the
// __PROJECT_NAME__ and __PACKAGE_NAME__ tokens are substituted, and the result
// is validated into a [Config]. Failures are reported with typed errors that
// match [ErrNotFound], [ErrParse], [ErrInheritance] and [ErrValidation] via
// errors.Is.
package preset
