// Package logging builds the slog loggers used by the presetkit CLI and
// server. Records are written as JSON by default; text output is available
// for humans and is picked automatically for terminals in auto mode.
package logging
