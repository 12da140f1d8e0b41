package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
	FormatAuto = "auto"
)

// LoggerConfig selects the level and output format of a logger. The zero
// value logs JSON at INFO.
type LoggerConfig struct {
	Level  string
	Format string
}

// NewLogger builds a logger writing to w. "auto" picks text for terminals
// and JSON for everything else.
func NewLogger(config LoggerConfig, w io.Writer) *slog.Logger {
	return slog.New(newHandler(config, w))
}

//nolint:ireturn // the handler type depends on the format
func newHandler(config LoggerConfig, w io.Writer) slog.Handler {
	options := &slog.HandlerOptions{Level: ParseLevel(config.Level)}

	format := strings.ToLower(config.Format)
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}

	if format == FormatText {
		return slog.NewTextHandler(w, options)
	}

	return slog.NewJSONHandler(w, options)
}

// ParseLevel maps a case-insensitive level name to a slog.Level. Unknown
// names mean INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := file.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
