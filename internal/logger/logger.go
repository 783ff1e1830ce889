package logger

import "strings"

// Log levels accepted in configuration.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

// Output encodings.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options selects level and encoding for New.
type Options struct {
	Level  string
	Format string
}

// New builds a logger writing to stdout. Unknown levels fall back to info,
// unknown formats to console.
func New(opts Options) *Logger {
	level := strings.ToLower(strings.TrimSpace(opts.Level))
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	return newZapLogger(level, format)
}
