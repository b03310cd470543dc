// Package logger wraps log/slog for cmd/topo's CLI surface. The core
// operations never log (per the no-background-work design in §5); only
// the CLI collaborator does, and only to stderr, since stdout is reserved
// for the operation's JSON result per the CLI contract in §6 — writing
// diagnostics to stdout would corrupt a piped result.
package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

// Init configures the package-level logger at the given level
// (debug|info|warn|error; unrecognized values fall back to warn).
func Init(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelWarn
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: lvl,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.String("time", a.Value.Time().Format("15:04:05"))
			}
			return a
		},
	})

	Log = slog.New(handler)
	slog.SetDefault(Log)
}

// Debug logs at debug level.
func Debug(msg string, args ...any) { Log.Debug(msg, args...) }

// Info logs at info level.
func Info(msg string, args ...any) { Log.Info(msg, args...) }

// Warn logs at warn level.
func Warn(msg string, args ...any) { Log.Warn(msg, args...) }

// Error logs at error level.
func Error(msg string, args ...any) { Log.Error(msg, args...) }

// Operation logs a single facade-operation invocation at info level,
// keyed by its name plus whatever argument fields the caller supplies
// (record counts, field names, strategy). Every cmd/topo subcommand calls
// this once before dispatching into internal/ops, giving the CLI the
// leveled, structured "what ran with what" trail the core itself can't
// produce since it never logs.
func Operation(name string, args ...any) {
	Log.Info("operation", append([]any{"op", name}, args...)...)
}
