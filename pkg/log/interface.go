// Package log provides the structured logging interface used across treeguess.
//
// The interface is slog-compatible in shape (key/value field pairs) and is backed by
// zerolog. Components receive a Logger through their constructors; nothing in the
// tree or question packages logs on its own.
//
// Example usage:
//
//	logger := log.GetLogger().With(log.ComponentKey, "server")
//	logger.Info("tree loaded",
//	    log.TreeNodesKey, t.NodeCount(),
//	    log.TreeClassesKey, len(t.Classes()),
//	)
package log

import (
	"context"
	"fmt"
	"strings"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// Fields are alternating key/value pairs. When the first field passed to Error is an
// error value it is attached as the error of the record, with a stack trace when the
// error carries one.
type Logger interface {
	// Debug logs detailed diagnostic information.
	Debug(msg string, fields ...any)

	// Info logs general operational information.
	Info(msg string, fields ...any)

	// Warn logs conditions that do not stop the request or the process.
	Warn(msg string, fields ...any)

	// Error logs failures that should be investigated.
	//
	// Example:
	//   logger.Error("artifact rejected",
	//       err,
	//       log.ArtifactPathKey, path,
	//   )
	Error(msg string, fields ...any)

	// With returns a Logger that adds the given fields to every record.
	With(fields ...any) Logger

	// Enabled reports whether a record at level would be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a configuration string ("debug", "info", "warn", "error").
func ParseLevel(level string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
