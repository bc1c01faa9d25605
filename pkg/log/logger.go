package log

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/YuminosukeSato/treeguess/pkg/errors"
)

// Config controls where and how records are written.
type Config struct {
	Level  string // debug, info, warn, error
	Format string // json (default) or console

	// File enables rotated file output; empty writes to Output, or stdout.
	File       string
	Output     io.Writer
	MaxSize    int // megabytes
	MaxBackups int
	MaxAge     int // days
	Compress   bool
}

// ZerologLogger implements Logger on top of zerolog.
type ZerologLogger struct {
	zl     zerolog.Logger
	closer io.Closer
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger = &ZerologLogger{zl: zerolog.New(os.Stderr).With().Timestamp().Logger()}
)

// New builds a logger from cfg and sets the process-wide level to cfg.Level.
// The logger itself accepts every level, so SetLevel can later raise or lower
// what it writes. It owns the rotated file, if any, and releases it on Close.
func New(cfg Config) (*ZerologLogger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.NewValidationError("log.level", err.Error(), cfg.Level)
	}

	var (
		out    io.Writer = os.Stdout
		closer io.Closer
	)
	if cfg.Output != nil {
		out = cfg.Output
	}
	if cfg.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		}
		out, closer = rotated, rotated
	}
	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	zerolog.SetGlobalLevel(toZerolog(level))
	zl := zerolog.New(out).Level(zerolog.TraceLevel).With().Timestamp().Logger()
	return &ZerologLogger{zl: zl, closer: closer}, nil
}

// NewWithWriter builds a JSON logger writing to w. Used by tests and the CLI.
func NewWithWriter(w io.Writer, level Level) *ZerologLogger {
	return &ZerologLogger{zl: zerolog.New(w).Level(toZerolog(level)).With().Timestamp().Logger()}
}

// Nop returns a logger that discards everything.
func Nop() Logger {
	return &ZerologLogger{zl: zerolog.Nop()}
}

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger and routes pkg/errors warnings to it.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()

	errors.SetZerologWarnFunc(func(w error) {
		l.Warn(w.Error(), ErrorKey, w)
	})
}

// SetLevel changes the global minimum level in either direction for loggers
// built by New. It is safe to call while logging, which is what config hot
// reload relies on.
func SetLevel(level string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(toZerolog(lvl))
	return nil
}

// Close releases the rotated log file, if any.
func (l *ZerologLogger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

func (l *ZerologLogger) Debug(msg string, fields ...any) {
	l.emit(l.zl.Debug(), msg, fields)
}

func (l *ZerologLogger) Info(msg string, fields ...any) {
	l.emit(l.zl.Info(), msg, fields)
}

func (l *ZerologLogger) Warn(msg string, fields ...any) {
	l.emit(l.zl.Warn(), msg, fields)
}

func (l *ZerologLogger) Error(msg string, fields ...any) {
	l.emit(l.zl.Error(), msg, fields)
}

func (l *ZerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	if len(fields) > 0 {
		ctx = ctx.Fields(normalizeFields(fields))
	}
	return &ZerologLogger{zl: ctx.Logger(), closer: l.closer}
}

func (l *ZerologLogger) Enabled(ctx context.Context, level Level) bool {
	zlevel := toZerolog(level)
	return zlevel >= l.zl.GetLevel() && zlevel >= zerolog.GlobalLevel()
}

func toZerolog(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}
