// Package logging provides the structured logger shared by the storage
// providers and the CLI.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogLevel represents different logging levels
type LogLevel int

// Supported levels, lowest first.
const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

// String returns the lower-case level name.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "info"
	}
}

func (l LogLevel) zerolog() zerolog.Level {
	switch l {
	case LogLevelDebug:
		return zerolog.DebugLevel
	case LogLevelWarn:
		return zerolog.WarnLevel
	case LogLevelError:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// LogConfig holds configuration for the logger.
type LogConfig struct {
	// Level sets the minimum log level (debug, info, warn, error)
	Level LogLevel
	// Format is FormatConsole or FormatJSON
	Format string
	// Output defaults to os.Stderr
	Output io.Writer
	// EnableCallerInfo includes file and line number in logs
	EnableCallerInfo bool
}

// DefaultLogConfig returns a default logging configuration.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  LogLevelInfo,
		Format: FormatConsole,
	}
}

// Logger provides structured logging. Arguments after the message are
// alternating key/value pairs. A nil *Logger discards everything.
type Logger struct {
	zl  zerolog.Logger
	nop bool
}

// NewLogger creates a new structured logger with the given configuration.
func NewLogger(config LogConfig) *Logger {
	out := config.Output
	if out == nil {
		out = os.Stderr
	}
	if config.Format != FormatJSON {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339, NoColor: true}
	}

	ctx := zerolog.New(out).Level(config.Level.zerolog()).With().Timestamp()
	if config.EnableCallerInfo {
		ctx = ctx.CallerWithSkipFrameCount(3)
	}

	return &Logger{zl: ctx.Logger()}
}

// NewNopLogger creates a no-op logger that discards all log messages.
func NewNopLogger() *Logger {
	return &Logger{zl: zerolog.Nop(), nop: true}
}

// Debug logs debug-level messages
func (l *Logger) Debug(ctx context.Context, msg string, args ...any) {
	if l == nil {
		return
	}
	l.log(ctx, l.zl.Debug(), msg, args)
}

// Info logs info-level messages
func (l *Logger) Info(ctx context.Context, msg string, args ...any) {
	if l == nil {
		return
	}
	l.log(ctx, l.zl.Info(), msg, args)
}

// Warn logs warning-level messages
func (l *Logger) Warn(ctx context.Context, msg string, args ...any) {
	if l == nil {
		return
	}
	l.log(ctx, l.zl.Warn(), msg, args)
}

// Error logs error-level messages
func (l *Logger) Error(ctx context.Context, msg string, args ...any) {
	if l == nil {
		return
	}
	l.log(ctx, l.zl.Error(), msg, args)
}

func (l *Logger) log(ctx context.Context, ev *zerolog.Event, msg string, args []any) {
	if ev == nil {
		return
	}
	ev.Ctx(ctx).Fields(fields(args)).Msg(msg)
}

// With returns a logger with additional context fields
func (l *Logger) With(args ...any) *Logger {
	if l == nil || l.nop {
		return l
	}
	return &Logger{zl: l.zl.With().Fields(fields(args)).Logger()}
}

// WithOperation returns a logger with operation context
func (l *Logger) WithOperation(operation string) *Logger {
	return l.With("operation", operation)
}

// WithAddress returns a logger with address context
func (l *Logger) WithAddress(address string) *Logger {
	return l.With("address", address)
}

// fields turns alternating key/value arguments into a field map. A
// trailing key without a value is logged under "!BADKEY".
func fields(args []any) map[string]any {
	m := make(map[string]any, len(args)/2)
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			m["!BADKEY"] = args[i]
			break
		}
		key, ok := args[i].(string)
		if !ok {
			key = fmt.Sprint(args[i])
		}
		if err, ok := args[i+1].(error); ok {
			m[key] = err.Error()
			continue
		}
		m[key] = args[i+1]
	}
	return m
}

// LogOperation logs the outcome of a storage operation.
func LogOperation(
	ctx context.Context,
	logger *Logger,
	operation string,
	address string,
	duration time.Duration,
	err error,
	args ...any,
) {
	if logger == nil {
		return
	}

	fields := append([]any{
		"operation", operation,
		"address", address,
		"duration_ms", duration.Milliseconds(),
		"success", err == nil,
	}, args...)

	if err != nil {
		fields = append(fields, "error", err.Error())
		logger.Warn(ctx, "storage operation failed", fields...)
		return
	}
	logger.Debug(ctx, "storage operation completed", fields...)
}

// ParseLogLevel parses a string log level into a LogLevel.
func ParseLogLevel(level string) (LogLevel, error) {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug, nil
	case "info", "":
		return LogLevelInfo, nil
	case "warn", "warning":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	default:
		return LogLevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}
