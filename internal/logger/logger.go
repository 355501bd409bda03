// Package logger provides leveled logging for the docverify CLI.
// Messages at or above the configured level are written to stderr.
// The --verbose flag lowers the level to debug and enables section headers,
// which helps users follow the submit and poll workflow.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu      sync.RWMutex
	verbose bool
	level             = zapcore.InfoLevel
	output  io.Writer = os.Stderr
	base              = build(output, effectiveLevel())
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	base = build(output, effectiveLevel())
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetLevel sets the minimum level from its name (debug, info, warn, error).
// Unknown names are rejected and leave the level unchanged.
func SetLevel(name string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(name)))); err != nil {
		return fmt.Errorf("invalid log level %q", name)
	}
	mu.Lock()
	defer mu.Unlock()
	level = l
	base = build(output, effectiveLevel())
	return nil
}

// Level returns the name of the configured minimum level.
func Level() string {
	mu.RLock()
	defer mu.RUnlock()
	return level.String()
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	base = build(output, effectiveLevel())
}

// L returns the underlying zap logger for structured fields.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	logf(zapcore.DebugLevel, format, args...)
}

// Info prints an informational message.
func Info(format string, args ...any) {
	logf(zapcore.InfoLevel, format, args...)
}

// Warn prints a warning message.
func Warn(format string, args ...any) {
	logf(zapcore.WarnLevel, format, args...)
}

// Error prints an error message.
func Error(format string, args ...any) {
	logf(zapcore.ErrorLevel, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

func logf(l zapcore.Level, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	if ce := base.Check(l, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

// effectiveLevel must be called with mu held.
func effectiveLevel() zapcore.Level {
	if verbose {
		return zapcore.DebugLevel
	}
	return level
}

// build returns a logger that writes "[LEVEL] message" lines to w.
func build(w io.Writer, l zapcore.Level) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		ConsoleSeparator: " ",
		EncodeLevel: func(l zapcore.Level, pae zapcore.PrimitiveArrayEncoder) {
			pae.AppendString("[" + l.CapitalString() + "]")
		},
	})
	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(w)), l)
	return zap.New(core)
}
