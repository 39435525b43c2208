// Package logger provides a simple logging interface for corebase components.
// It allows packages to log debug, info, warn, error and critical messages
// without being coupled to a specific logging implementation.
package logger

import (
	"fmt"
	"os"
	"sync"
)

// Level is the severity attached to a log message.
// The numeric values are stable and used as external level codes.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
	LevelCritical
)

// LevelFromCode converts an external level code to a Level.
// Unknown codes map to LevelInfo.
func LevelFromCode(code int) Level {
	if code < int(LevelDebug) || code > int(LevelCritical) {
		return LevelInfo
	}
	return Level(code)
}

// Code returns the external numeric code for the level.
func (l Level) Code() int {
	return int(l)
}

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarning:
		return "warn"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return "info"
	}
}

// ParseLevel maps a config string to a Level, defaulting to LevelInfo.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarning
	case "error":
		return LevelError
	case "critical":
		return LevelCritical
	default:
		return LevelInfo
	}
}

// Logger defines the interface for logging operations.
// All methods accept a format string and arguments, similar to fmt.Printf.
type Logger interface {
	Debug(format string, args ...interface{})
	Info(format string, args ...interface{})
	Warn(format string, args ...interface{})
	Error(format string, args ...interface{})
	Critical(format string, args ...interface{})
}

// Log dispatches a message to the method matching level.
func Log(l Logger, level Level, format string, args ...interface{}) {
	switch level {
	case LevelDebug:
		l.Debug(format, args...)
	case LevelWarning:
		l.Warn(format, args...)
	case LevelError:
		l.Error(format, args...)
	case LevelCritical:
		l.Critical(format, args...)
	default:
		l.Info(format, args...)
	}
}

// noopLogger implements Logger but discards all messages.
type noopLogger struct{}

// Noop returns a logger that discards all messages.
func Noop() Logger {
	return &noopLogger{}
}

func (l *noopLogger) Debug(format string, args ...interface{})    {}
func (l *noopLogger) Info(format string, args ...interface{})     {}
func (l *noopLogger) Warn(format string, args ...interface{})     {}
func (l *noopLogger) Error(format string, args ...interface{})    {}
func (l *noopLogger) Critical(format string, args ...interface{}) {}

// LogMessage represents a captured log message.
type LogMessage struct {
	Level   string
	Message string
}

// BufferLogger captures log messages for testing.
// It is safe for concurrent use since registry fan-out logs from goroutines.
type BufferLogger struct {
	mu       sync.Mutex
	Messages []LogMessage
}

// NewBufferLogger creates a logger that captures messages for inspection.
func NewBufferLogger() *BufferLogger {
	return &BufferLogger{
		Messages: make([]LogMessage, 0),
	}
}

func (l *BufferLogger) add(level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = append(l.Messages, LogMessage{Level: level, Message: fmt.Sprintf(format, args...)})
}

func (l *BufferLogger) Debug(format string, args ...interface{}) {
	l.add("debug", format, args...)
}

func (l *BufferLogger) Info(format string, args ...interface{}) {
	l.add("info", format, args...)
}

func (l *BufferLogger) Warn(format string, args ...interface{}) {
	l.add("warn", format, args...)
}

func (l *BufferLogger) Error(format string, args ...interface{}) {
	l.add("error", format, args...)
}

func (l *BufferLogger) Critical(format string, args ...interface{}) {
	l.add("critical", format, args...)
}

// HasLevel returns true if any message was logged at the given level.
func (l *BufferLogger) HasLevel(level string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, m := range l.Messages {
		if m.Level == level {
			return true
		}
	}
	return false
}

// Snapshot returns a copy of the captured messages.
func (l *BufferLogger) Snapshot() []LogMessage {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]LogMessage, len(l.Messages))
	copy(out, l.Messages)
	return out
}

// Clear removes all captured messages.
func (l *BufferLogger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.Messages = l.Messages[:0]
}

// DebugEnv turns on debug output of the default logger when set to any value.
const DebugEnv = "COREBASE_DEBUG"

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// Default returns the package logger used by components built without one.
// Until SetDefault is called it is a zap console logger on stderr at info
// level, or debug level when COREBASE_DEBUG is set.
func Default() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newEnvDefault()
	}
	return defaultLogger
}

// SetDefault replaces the package logger. Nil restores the environment default.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

func newEnvDefault() Logger {
	level := LevelInfo
	if os.Getenv(DebugEnv) != "" {
		level = LevelDebug
	}
	// Console-only loggers can't fail to build.
	l, _, _ := NewZap(ZapOptions{Level: level})
	return l
}
