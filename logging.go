// logging.go - structured logging for corefoundation.
//
// Package-level configuration for structured logging, so allocators and
// the thread pool can report diagnostics (affinity failures, residual
// task drains, debug-mode assertion trips) without forcing a logging
// framework choice on every caller.
//
// Design: a package-level logger, guarded by a mutex, is appropriate
// because logging here is a cross-cutting infrastructure concern shared
// by every allocator/pool instance in a process, not per-instance state.
package corefoundation

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// LogLevel is the severity of a [LogEntry].
type LogLevel int32

const (
	// LevelDebug is for detailed diagnostic information.
	LevelDebug LogLevel = iota
	// LevelInfo is for general informational messages.
	LevelInfo
	// LevelWarn is for best-effort operations that failed but did not
	// affect correctness (e.g. affinity pinning refused by the OS).
	LevelWarn
	// LevelError is for conditions indicating a contract violation.
	LevelError
)

// String returns the level's name.
func (l LogLevel) String() string {
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
		return fmt.Sprintf("UNKNOWN(%d)", l)
	}
}

// LogEntry is a single structured log record.
type LogEntry struct {
	Level   LogLevel
	Message string
	// Fields are additional key/value pairs, logged alongside Message.
	// Keys should be short, stable identifiers (e.g. "worker", "core").
	Fields map[string]any
	Time   time.Time
}

// Logger receives structured log entries from allocators and the thread
// pool. Implementations must be safe for concurrent use.
type Logger interface {
	Log(entry LogEntry)
}

// LoggerFunc adapts a function to a [Logger].
type LoggerFunc func(entry LogEntry)

// Log implements Logger.
func (f LoggerFunc) Log(entry LogEntry) { f(entry) }

// noopLogger discards every entry. It is the package default: a library
// must never log on a caller's behalf unless asked to.
type noopLogger struct{}

func (noopLogger) Log(LogEntry) {}

// NewNoOpLogger returns a [Logger] that discards all entries.
func NewNoOpLogger() Logger { return noopLogger{} }

var globalLogger = struct {
	sync.RWMutex
	logger Logger
}{logger: NewNoOpLogger()}

// SetLogger installs the package-level structured logger used by
// allocators and pools that were not given a component-specific logger
// via [WithBlockAllocatorLogger] / [WithThreadPoolLogger].
func SetLogger(logger Logger) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	if logger == nil {
		logger = NewNoOpLogger()
	}
	globalLogger.logger = logger
}

func getGlobalLogger() Logger {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}

func logWith(logger Logger, level LogLevel, msg string, fields map[string]any) {
	if logger == nil {
		logger = getGlobalLogger()
	}
	logger.Log(LogEntry{Level: level, Message: msg, Fields: fields, Time: time.Now()})
}

// logifaceLogger adapts [Logger] onto github.com/joeycumines/logiface,
// using the stumpy JSON event writer, the same pairing
// logiface-stumpy/example_test.go demonstrates.
type logifaceLogger struct {
	l *logiface.Logger[*stumpy.Event]
}

// NewLogifaceLogger returns a [Logger] backed by logiface+stumpy, writing
// newline-delimited JSON events to w.
func NewLogifaceLogger(w io.Writer) Logger {
	return &logifaceLogger{
		l: stumpy.L.New(
			stumpy.L.WithStumpy(),
			stumpy.L.WithWriter(logiface.WriterFunc[*stumpy.Event](func(e *stumpy.Event) error {
				_, err := w.Write(append(e.Bytes(), '\n'))
				return err
			})),
		),
	}
}

// Log implements Logger.
func (a *logifaceLogger) Log(entry LogEntry) {
	var b *logiface.Builder[*stumpy.Event]
	switch entry.Level {
	case LevelDebug:
		b = a.l.Debug()
	case LevelWarn:
		b = a.l.Warning()
	case LevelError:
		b = a.l.Err()
	default:
		b = a.l.Info()
	}
	for k, v := range entry.Fields {
		b = b.Any(k, v)
	}
	b.Log(entry.Message)
}
