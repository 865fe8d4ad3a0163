// Package log provides the prefixed, colour-tagged loggers used by every
// component of the service.
package log

import (
	"errors"
	"fmt"
	"io"
	stdlog "log"
	"sync"
)

const colorReset = "\033[0m"

var (
	ErrEmptyPrefix = errors.New("logger prefix cannot be empty")
	ErrNilWriter   = errors.New("logger writer cannot be nil")
)

// Logger writes lines of the form "[PREFIX] [LEVEL] message".
type Logger struct {
	out *stdlog.Logger
	tag string
	mu  sync.Mutex
}

// New creates a logger whose prefix is wrapped in the given ANSI colour.
// An empty colour disables colouring.
func New(prefix, color string, w io.Writer) (*Logger, error) {
	if prefix == "" {
		return nil, ErrEmptyPrefix
	}
	if w == nil {
		return nil, ErrNilWriter
	}

	tag := fmt.Sprintf("[%s]", prefix)
	if color != "" {
		tag = color + tag + colorReset
	}
	return &Logger{
		out: stdlog.New(w, "", stdlog.LstdFlags),
		tag: tag,
	}, nil
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.write("INFO", msg)
}

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string) {
	l.write("WARNING", msg)
}

// Error logs a failure.
func (l *Logger) Error(msg string) {
	l.write("ERROR", msg)
}

func (l *Logger) write(level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Printf("%s [%s] %s", l.tag, level, msg)
}
