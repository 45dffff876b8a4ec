package logger

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

// Logger is an alias used by components for dependency injection.
type Logger = log.Logger

// New returns a logger with a consistent service prefix.
func New(service string, w io.Writer) *Logger {
	if w == nil {
		w = io.Discard
	}
	return log.New(w, "["+service+"] ", log.LstdFlags|log.Lmicroseconds|log.LUTC)
}

// Discard returns a logger that drops everything
func Discard(service string) *Logger {
	return New(service, io.Discard)
}

// OpenFile opens path for appending log lines. The terminal belongs to the
// UI, so logs only ever go to a file.
func OpenFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, errors.Wrapf(err, "open log file %s", path)
	}
	return f, nil
}
