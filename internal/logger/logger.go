package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var (
	mu     sync.RWMutex
	logger = zerolog.Nop()
)

// Setup replaces the process logger. Output goes to w; a console writer is used when w is
// a terminal-facing stream (stdout/stderr). Every line carries the run's session id.
func Setup(w io.Writer, debug bool) *zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}

	out := w
	if f, ok := w.(*os.File); ok && (f == os.Stderr || f == os.Stdout) {
		out = zerolog.ConsoleWriter{Out: f, TimeFormat: time.Kitchen}
	}

	l := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Str("session", uuid.New().String()).
		Logger()

	mu.Lock()
	logger = l
	mu.Unlock()
	return &l
}

// Get returns the process logger. Until Setup is called it discards everything.
func Get() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	l := logger
	return &l
}
