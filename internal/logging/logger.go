// Package logging builds the zerolog logger. The terminal belongs to the
// picker UI, so logs only go to a file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// Options selects the log destination and level.
type Options struct {
	File  string
	Level string
}

// New opens opts.File for appending and returns a logger writing to it,
// plus a close function. Without a file the logger discards everything.
func New(opts Options) (zerolog.Logger, func() error, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), noopClose, err
	}
	if opts.File == "" || level == zerolog.Disabled {
		return zerolog.Nop(), noopClose, nil
	}

	if dir := filepath.Dir(opts.File); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), noopClose, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), noopClose, fmt.Errorf("open log file: %w", err)
	}
	return NewWithWriter(f, level), f.Close, nil
}

// NewWithWriter returns a console-formatted logger on w.
func NewWithWriter(w io.Writer, level zerolog.Level) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: "15:04:05",
	}
	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Str("component", "rpick").
		Logger()
}

// ParseLevel accepts zerolog level names; empty means info.
func ParseLevel(s string) (zerolog.Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

func noopClose() error { return nil }
