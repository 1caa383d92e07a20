// Package logging builds the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the root logger
type Options struct {
	Level      string
	Format     string
	// Output defaults to os.Stdout
	Output     io.Writer
	// File, when set, receives a copy of every record and is rotated by size
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a logger writing to Output and, optionally, a rotating file
// The returned closer flushes the file sink and must be called on shutdown
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, err
	}

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    nonZero(opts.MaxSizeMB, 100), // megabytes
			MaxBackups: nonZero(opts.MaxBackups, 3),
			MaxAge:     nonZero(opts.MaxAgeDays, 7), // days
		}
		out = io.MultiWriter(out, lj)
		closer = lj
	}

	handler, err := newHandler(out, opts.Format, level)
	if err != nil {
		return nil, nil, err
	}
	return slog.New(handler), closer, nil
}

// Install makes logger the default for slog and routes the standard log package through it
func Install(logger *slog.Logger) {
	slog.SetDefault(logger)
	log.SetFlags(0)
}

// ParseLevel maps a level name to a slog.Level; empty means info
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}

func newHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "json", "":
		return slog.NewJSONHandler(w, opts), nil
	case "text":
		return slog.NewTextHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

func nonZero(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
