// Package logging builds the application logger. The terminal belongs to
// the UI while a game runs, so log records go to a rotating file.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/zenvertao/2048-game/internal/config"
)

// Options controls where log records go.
type Options struct {
	Prefix string
	// Stderr also writes records to standard error. Servers use it; the
	// interactive game must not.
	Stderr bool
}

// New returns a logger writing to the file named by cfg, rotated by size.
// An empty file name disables file output. The returned closer releases
// the file and is never nil.
func New(cfg config.LogConfig, opts Options) (*log.Logger, io.Closer, error) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		path := config.ExpandHome(cfg.File)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, err
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   false,
		}
		writers = append(writers, lj)
		closer = lj
	}
	if opts.Stderr {
		writers = append(writers, os.Stderr)
	}

	var w io.Writer = io.Discard
	switch len(writers) {
	case 0:
	case 1:
		w = writers[0]
	default:
		w = io.MultiWriter(writers...)
	}

	prefix := opts.Prefix
	if prefix == "" {
		prefix = "t2048"
	}
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})

	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			closer.Close()
			return nil, nil, err
		}
		logger.SetLevel(level)
	}

	return logger, closer, nil
}

// Discard returns a logger that drops every record.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
