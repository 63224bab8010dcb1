// Package logging builds the charmbracelet logger used across the arcade.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	Level  string // debug, info, warn, error; empty means info
	File   string // rotating log file; "~/" is expanded
	Prefix string
	// Quiet discards output when no File is given. Terminal play sets it
	// because the alt screen owns stderr.
	Quiet bool
}

// New returns a logger and a close function for its file sink.
// File output rolls over at 10MB and keeps 3 backups for 7 days.
func New(opts Options) (*log.Logger, func() error, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("logging: invalid level %q: %w", opts.Level, err)
		}
		level = l
	}

	var (
		w         io.Writer = os.Stderr
		closer              = func() error { return nil }
		formatter           = log.TextFormatter
	)
	switch {
	case opts.File != "":
		path, err := expandPath(opts.File)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("logging: cannot create log directory: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    10, // MB
			MaxBackups: 3,
			MaxAge:     7, // days
		}
		w, closer, formatter = lj, lj.Close, log.LogfmtFormatter
	case opts.Quiet:
		w = io.Discard
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          opts.Prefix,
		Level:           level,
		Formatter:       formatter,
	})
	return logger, closer, nil
}

// Discard returns a logger that writes nothing.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

func expandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("logging: cannot get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
