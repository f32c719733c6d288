// ABOUTME: Structured JSON logger backed by logrus with optional rotating file output
// ABOUTME: Implements the core Logger interface for the API and background workers

package logrus

import (
	"io"
	"os"
	"path/filepath"

	lr "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"shoplist-api/pkg/config"
)

// Logger implements the Logger interface using logrus
type Logger struct {
	logger *lr.Logger
	file   *lumberjack.Logger
}

// Options controls logger construction
type Options struct {
	Level string

	// File adds a rotating log file next to Output
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Output defaults to stdout
	Output io.Writer
}

// New creates a logger. Unknown levels fall back to info.
func New(opts Options) *Logger {
	logger := lr.New()

	level, err := lr.ParseLevel(opts.Level)
	if err != nil {
		level = lr.InfoLevel
	}
	logger.SetLevel(level)
	logger.SetFormatter(&lr.JSONFormatter{})

	out := opts.Output
	if out == nil {
		out = os.Stdout
	}

	l := &Logger{logger: logger}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			logger.WithError(err).Warn("Failed to create log directory")
		}
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		}
		out = io.MultiWriter(out, l.file)
	}

	logger.SetOutput(out)
	return l
}

// FromConfig creates a logger from the application log settings
func FromConfig(cfg config.LogConfig) *Logger {
	return New(Options{
		Level:      cfg.Level,
		File:       cfg.File,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	})
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.logger.WithFields(lr.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.logger.WithFields(lr.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.logger.WithFields(lr.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.logger.WithFields(lr.Fields(fields)).Error(msg)
}

// Close flushes and closes the log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
