// Package logger provides a simple logging interface and implementation
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Logger defines the logging interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})
	Info(v ...interface{})
	Infof(format string, v ...interface{})
	Warn(v ...interface{})
	Warnf(format string, v ...interface{})
	Error(v ...interface{})
	Errorf(format string, v ...interface{})
	Fatal(v ...interface{})
	Fatalf(format string, v ...interface{})
}

// Config selects level, output format and destination.
type Config struct {
	Level  string
	Format string // "console" or "json"
	Output io.Writer
}

// logger implements the Logger interface on top of zerolog
type logger struct {
	zl zerolog.Logger
}

// New creates a new logger instance configured from LOG_LEVEL and LOG_FORMAT
func New() Logger {
	return NewWithConfig(Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
}

// NewWithConfig creates a logger with explicit settings.
func NewWithConfig(cfg Config) Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}

	var w io.Writer = out
	if !strings.EqualFold(cfg.Format, "json") {
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "2006/01/02 15:04:05", NoColor: true}
	}

	zl := zerolog.New(w).Level(ParseLevel(cfg.Level)).With().Timestamp().Logger()
	return &logger{zl: zl}
}

// NewNop returns a logger that discards everything.
func NewNop() Logger {
	return &logger{zl: zerolog.Nop()}
}

// ParseLevel converts string log level to a zerolog level
func ParseLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Debug logs a debug message
func (l *logger) Debug(v ...interface{}) {
	l.zl.Debug().Msg(fmt.Sprint(v...))
}

// Debugf logs a formatted debug message
func (l *logger) Debugf(format string, v ...interface{}) {
	l.zl.Debug().Msgf(format, v...)
}

// Info logs an info message
func (l *logger) Info(v ...interface{}) {
	l.zl.Info().Msg(fmt.Sprint(v...))
}

// Infof logs a formatted info message
func (l *logger) Infof(format string, v ...interface{}) {
	l.zl.Info().Msgf(format, v...)
}

// Warn logs a warning message
func (l *logger) Warn(v ...interface{}) {
	l.zl.Warn().Msg(fmt.Sprint(v...))
}

// Warnf logs a formatted warning message
func (l *logger) Warnf(format string, v ...interface{}) {
	l.zl.Warn().Msgf(format, v...)
}

// Error logs an error message
func (l *logger) Error(v ...interface{}) {
	l.zl.Error().Msg(fmt.Sprint(v...))
}

// Errorf logs a formatted error message
func (l *logger) Errorf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
}

// Fatal logs an error message and exits
func (l *logger) Fatal(v ...interface{}) {
	l.zl.Error().Msg(fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf logs a formatted error message and exits
func (l *logger) Fatalf(format string, v ...interface{}) {
	l.zl.Error().Msgf(format, v...)
	os.Exit(1)
}
