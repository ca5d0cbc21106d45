// Package logger provides a logging utility based on log/slog
//
// DEBUG logging can be enabled by setting the FIXTURES_DEBUG environment variable:
//
//	export FIXTURES_DEBUG=1
//
// Output always goes to stderr: stdout carries the MCP stdio transport.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

var (
	// Logger is the global logger instance
	Logger *slog.Logger

	level = new(slog.LevelVar)
)

func init() {
	if debugEnabled(os.Getenv("FIXTURES_DEBUG")) {
		level.Set(slog.LevelDebug)
	}
	setOutput(os.Stderr)
}

func debugEnabled(v string) bool {
	return v != "" && strings.ToLower(v) != "false" && v != "0"
}

func setOutput(w io.Writer) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	Logger = slog.New(handler)
	slog.SetDefault(Logger)
}

// SetOutput redirects the global logger. Tests use it to capture records.
func SetOutput(w io.Writer) {
	setOutput(w)
}

// SetLevel changes the minimum level from a config string ("debug", "info",
// "warn", "error"). Unknown names leave the level untouched and return false.
func SetLevel(name string) bool {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(name))); err != nil {
		return false
	}
	level.Set(l)
	return true
}

// Level reports the current minimum level.
func Level() slog.Level {
	return level.Level()
}

// Debug logs a debug message if debug logging is enabled
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
