// Copyright (c) fetchmux 2026. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

type loggerKey struct{}

// DefaultLogger is a text logger that is used if no logger is provided.
var DefaultLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
	Level: LevelVar,
}))

// LevelVar holds the current log level and may be changed at runtime.
var LevelVar = &slog.LevelVar{}

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New creates a new context with the given logger.
// If logger is nil, it uses the default logger.
// The log level is set based on the environment variable, whose name is
// derived from the executable name. For example, if the executable is named
// "fetchmux", the variable is "FETCHMUX_LOG_LEVEL". Valid values are
// "DEBUG", "INFO", "WARN" and "ERROR"; anything else defaults to "WARN".
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewWriter returns a context carrying a text logger that writes to w.
// Useful for capturing log output in tests or buffering it while the
// console status line owns the terminal.
func NewWriter(ctx context.Context, w io.Writer) context.Context {
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: LevelVar,
	}))

	return context.WithValue(ctx, loggerKey{}, logger)
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

func logLevelFromEnv() slog.Level {
	exec, _ := os.Executable()
	exec = filepath.Base(exec)
	ext := filepath.Ext(exec)

	if ext == ".exe" {
		exec = exec[:len(exec)-len(ext)]
	}

	envName := strings.ToUpper(exec) + "_LOG_LEVEL"

	switch os.Getenv(envName) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
