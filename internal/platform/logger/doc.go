// Package logger configures the application's slog-based structured logging
// and provides helpers for carrying request-scoped loggers through contexts.
package logger
