// Package logger provides structured logging with configurable levels on top
// of log/slog: JSON in production, text everywhere else.
package logger
