// Package logger provides structured logging with configurable log
// levels. It wraps the standard log/slog package and picks the output
// format from the runtime environment.
package logger
