// Package logger provides structured logging for the print bridge.
//
// It builds a log/slog JSON logger whose level follows the debug flag and
// carries request-scoped loggers through a context.Context.
package logger
