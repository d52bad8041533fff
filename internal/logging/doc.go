// Package logging provides structured logging utilities for macbridge.
//
// It centralizes attribute naming over the standard library's slog
// package. All log output goes to stderr; stdout is reserved for the
// single JSON result document each command prints.
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "notes.search")
//	logger.Debug("running script", logging.Account(account))
package logging
