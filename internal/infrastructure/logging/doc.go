// Package logging provides structured logging for naviguard.
//
// This package wraps Go's standard log/slog package to provide consistent,
// structured logging across the client core and the development server.
//
// # Features
//
//   - JSON output for production (machine-parsable)
//   - Text output for development (human-readable)
//   - Default fields (service, version) on all log entries
//   - Level-based filtering (debug, info, warn, error)
//   - Thread-safe for concurrent use
//
// # Usage
//
//	logger := logging.New(cfg.Logging, "1.0.0")
//	logger.Info("navigation resolved", "path", "/page2")
//	logger.Error("principal fetch failed", "error", err)
//
// # Security
//
// Never log the raw bearer credential. Log key names and code/message pairs,
// not token values.
package logging
