// Package log provides compact logging functionality built on top of the
// standard slog package.
//
// This package extends slog to provide:
//   - Truncation of oversized string values (raw page content)
//   - Summarization of long string lists (orphan sets, page sets)
//   - Configurable log levels with verbose mode support
//   - Consistent log formatting across the application
//
// Audit runs routinely carry page bodies and page lists through their log
// attributes. The CompactHandler bounds these at the sink so call sites
// can log full values without drowning the terminal.
//
// # Usage
//
//	// Create a compact logger
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	// Use as a standard slog.Logger
//	logger.Info("page read",
//	    "page", "index",
//	    "raw", rawHTML, // truncated past the configured limit
//	)
//
//	// Set as default logger
//	slog.SetDefault(logger)
package log
