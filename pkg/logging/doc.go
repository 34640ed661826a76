// Package logging wraps the standard library slog package with roadsync
// defaults: structured JSON output to stderr, environment-based log level
// configuration (LOG_LEVEL), module/version context on every record, and
// source location tracking for debug logs.
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("roadsync", version)
//	    slog.Info("processing file", "path", path)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("roadsync", version, "debug")
//
// If LOG_LEVEL is not set, the level defaults to INFO. Level parsing is
// case-insensitive and accepts debug, info, warn/warning, and error.
package logging
