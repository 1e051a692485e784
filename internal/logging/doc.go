// Package logging provides structured logging for the ucm CLI built on
// log/slog.
//
// The default text handler is optimized for terminals: colorized level
// and attribute keys when the output is a TTY, plain text otherwise.
// JSON output is available for machine consumption.
//
// Use [ForTest] in tests to route log output through testing.T so it
// only appears for failing or verbose runs.
package logging
