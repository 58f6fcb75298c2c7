// Package logging assembles the slog loggers used by the CLI and the
// processing pipeline.
//
// It owns the console and JSON handlers, level and output plumbing, and a
// small set of attribute helpers so every component tags its lines the same
// way. A no-op logger is provided for tests and for library callers that do
// not want output.
package logging
