// Package main hosts the retool CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, applies command-line
// overrides, and hands the work to internal/pipeline. Reports go to stdout
// and logs to stderr so the summary tables can be piped.
package main
