// Package config loads, normalizes, and validates the TOML configuration
// consumed by the retool CLI.
//
// Defaults live in Default; Load layers a config file on top, expands paths,
// resolves language names to short codes, and validates region names against
// the region table. The package also writes the embedded sample file and
// imports the language filter and region order from a legacy
// user-config.yaml.
package config
