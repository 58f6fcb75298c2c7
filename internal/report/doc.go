// Package report renders console tables for batch outcomes, warnings, the
// region table and run history.
package report
