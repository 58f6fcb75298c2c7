// Package catalog defines the in-memory shape of a parsed dat file.
//
// A Catalog carries the header metadata that is passed through to the
// output untouched plus the ordered list of entries. Entries are treated as
// immutable once read; downstream stages derive tags and grouping data
// alongside them instead of mutating them.
package catalog
