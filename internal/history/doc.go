// Package history persists one row per processed catalog in SQLite.
//
// Each run records its identity, the files involved, the stats counters, and
// the outcome, so `retool history` can show what earlier runs produced. The
// schema is versioned; a database written by another schema version is
// rejected with ErrSchemaMismatch rather than migrated.
package history
