// Package clonelist loads curated clone lists and merges them into a
// selected title set.
//
// Lists are JSON files named after the catalog they apply to. They declare
// explicit parent/clone pairs, clone groups keyed by base title, and
// compilation membership. A missing file means no overrides. Merge lets an
// override win over automatic selection while keeping one parent per slot.
package clonelist
