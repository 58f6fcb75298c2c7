// Package audit records why titles left the output and writes the optional
// keep/remove list files.
//
// A Trail maps a removal reason, keyed by the option that caused it (for
// example "language_filter" or "no_demos"), to the set of removed names.
// Classification passes each build their own trail and the orchestrator
// merges them, so no stage mutates shared state. Warnings carry the
// non-fatal data-quality signals raised while merging clone lists.
package audit
