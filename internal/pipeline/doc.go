// Package pipeline turns one parsed catalog into a 1G1R result and drives
// batch runs over a file or a folder of dats.
//
// Processor wires the core stages together: tag extraction, per-region
// classification, grouping, compilation handling, parent selection and the
// clone list merge. It returns the frozen title set, the Stats counters, the
// reconciled removal trail and any warnings. Runner adds the I/O around it:
// reading dats, loading clone lists, writing the reduced dat and audit lists,
// and recording run history.
package pipeline
