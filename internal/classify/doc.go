// Package classify builds the per-region classified sets.
//
// Prepare tags every catalog entry once. A Classifier then selects, for one
// region, the records that claim it, survive the option and language
// filters, and are not a second filing of an already kept release. Each
// pass returns its own Result so passes can run concurrently; ClassifyAll
// fans them out and returns results in the order requested.
package classify
