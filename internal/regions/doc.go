// Package regions holds the static region and language reference data.
//
// The Table lists every region a catalog may claim in canonical order, the
// language(s) each region implies when a release carries no language tag,
// and the full language vocabulary in short ("En") and long ("English")
// form. Tables are immutable; WithSynonym returns a new table with an alias
// spliced next to an existing region, which is how "United Kingdom" and
// "UK" are made equivalent.
//
// The package also derives region priority orders: FrequencyOrder for
// catalogs where the user supplied none, and ProcessingOrder, which only
// reorders classification passes and never influences parent selection.
package regions
