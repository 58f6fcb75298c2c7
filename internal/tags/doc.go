// Package tags turns free-text release names into structured tag sets.
//
// Catalog naming conventions encode region, language, disc, revision,
// version and status metadata in parenthesized or bracketed segments of the
// display name, for example "Game X (USA, Europe) (En,Fr) (Disc 2) (Rev A)".
// The Extractor interface hides that encoding: NameExtractor applies an
// ordered library of segment rules and reports everything it could not
// recognize as comments that stay part of the base title.
//
// Extraction never fails. Unrecognized segments are not errors, and a name
// without a region segment is assigned the Unknown region.
//
// The package also hosts the category classifier used when a catalog does
// not state a category for an entry.
package tags
