package catalog

import (
	"sort"
	"strings"
)

// Header holds catalog-level metadata.
type Header struct {
	Name        string
	Description string
	Version     string
	Date        string
	Author      string
	Homepage    string
	URL         string
	Comment     string
}

// Rom describes one file belonging to an entry.
type Rom struct {
	Name string
	Size int64
	CRC  string
	MD5  string
	SHA1 string
}

// Entry is one release row of the catalog.
type Entry struct {
	Name        string
	Description string
	Category    string
	Region      string
	Roms        []Rom
}

// Catalog is a parsed dat file.
type Catalog struct {
	Header  Header
	Entries []Entry
	// Source is the path the catalog was read from, if any.
	Source string
}

// HasChecksums reports whether any rom carries at least one checksum.
func (e Entry) HasChecksums() bool {
	for _, rom := range e.Roms {
		if rom.CRC != "" || rom.MD5 != "" || rom.SHA1 != "" {
			return true
		}
	}
	return false
}

// ReleaseKey identifies the physical release behind an entry. Two entries
// with the same key share every checksum field of every rom, with empty
// fields only matching empty fields. Entries without checksums return "".
func (e Entry) ReleaseKey() string {
	if !e.HasChecksums() {
		return ""
	}
	parts := make([]string, 0, len(e.Roms))
	for _, rom := range e.Roms {
		parts = append(parts, strings.ToLower(strings.TrimSpace(rom.CRC))+"/"+
			strings.ToLower(strings.TrimSpace(rom.MD5))+"/"+
			strings.ToLower(strings.TrimSpace(rom.SHA1)))
	}
	sort.Strings(parts)
	return strings.Join(parts, "|")
}

// SameRelease reports whether two entries are duplicate filings.
func (e Entry) SameRelease(other Entry) bool {
	key := e.ReleaseKey()
	return key != "" && key == other.ReleaseKey()
}
