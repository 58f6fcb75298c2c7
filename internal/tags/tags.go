package tags

import (
	"slices"
	"strings"

	"retool/internal/regions"
)

// Status is a release status marker. Releases with different status
// markers never group together automatically.
type Status string

// Recognized status markers.
const (
	StatusDemo       Status = "demo"
	StatusBeta       Status = "beta"
	StatusProto      Status = "proto"
	StatusUnlicensed Status = "unlicensed"
	StatusAlternate  Status = "alternate"
	StatusPirate     Status = "pirate"
	StatusBadDump    Status = "bad"
)

// TagSet is the structured metadata derived from one release name.
type TagSet struct {
	// Base is the name with every recognized segment removed.
	Base      string
	Regions   []string
	Languages []string
	// LanguagesImplied is set when Languages came from the regions'
	// defaults rather than a language segment.
	LanguagesImplied bool
	Disc             string
	Version          string
	Revision         string
	// Status is sorted and free of duplicates.
	Status []Status
	// Comments lists unrecognized segments in name order. They remain part
	// of Base.
	Comments []string
}

// PrimaryRegion returns the first claimed region.
func (t TagSet) PrimaryRegion() string {
	if len(t.Regions) == 0 {
		return regions.Unknown
	}
	return t.Regions[0]
}

// Claims reports whether the release claims region.
func (t TagSet) Claims(region string) bool {
	return slices.Contains(t.Regions, region)
}

// IsUnknownRegion reports whether the release claims no known region.
func (t TagSet) IsUnknownRegion() bool {
	return len(t.Regions) == 0 || (len(t.Regions) == 1 && t.Regions[0] == regions.Unknown)
}

// HasStatus reports whether the marker is present.
func (t TagSet) HasStatus(s Status) bool {
	return slices.Contains(t.Status, s)
}

// HasLanguage reports whether the release carries the short language tag.
func (t TagSet) HasLanguage(short string) bool {
	return slices.Contains(t.Languages, short)
}

// StatusKey joins the status markers into a stable string, empty when the
// release carries none.
func (t TagSet) StatusKey() string {
	if len(t.Status) == 0 {
		return ""
	}
	parts := make([]string, len(t.Status))
	for i, s := range t.Status {
		parts[i] = string(s)
	}
	return strings.Join(parts, ",")
}

var statusLabels = map[Status]string{
	StatusDemo:       "(Demo)",
	StatusBeta:       "(Beta)",
	StatusProto:      "(Proto)",
	StatusUnlicensed: "(Unl)",
	StatusAlternate:  "(Alt)",
	StatusPirate:     "(Pirate)",
	StatusBadDump:    "[b]",
}

// Rebuild renders a canonical display name from a tag set. Extracting tags
// from the result yields a tag set equal to the input.
func Rebuild(t TagSet) string {
	var b strings.Builder
	b.WriteString(t.Base)
	if !t.IsUnknownRegion() {
		b.WriteString(" (")
		b.WriteString(strings.Join(t.Regions, ", "))
		b.WriteByte(')')
	}
	if len(t.Languages) > 0 && !t.LanguagesImplied {
		b.WriteString(" (")
		b.WriteString(strings.Join(t.Languages, ","))
		b.WriteByte(')')
	}
	if t.Disc != "" {
		b.WriteString(" (Disc ")
		b.WriteString(t.Disc)
		b.WriteByte(')')
	}
	if t.Revision != "" {
		b.WriteString(" (Rev ")
		b.WriteString(t.Revision)
		b.WriteByte(')')
	}
	if t.Version != "" {
		b.WriteString(" (v")
		b.WriteString(t.Version)
		b.WriteByte(')')
	}
	for _, s := range t.Status {
		if label, ok := statusLabels[s]; ok {
			b.WriteByte(' ')
			b.WriteString(label)
		}
	}
	return strings.TrimSpace(b.String())
}
