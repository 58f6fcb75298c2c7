package tags

import (
	"regexp"
	"slices"
	"strings"

	"retool/internal/catalog"
	"retool/internal/regions"
)

// Extractor derives a tag set for a catalog entry.
type Extractor interface {
	Extract(entry catalog.Entry) TagSet
}

// NameExtractor reads tags from the display name, falling back to the
// entry's explicit region field when the name claims no region.
type NameExtractor struct {
	table *regions.Table
}

var segmentPattern = regexp.MustCompile(`\(([^()]*)\)|\[([^\[\]]*)\]`)

// NewNameExtractor returns an extractor bound to a region table. A nil
// table selects the built-in one.
func NewNameExtractor(table *regions.Table) *NameExtractor {
	if table == nil {
		table = regions.Default()
	}
	return &NameExtractor{table: table}
}

// Extract implements Extractor.
func (x *NameExtractor) Extract(entry catalog.Entry) TagSet {
	ts := x.ExtractName(entry.Name)
	explicit := strings.TrimSpace(entry.Region)
	if ts.IsUnknownRegion() && explicit != "" && explicit != regions.Unknown && x.table.IsRegion(explicit) {
		ts.Regions = []string{explicit}
		if len(ts.Languages) == 0 || ts.LanguagesImplied {
			ts.Languages, ts.LanguagesImplied = nil, false
			x.applyImplied(&ts)
		}
	}
	return ts
}

// ExtractName parses a display name.
func (x *NameExtractor) ExtractName(name string) TagSet {
	var ts TagSet
	var base strings.Builder
	last := 0
	for _, m := range segmentPattern.FindAllStringSubmatchIndex(name, -1) {
		var recognized bool
		if m[4] >= 0 {
			recognized = matchRules(BracketRules, &ts, strings.TrimSpace(name[m[4]:m[5]]))
		} else {
			recognized = x.applySegment(&ts, strings.TrimSpace(name[m[2]:m[3]]))
		}
		if !recognized {
			ts.Comments = append(ts.Comments, name[m[0]:m[1]])
			continue
		}
		base.WriteString(name[last:m[0]])
		last = m[1]
	}
	base.WriteString(name[last:])
	ts.Base = strings.Join(strings.Fields(base.String()), " ")

	slices.Sort(ts.Status)
	if len(ts.Regions) == 0 {
		ts.Regions = []string{regions.Unknown}
	}
	if len(ts.Languages) == 0 {
		x.applyImplied(&ts)
	}
	return ts
}

func (x *NameExtractor) applySegment(ts *TagSet, content string) bool {
	if found, ok := x.regionList(content); ok {
		for _, r := range found {
			if !slices.Contains(ts.Regions, r) {
				ts.Regions = append(ts.Regions, r)
			}
		}
		return true
	}
	if found, ok := languageList(content); ok {
		for _, l := range found {
			if !slices.Contains(ts.Languages, l) {
				ts.Languages = append(ts.Languages, l)
			}
		}
		return true
	}
	if matchRules(Rules, ts, content) {
		return true
	}
	return matchStatusList(ts, content)
}

func (x *NameExtractor) regionList(content string) ([]string, bool) {
	parts := splitList(content, ",")
	if len(parts) == 0 {
		return nil, false
	}
	for _, p := range parts {
		if !x.table.IsRegion(p) {
			return nil, false
		}
	}
	return parts, true
}

func languageList(content string) ([]string, bool) {
	var out []string
	for _, group := range splitList(content, ",") {
		parts := splitList(group, "+")
		if len(parts) == 0 {
			return nil, false
		}
		for _, p := range parts {
			if !regions.IsLanguageTag(p) {
				return nil, false
			}
			out = append(out, p)
		}
	}
	return out, len(out) > 0
}

func (x *NameExtractor) applyImplied(ts *TagSet) {
	var implied []string
	for _, r := range ts.Regions {
		for _, l := range x.table.ImpliedLanguages(r) {
			if !slices.Contains(implied, l) {
				implied = append(implied, l)
			}
		}
	}
	if len(implied) > 0 {
		ts.Languages = implied
		ts.LanguagesImplied = true
	}
}

func (ts *TagSet) addStatus(s Status) {
	if !slices.Contains(ts.Status, s) {
		ts.Status = append(ts.Status, s)
	}
}
