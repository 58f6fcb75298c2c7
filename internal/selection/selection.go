// Package selection commits one parent per title group slot.
//
// For every slot the selector walks the priority order; the first region
// holding a member supplies the parent. Ties inside that region go to the
// member with the best ranked language from the allow-list, then (when
// enabled) the newest revision, then the smallest full name. Every other
// member of the slot becomes a clone of the parent.
package selection

import (
	"slices"
	"strings"

	"retool/internal/grouping"
	"retool/internal/textutil"
)

// Options configures parent selection.
type Options struct {
	// Order is the user-facing region priority order.
	Order []string
	// Languages is the language allow-list in priority order.
	Languages []string
	// PreferRevisions breaks language ties by the highest revision or version.
	PreferRevisions bool
}

// Selector assigns parents.
type Selector struct {
	opts     Options
	langRank map[string]int
}

// New returns a selector for opts.
func New(opts Options) *Selector {
	rank := make(map[string]int, len(opts.Languages))
	for i, l := range opts.Languages {
		if _, ok := rank[l]; !ok {
			rank[l] = i
		}
	}
	return &Selector{opts: opts, langRank: rank}
}

// Apply selects a parent for every slot in set and links the other members
// to it. Slots whose members are absent from the priority order keep the
// best member by name so every slot still has exactly one parent.
func (s *Selector) Apply(set *grouping.Set) {
	set.Prune()
	for _, g := range set.Groups() {
		for _, slot := range g.Slots {
			s.selectSlot(slot)
		}
	}
}

func (s *Selector) selectSlot(slot *grouping.Slot) {
	parent := s.Choose(slot.Members)
	if parent == nil {
		return
	}
	for _, m := range slot.Members {
		if m == parent {
			m.CloneOf = ""
			continue
		}
		m.CloneOf = parent.Name()
	}
}

// Choose returns the member that should be parent among candidates.
func (s *Selector) Choose(candidates []*grouping.Member) *grouping.Member {
	if len(candidates) == 0 {
		return nil
	}
	for _, region := range s.opts.Order {
		var inRegion []*grouping.Member
		for _, m := range candidates {
			if m.InRegion(region) {
				inRegion = append(inRegion, m)
			}
		}
		if len(inRegion) > 0 {
			return s.best(inRegion)
		}
	}
	return s.best(candidates)
}

func (s *Selector) best(members []*grouping.Member) *grouping.Member {
	winner := members[0]
	for _, m := range members[1:] {
		if s.better(m, winner) {
			winner = m
		}
	}
	return winner
}

func (s *Selector) better(a, b *grouping.Member) bool {
	ra, rb := s.languageRank(a), s.languageRank(b)
	if ra != rb {
		return ra < rb
	}
	if s.opts.PreferRevisions {
		if c := compareRevision(a, b); c != 0 {
			return c > 0
		}
	}
	return a.Name() < b.Name()
}

func (s *Selector) languageRank(m *grouping.Member) int {
	best := len(s.opts.Languages)
	for _, l := range m.Tags.Languages {
		if r, ok := s.langRank[l]; ok && r < best {
			best = r
		}
	}
	return best
}

// compareRevision orders by revision, then version, treating a missing
// value as older than any present one.
func compareRevision(a, b *grouping.Member) int {
	if c := compareMarker(a.Tags.Revision, b.Tags.Revision); c != 0 {
		return c
	}
	return compareMarker(a.Tags.Version, b.Tags.Version)
}

func compareMarker(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "":
		return -1
	case b == "":
		return 1
	case textutil.NaturalLess(a, b):
		return -1
	case textutil.NaturalLess(b, a):
		return 1
	}
	return strings.Compare(a, b)
}

// Parents returns the slot parents of set in group and slot order.
func Parents(set *grouping.Set) []*grouping.Member {
	var out []*grouping.Member
	for _, g := range set.Groups() {
		for _, slot := range g.Slots {
			for _, m := range slot.Members {
				if m.IsParent() {
					out = append(out, m)
				}
			}
		}
	}
	return slices.Clip(out)
}
