package grouping

import (
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"retool/internal/classify"
	"retool/internal/textutil"
)

// Key returns the group key for a base title and status key.
func Key(base, status string) string {
	return cases.Fold().String(strings.TrimSpace(base)) + "|" + status
}

// Member is one release inside a title group.
type Member struct {
	classify.Record
	// Regions lists the classified sets that contained the release, in
	// pass order.
	Regions []string
	// CloneOf is the full name of the slot parent, empty for the parent.
	CloneOf string

	slot *Slot
}

// InRegion reports whether the member was classified in region.
func (m *Member) InRegion(region string) bool {
	return slices.Contains(m.Regions, region)
}

// IsParent reports whether the member is not linked to another release.
func (m *Member) IsParent() bool {
	return m.CloneOf == ""
}

// Slot returns the slot holding the member.
func (m *Member) Slot() *Slot {
	return m.slot
}

// Slot holds the members of a group sharing one disc index.
type Slot struct {
	Disc    string
	Members []*Member

	group *TitleGroup
}

// Group returns the group holding the slot.
func (s *Slot) Group() *TitleGroup {
	return s.group
}

// Parent returns the unlinked member of the slot, or nil before selection
// has run on an empty slot.
func (s *Slot) Parent() *Member {
	for _, m := range s.Members {
		if m.IsParent() {
			return m
		}
	}
	return nil
}

// Clones returns the linked members in natural name order.
func (s *Slot) Clones() []*Member {
	var out []*Member
	for _, m := range s.Members {
		if !m.IsParent() {
			out = append(out, m)
		}
	}
	return out
}

func (s *Slot) sortMembers() {
	sort.SliceStable(s.Members, func(i, j int) bool {
		return textutil.NaturalLess(s.Members[i].Name(), s.Members[j].Name())
	})
}

// TitleGroup is the set of releases believed to be the same game.
type TitleGroup struct {
	Key    string
	Base   string
	Status string
	Slots  []*Slot
}

// Slot returns the slot for disc, creating it when create is set.
func (g *TitleGroup) Slot(disc string, create bool) *Slot {
	for _, s := range g.Slots {
		if s.Disc == disc {
			return s
		}
	}
	if !create {
		return nil
	}
	s := &Slot{Disc: disc, group: g}
	g.Slots = append(g.Slots, s)
	sort.SliceStable(g.Slots, func(i, j int) bool {
		return textutil.NaturalLess(g.Slots[i].Disc, g.Slots[j].Disc)
	})
	return s
}

// Members returns every member of the group in slot order.
func (g *TitleGroup) Members() []*Member {
	var out []*Member
	for _, s := range g.Slots {
		out = append(out, s.Members...)
	}
	return out
}

// Set is the collection of title groups built from one catalog.
type Set struct {
	groups map[string]*TitleGroup
	byName map[string]*Member
}

// Build merges classified sets into title groups. results must be in pass
// order; a release seen in several sets becomes one member.
func Build(results []classify.Result) *Set {
	set := &Set{
		groups: make(map[string]*TitleGroup),
		byName: make(map[string]*Member),
	}
	for _, res := range results {
		for _, rec := range res.Records {
			if m, ok := set.byName[rec.Name()]; ok {
				if !m.InRegion(res.Region) {
					m.Regions = append(m.Regions, res.Region)
				}
				continue
			}
			set.add(&Member{Record: rec, Regions: []string{res.Region}})
		}
	}
	for _, g := range set.groups {
		for _, s := range g.Slots {
			s.sortMembers()
		}
	}
	return set
}

func (s *Set) add(m *Member) {
	status := m.Tags.StatusKey()
	key := Key(m.Tags.Base, status)
	g, ok := s.groups[key]
	if !ok {
		g = &TitleGroup{Key: key, Base: m.Tags.Base, Status: status}
		s.groups[key] = g
	}
	slot := g.Slot(m.Tags.Disc, true)
	slot.Members = append(slot.Members, m)
	m.slot = slot
	s.byName[m.Name()] = m
}

// Groups returns every group ordered by key.
func (s *Set) Groups() []*TitleGroup {
	keys := make([]string, 0, len(s.groups))
	for k := range s.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]*TitleGroup, len(keys))
	for i, k := range keys {
		out[i] = s.groups[k]
	}
	return out
}

// Group returns the group for key.
func (s *Set) Group(key string) *TitleGroup {
	return s.groups[key]
}

// GroupForBase returns the group of untagged releases with the given base title.
func (s *Set) GroupForBase(base string) *TitleGroup {
	return s.groups[Key(base, "")]
}

// Member returns the member with the full name.
func (s *Set) Member(name string) *Member {
	return s.byName[name]
}

// Contains reports whether a release with the full name survives.
func (s *Set) Contains(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of members.
func (s *Set) Len() int {
	return len(s.byName)
}

// Counts returns the number of parents and clones.
func (s *Set) Counts() (parents, clones int) {
	for _, m := range s.byName {
		if m.IsParent() {
			parents++
		} else {
			clones++
		}
	}
	return parents, clones
}

// Move places m in dst, dropping its old slot or group when left empty.
func (s *Set) Move(m *Member, dst *Slot) {
	if m.slot == dst {
		return
	}
	s.detach(m)
	dst.Members = append(dst.Members, m)
	m.slot = dst
	dst.sortMembers()
}

// Remove drops the member with the full name and returns it.
func (s *Set) Remove(name string) *Member {
	m, ok := s.byName[name]
	if !ok {
		return nil
	}
	s.detach(m)
	delete(s.byName, name)
	return m
}

func (s *Set) detach(m *Member) {
	old := m.slot
	if old == nil {
		return
	}
	old.Members = slices.DeleteFunc(old.Members, func(x *Member) bool { return x == m })
	m.slot = nil
	if len(old.Members) > 0 {
		return
	}
	g := old.group
	g.Slots = slices.DeleteFunc(g.Slots, func(x *Slot) bool { return x == old })
	if len(g.Slots) == 0 {
		delete(s.groups, g.Key)
	}
}

// Prune drops empty slots and groups.
func (s *Set) Prune() {
	for key, g := range s.groups {
		g.Slots = slices.DeleteFunc(g.Slots, func(x *Slot) bool { return len(x.Members) == 0 })
		if len(g.Slots) == 0 {
			delete(s.groups, key)
		}
	}
}
