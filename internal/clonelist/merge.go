package clonelist

import (
	"fmt"

	"retool/internal/audit"
	"retool/internal/grouping"
)

// MergeResult summarizes one merge.
type MergeResult struct {
	Applied  int
	Warnings []audit.Warning
}

// Merge applies the list's clone pairs to a selected set. A pair links the
// clone under the declared parent, moving it into the parent's slot; when
// the clone was itself a parent its former clones follow it. Pairs whose
// parent is not a current parent are skipped. A clone declared twice keeps
// the later parent and the conflict is reported.
func Merge(set *grouping.Set, list List) MergeResult {
	m := merger{set: set, assigned: make(map[string]string)}
	for _, pair := range list.Pairs() {
		m.apply(pair)
	}
	set.Prune()
	return m.result
}

type merger struct {
	set      *grouping.Set
	assigned map[string]string
	result   MergeResult
}

func (m *merger) warn(kind audit.WarningKind, subject, detail string) {
	m.result.Warnings = append(m.result.Warnings, audit.Warning{Kind: kind, Subject: subject, Detail: detail})
}

func (m *merger) apply(pair Pair) {
	if pair.Parent == pair.Clone {
		return
	}
	parent, group := m.resolveParent(pair.Parent)
	if parent == nil {
		m.warn(audit.KindOverrideSkipped, pair.Clone, fmt.Sprintf("parent %q is not a current parent", pair.Parent))
		return
	}
	clones := m.resolveClones(pair.Clone)
	if len(clones) == 0 {
		m.warn(audit.KindOverrideSkipped, pair.Clone, "clone not in catalog")
		return
	}
	for _, clone := range clones {
		target := parent
		if group != nil {
			if slot := group.Slot(clone.Tags.Disc, false); slot != nil && slot.Parent() != nil {
				target = slot.Parent()
			}
		}
		if clone == target {
			continue
		}
		m.link(clone, target)
	}
}

// resolveParent finds the declared parent by full name, else by base title.
// group is set when the parent was resolved by base title.
func (m *merger) resolveParent(name string) (*grouping.Member, *grouping.TitleGroup) {
	if member := m.set.Member(name); member != nil {
		if !member.IsParent() {
			return nil, nil
		}
		return member, nil
	}
	group := m.set.GroupForBase(name)
	if group == nil || len(group.Slots) == 0 {
		return nil, nil
	}
	parent := group.Slots[0].Parent()
	if parent == nil {
		return nil, nil
	}
	return parent, group
}

func (m *merger) resolveClones(name string) []*grouping.Member {
	if member := m.set.Member(name); member != nil {
		return []*grouping.Member{member}
	}
	group := m.set.GroupForBase(name)
	if group == nil {
		return nil
	}
	return group.Members()
}

func (m *merger) link(clone, parent *grouping.Member) {
	if previous, ok := m.assigned[clone.Name()]; ok && previous != parent.Name() {
		m.warn(audit.KindOverrideConflict, clone.Name(), fmt.Sprintf("clone of %q replaced by %q", previous, parent.Name()))
	}
	m.assigned[clone.Name()] = parent.Name()
	if clone.CloneOf == parent.Name() {
		return
	}

	var followers []*grouping.Member
	if clone.IsParent() {
		for _, other := range clone.Slot().Members {
			if other != clone && other.CloneOf == clone.Name() {
				followers = append(followers, other)
			}
		}
	}
	dst := parent.Slot()
	m.set.Move(clone, dst)
	clone.CloneOf = parent.Name()
	for _, f := range followers {
		m.set.Move(f, dst)
		f.CloneOf = parent.Name()
	}
	m.result.Applied++
}
