package pipeline

import (
	"strings"

	"retool/internal/audit"
	"retool/internal/datfile"
	"retool/internal/grouping"
)

// Families lists every surviving parent with its clones, in output order.
func (r *Result) Families() []audit.Family {
	var out []audit.Family
	r.eachSlot(func(slot *grouping.Slot) {
		parent := slot.Parent()
		if parent == nil {
			return
		}
		fam := audit.Family{Parent: parent.Name()}
		for _, c := range slot.Clones() {
			fam.Clones = append(fam.Clones, c.Name())
		}
		out = append(out, fam)
	})
	return out
}

// Document builds the reduced dat. Parents are always written; clones only in
// legacy mode, carrying cloneof.
func (r *Result) Document() datfile.Document {
	doc := datfile.Document{Header: r.Header, Count: r.Stats.FinalTitleCount}
	r.eachSlot(func(slot *grouping.Slot) {
		for _, m := range slot.Members {
			if !m.IsParent() && !r.Legacy {
				continue
			}
			description := strings.TrimSpace(m.Entry.Description)
			if description == "" {
				description = m.Name()
			}
			doc.Games = append(doc.Games, datfile.Game{
				Name:        m.Name(),
				CloneOf:     m.CloneOf,
				Description: description,
				Category:    string(m.Category),
				Region:      m.Tags.PrimaryRegion(),
				Roms:        m.Entry.Roms,
			})
		}
	})
	return doc
}

// ParentNames returns the parents in output order.
func (r *Result) ParentNames() []string {
	var out []string
	r.eachSlot(func(slot *grouping.Slot) {
		if parent := slot.Parent(); parent != nil {
			out = append(out, parent.Name())
		}
	})
	return out
}

func (r *Result) eachSlot(fn func(*grouping.Slot)) {
	if r == nil || r.Set == nil {
		return
	}
	for _, g := range r.Set.Groups() {
		for _, slot := range g.Slots {
			fn(slot)
		}
	}
}
