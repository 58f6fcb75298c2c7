package audit

import (
	"sort"

	"retool/internal/textutil"
)

// Trail accumulates removed titles by reason.
type Trail struct {
	reasons map[string]map[string]struct{}
}

// NewTrail returns an empty trail.
func NewTrail() *Trail {
	return &Trail{reasons: make(map[string]map[string]struct{})}
}

// Add records name under reason.
func (t *Trail) Add(reason, name string) {
	names, ok := t.reasons[reason]
	if !ok {
		names = make(map[string]struct{})
		t.reasons[reason] = names
	}
	names[name] = struct{}{}
}

// Merge folds other into t.
func (t *Trail) Merge(other *Trail) {
	if other == nil {
		return
	}
	for reason, names := range other.reasons {
		for name := range names {
			t.Add(reason, name)
		}
	}
}

// Forget drops name from every reason. Reasons left empty are removed.
func (t *Trail) Forget(name string) {
	for reason, names := range t.reasons {
		delete(names, name)
		if len(names) == 0 {
			delete(t.reasons, reason)
		}
	}
}

// Contains reports whether name was removed for any reason.
func (t *Trail) Contains(name string) bool {
	for _, names := range t.reasons {
		if _, ok := names[name]; ok {
			return true
		}
	}
	return false
}

// Reasons returns the recorded reason keys in sorted order.
func (t *Trail) Reasons() []string {
	out := make([]string, 0, len(t.reasons))
	for reason := range t.reasons {
		out = append(out, reason)
	}
	sort.Strings(out)
	return out
}

// Names returns the names removed for reason in natural order.
func (t *Trail) Names(reason string) []string {
	names := t.reasons[reason]
	out := make([]string, 0, len(names))
	for name := range names {
		out = append(out, name)
	}
	textutil.SortNatural(out)
	return out
}

// All returns every removed name once, in natural order.
func (t *Trail) All() []string {
	seen := make(map[string]struct{})
	for _, names := range t.reasons {
		for name := range names {
			seen[name] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	textutil.SortNatural(out)
	return out
}

// Len returns the number of distinct removed names.
func (t *Trail) Len() int {
	return len(t.All())
}

// Empty reports whether nothing was removed.
func (t *Trail) Empty() bool {
	return len(t.reasons) == 0
}
