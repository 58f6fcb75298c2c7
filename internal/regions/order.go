package regions

import "sort"

// PriorityRegions are the regions that hold the most titles in typical
// catalogs. Classifying them first keeps later passes small.
var PriorityRegions = []string{
	"USA", "Japan", "Europe", "Germany", "Poland", "Italy",
	"France", "Spain", "Netherlands", "Russia", "Korea",
}

// ProcessingOrder reorders a priority order for classification: priority
// regions first, then the remaining regions, then Unknown. Only the pass
// order changes; parent selection always uses the original order.
func ProcessingOrder(order []string) []string {
	priority := make(map[string]struct{}, len(PriorityRegions))
	for _, r := range PriorityRegions {
		priority[r] = struct{}{}
	}
	out := make([]string, 0, len(order))
	hasUnknown := false
	for _, r := range order {
		if _, ok := priority[r]; ok {
			out = append(out, r)
		}
	}
	for _, r := range order {
		if r == Unknown {
			hasUnknown = true
			continue
		}
		if _, ok := priority[r]; !ok {
			out = append(out, r)
		}
	}
	if hasUnknown {
		out = append(out, Unknown)
	}
	return out
}

// UnknownLast returns a copy of order with Unknown moved to the end. Orders
// without Unknown are copied unchanged.
func UnknownLast(order []string) []string {
	out := make([]string, 0, len(order))
	hasUnknown := false
	for _, r := range order {
		if r == Unknown {
			hasUnknown = true
			continue
		}
		out = append(out, r)
	}
	if hasUnknown {
		out = append(out, Unknown)
	}
	return out
}

// FrequencyOrder derives a priority order from the regions claimed by a
// catalog: most frequently claimed first, ties broken by canonical table
// order, Unknown always last. Each element of claims is the region list of
// one release.
func (t *Table) FrequencyOrder(claims [][]string) []string {
	counts := make(map[string]int)
	for _, regions := range claims {
		for _, r := range regions {
			counts[r]++
		}
	}
	order := make([]string, 0, len(counts))
	hasUnknown := false
	for r := range counts {
		if r == Unknown {
			hasUnknown = true
			continue
		}
		order = append(order, r)
	}
	sort.Slice(order, func(i, j int) bool {
		ci, cj := counts[order[i]], counts[order[j]]
		if ci != cj {
			return ci > cj
		}
		ri, rj := t.Rank(order[i]), t.Rank(order[j])
		if ri != rj {
			return ri < rj
		}
		return order[i] < order[j]
	})
	if hasUnknown {
		order = append(order, Unknown)
	}
	return order
}
