package regions

import "strings"

// Unknown is the region assigned to releases that claim no region.
const Unknown = "Unknown"

// Region is one canonical region and the languages it implies.
type Region struct {
	Name      string
	Languages []string
}

var defaultRegions = []Region{
	{"USA", []string{"En"}},
	{"World", []string{"En"}},
	{"Europe", []string{"En"}},
	{"UK", []string{"En"}},
	{"Canada", []string{"En", "Fr"}},
	{"Australia", []string{"En"}},
	{"New Zealand", []string{"En"}},
	{"Ireland", []string{"En"}},
	{"Singapore", []string{"En"}},
	{"South Africa", []string{"En"}},
	{"Scandinavia", []string{"Da", "No", "Sv"}},
	{"Sweden", []string{"Sv"}},
	{"Denmark", []string{"Da"}},
	{"Norway", []string{"No"}},
	{"Finland", []string{"Fi"}},
	{"Germany", []string{"De"}},
	{"Austria", []string{"De"}},
	{"Switzerland", []string{"De", "Fr", "It"}},
	{"France", []string{"Fr"}},
	{"Belgium", []string{"Fr", "Nl"}},
	{"Netherlands", []string{"Nl"}},
	{"Italy", []string{"It"}},
	{"Spain", []string{"Es"}},
	{"Portugal", []string{"Pt"}},
	{"Latin America", []string{"Es"}},
	{"Mexico", []string{"Es"}},
	{"Argentina", []string{"Es"}},
	{"Brazil", []string{"Pt"}},
	{"Poland", []string{"Pl"}},
	{"Russia", []string{"Ru"}},
	{"Ukraine", []string{"Uk"}},
	{"Greece", []string{"El"}},
	{"Croatia", []string{"Hr"}},
	{"Turkey", []string{"Tr"}},
	{"Israel", []string{"He"}},
	{"United Arab Emirates", []string{"Ar"}},
	{"India", []string{"En"}},
	{"Asia", nil},
	{"Japan", []string{"Ja"}},
	{"Korea", []string{"Ko"}},
	{"China", []string{"Zh"}},
	{"Hong Kong", []string{"Zh"}},
	{"Taiwan", []string{"Zh"}},
	{Unknown, nil},
}

// Table is the immutable region reference data for one run.
type Table struct {
	regions []Region
	index   map[string]int
}

// Default returns the built-in region table.
func Default() *Table {
	return newTable(defaultRegions)
}

// New builds a table from an explicit region list. Unknown is appended when
// missing so every table can classify untagged releases.
func New(list []Region) *Table {
	hasUnknown := false
	for _, r := range list {
		if r.Name == Unknown {
			hasUnknown = true
			break
		}
	}
	if !hasUnknown {
		list = append(append([]Region{}, list...), Region{Name: Unknown})
	}
	return newTable(list)
}

func newTable(list []Region) *Table {
	t := &Table{
		regions: make([]Region, 0, len(list)),
		index:   make(map[string]int, len(list)),
	}
	for _, r := range list {
		name := strings.TrimSpace(r.Name)
		if name == "" {
			continue
		}
		if _, dup := t.index[name]; dup {
			continue
		}
		langs := append([]string(nil), r.Languages...)
		t.index[name] = len(t.regions)
		t.regions = append(t.regions, Region{Name: name, Languages: langs})
	}
	return t
}

// Names returns the canonical region order.
func (t *Table) Names() []string {
	out := make([]string, len(t.regions))
	for i, r := range t.regions {
		out[i] = r.Name
	}
	return out
}

// Regions returns a copy of every region with its implied languages.
func (t *Table) Regions() []Region {
	out := make([]Region, len(t.regions))
	for i, r := range t.regions {
		out[i] = Region{Name: r.Name, Languages: append([]string(nil), r.Languages...)}
	}
	return out
}

// IsRegion reports whether name is a known region or synonym.
func (t *Table) IsRegion(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Rank returns the canonical position of a region, or len(regions) when the
// region is not known.
func (t *Table) Rank(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return len(t.regions)
}

// ImpliedLanguages returns the default languages of a region.
func (t *Table) ImpliedLanguages(region string) []string {
	i, ok := t.index[region]
	if !ok {
		return nil
	}
	return append([]string(nil), t.regions[i].Languages...)
}

// WithSynonym returns a copy of the table where synonym is spliced directly
// after region and implies the same languages. The receiver is returned
// unchanged when region is unknown or synonym already exists.
func (t *Table) WithSynonym(region, synonym string) *Table {
	i, ok := t.index[region]
	if !ok || synonym == "" {
		return t
	}
	if _, exists := t.index[synonym]; exists {
		return t
	}
	list := make([]Region, 0, len(t.regions)+1)
	list = append(list, t.regions[:i+1]...)
	list = append(list, Region{Name: synonym, Languages: t.regions[i].Languages})
	list = append(list, t.regions[i+1:]...)
	return newTable(list)
}

// SpliceSynonym inserts synonym directly after region in order. The
// relative order of all other entries is preserved, and the input slice is
// never modified.
func SpliceSynonym(order []string, region, synonym string) []string {
	at := -1
	for i, name := range order {
		if name == synonym {
			return append([]string(nil), order...)
		}
		if name == region && at < 0 {
			at = i
		}
	}
	if at < 0 || synonym == "" {
		return append([]string(nil), order...)
	}
	out := make([]string, 0, len(order)+1)
	out = append(out, order[:at+1]...)
	out = append(out, synonym)
	out = append(out, order[at+1:]...)
	return out
}
