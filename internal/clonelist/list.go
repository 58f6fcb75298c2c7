package clonelist

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Pair declares Clone a clone of Parent. Either side may be a full release
// name or a base title.
type Pair struct {
	Parent string `json:"parent"`
	Clone  string `json:"clone"`
}

// List is the curated override data for one catalog.
type List struct {
	Catalog string `json:"catalog"`
	Clones  []Pair `json:"clones"`
	// CloneGroups maps a parent base title to base titles of its clones.
	CloneGroups map[string][]string `json:"clone_groups"`
	// Compilations maps a compilation name to its member titles.
	Compilations map[string][]string `json:"compilations"`
}

// Empty reports whether the list declares nothing.
func (l List) Empty() bool {
	return len(l.Clones) == 0 && len(l.CloneGroups) == 0 && len(l.Compilations) == 0
}

// Pairs returns explicit pairs in file order followed by the clone groups
// expanded in parent order.
func (l List) Pairs() []Pair {
	out := make([]Pair, 0, len(l.Clones))
	out = append(out, l.Clones...)
	parents := make([]string, 0, len(l.CloneGroups))
	for parent := range l.CloneGroups {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	for _, parent := range parents {
		for _, clone := range l.CloneGroups[parent] {
			out = append(out, Pair{Parent: parent, Clone: clone})
		}
	}
	return out
}

// CompilationNames returns the declared compilations in sorted order.
func (l List) CompilationNames() []string {
	out := make([]string, 0, len(l.Compilations))
	for name := range l.Compilations {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Parse decodes a clone list. A bare array is read as the clones field.
func Parse(data []byte) (List, error) {
	data = bytesTrimUTF8BOM(data)
	data = bytesTrimSpace(data)
	if len(data) == 0 {
		return List{}, nil
	}
	var list List
	if data[0] == '[' {
		if err := json.Unmarshal(data, &list.Clones); err != nil {
			return List{}, fmt.Errorf("decode clone pairs: %w", err)
		}
	} else if err := json.Unmarshal(data, &list); err != nil {
		return List{}, fmt.Errorf("decode clone list: %w", err)
	}
	list.normalize()
	return list, nil
}

func (l *List) normalize() {
	l.Catalog = strings.TrimSpace(l.Catalog)
	pairs := make([]Pair, 0, len(l.Clones))
	for _, p := range l.Clones {
		p.Parent = strings.TrimSpace(p.Parent)
		p.Clone = strings.TrimSpace(p.Clone)
		if p.Parent == "" || p.Clone == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	l.Clones = pairs
	l.CloneGroups = normalizeMap(l.CloneGroups)
	l.Compilations = normalizeMap(l.Compilations)
}

func normalizeMap(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for key, values := range in {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		cleaned := make([]string, 0, len(values))
		for _, v := range values {
			if trimmed := strings.TrimSpace(v); trimmed != "" {
				cleaned = append(cleaned, trimmed)
			}
		}
		out[key] = append(out[key], cleaned...)
	}
	return out
}

func bytesTrimUTF8BOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

func bytesTrimSpace(data []byte) []byte {
	start := 0
	for start < len(data) && (data[start] == ' ' || data[start] == '\n' || data[start] == '\t' || data[start] == '\r') {
		start++
	}
	end := len(data)
	for end > start && (data[end-1] == ' ' || data[end-1] == '\n' || data[end-1] == '\t' || data[end-1] == '\r') {
		end--
	}
	return data[start:end]
}
