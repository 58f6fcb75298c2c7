package textutil

import (
	"sort"
	"strings"
	"unicode"
)

// NaturalLess orders strings case-insensitively with embedded numbers
// compared by value. Equal keys fall back to a plain byte comparison so the
// order is total.
func NaturalLess(a, b string) bool {
	ka, kb := naturalKey(a), naturalKey(b)
	for i := 0; i < len(ka) && i < len(kb); i++ {
		x, y := ka[i], kb[i]
		if x.numeric && y.numeric {
			if len(x.text) != len(y.text) {
				return len(x.text) < len(y.text)
			}
			if x.text != y.text {
				return x.text < y.text
			}
			continue
		}
		if x.text != y.text {
			return x.text < y.text
		}
	}
	if len(ka) != len(kb) {
		return len(ka) < len(kb)
	}
	return a < b
}

// SortNatural sorts values in place using NaturalLess.
func SortNatural(values []string) {
	sort.SliceStable(values, func(i, j int) bool { return NaturalLess(values[i], values[j]) })
}

type chunk struct {
	text    string
	numeric bool
}

func naturalKey(value string) []chunk {
	lowered := strings.ToLower(value)
	var chunks []chunk
	start := 0
	for start < len(lowered) {
		numeric := unicode.IsDigit(rune(lowered[start]))
		end := start
		for end < len(lowered) && unicode.IsDigit(rune(lowered[end])) == numeric {
			end++
		}
		text := lowered[start:end]
		if numeric {
			text = strings.TrimLeft(text, "0")
		}
		chunks = append(chunks, chunk{text: text, numeric: numeric})
		start = end
	}
	return chunks
}
