package pipeline

import (
	"sort"
	"strings"
)

// FlagString renders the enabled options as the short flag suffix used in
// output file names, such as " (-dl)". It is empty when no option is set.
func (o Options) FlagString(keepRemove bool) string {
	var letters []string
	add := func(on bool, letter string) {
		if on {
			letters = append(letters, letter)
		}
	}
	add(o.NoApplications, "a")
	add(o.NoPreproduction, "b")
	add(o.NoCompilations, "c")
	add(o.NoDemos, "d")
	add(len(o.Languages) > 0, "l")
	add(o.NoPirate, "p")
	add(o.NoBadDumps, "r")
	add(o.NoUnlicensed, "u")
	add(o.Legacy, "x")
	add(keepRemove, "y")
	if len(letters) == 0 {
		return ""
	}
	sort.Strings(letters)
	return " (-" + strings.Join(letters, "") + ")"
}
