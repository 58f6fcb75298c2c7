package pipeline

import "fmt"

// Stats holds the counters of one catalog run.
type Stats struct {
	// Total is the number of input entries.
	Total int
	// Removed counts entries dropped by a filter option, including region
	// and compilation removals.
	Removed int
	// Duplicates counts entries dropped as second filings of a release.
	Duplicates int
	Parents    int
	Clones     int
	// Compilations is the number of declared compilations found.
	Compilations int
	// FinalTitleCount is the number of games written to the output.
	FinalTitleCount int
}

// Balanced reports whether every input entry is accounted for.
func (s Stats) Balanced() bool {
	return s.Parents+s.Clones == s.Total-s.Removed-s.Duplicates
}

func (s Stats) String() string {
	return fmt.Sprintf("total=%d removed=%d duplicates=%d parents=%d clones=%d compilations=%d final=%d",
		s.Total, s.Removed, s.Duplicates, s.Parents, s.Clones, s.Compilations, s.FinalTitleCount)
}

// Add returns the field-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		Total:           s.Total + o.Total,
		Removed:         s.Removed + o.Removed,
		Duplicates:      s.Duplicates + o.Duplicates,
		Parents:         s.Parents + o.Parents,
		Clones:          s.Clones + o.Clones,
		Compilations:    s.Compilations + o.Compilations,
		FinalTitleCount: s.FinalTitleCount + o.FinalTitleCount,
	}
}
