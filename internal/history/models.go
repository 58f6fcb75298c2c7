package history

import "time"

// Status is the outcome of one catalog run.
type Status string

// Run outcomes.
const (
	StatusOK       Status = "ok"
	StatusNoTitles Status = "no_titles"
	StatusFailed   Status = "failed"
)

// Run is one processed catalog.
type Run struct {
	ID           string
	BatchID      string
	Catalog      string
	SourcePath   string
	OutputPath   string
	Options      string
	Status       Status
	ErrorMessage string
	Total        int
	Removed      int
	Duplicates   int
	Parents      int
	Clones       int
	Compilations int
	FinalCount   int
	Warnings     int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
