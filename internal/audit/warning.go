package audit

import "fmt"

// WarningKind classifies a non-fatal data-quality signal.
type WarningKind string

// Warning kinds.
const (
	KindMissingCompilation WarningKind = "missing_compilation"
	KindOverrideConflict   WarningKind = "override_conflict"
	KindOverrideSkipped    WarningKind = "override_skipped"
)

// Warning is a non-fatal problem found while processing a catalog.
type Warning struct {
	Kind    WarningKind
	Subject string
	Detail  string
}

func (w Warning) String() string {
	if w.Detail == "" {
		return fmt.Sprintf("%s: %s", w.Kind, w.Subject)
	}
	return fmt.Sprintf("%s: %s (%s)", w.Kind, w.Subject, w.Detail)
}
