package classify

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"retool/internal/audit"
	"retool/internal/catalog"
	"retool/internal/tags"
)

// Removal reason keys.
const (
	ReasonApplications  = "no_applications"
	ReasonDemos         = "no_demos"
	ReasonPreproduction = "no_preproduction"
	ReasonUnlicensed    = "no_unlicensed"
	ReasonPirate        = "no_pirate"
	ReasonBadDumps      = "no_bad_dumps"
	ReasonLanguage      = "language_filter"
)

// Record is a catalog entry with its derived tags.
type Record struct {
	Entry    catalog.Entry
	Tags     tags.TagSet
	Category tags.Category
	// Index is the entry's position in the catalog.
	Index int
}

// Name returns the release's full display name.
func (r Record) Name() string {
	return r.Entry.Name
}

// Prepare tags every entry once.
func Prepare(entries []catalog.Entry, extractor tags.Extractor) []Record {
	records := make([]Record, len(entries))
	for i, entry := range entries {
		records[i] = Record{
			Entry:    entry,
			Tags:     extractor.Extract(entry),
			Category: tags.Categorize(entry.Name, entry.Category),
			Index:    i,
		}
	}
	return records
}

// Options controls which records a pass keeps.
type Options struct {
	NoApplications  bool
	NoDemos         bool
	NoPreproduction bool
	NoUnlicensed    bool
	NoPirate        bool
	NoBadDumps      bool
	// Languages is the allow-list of short language codes. Empty disables
	// language filtering.
	Languages []string
	// Compilations lists declared compilation names, full or base title.
	Compilations []string
}

// CompilationHit records a declared compilation observed in a region.
type CompilationHit struct {
	Declared string
	Name     string
}

// Result is the classified set of one region.
type Result struct {
	Region         string
	Records        []Record
	Removed        *audit.Trail
	DuplicateNames []string
	Compilations   []CompilationHit
}

// Classifier runs classification passes with fixed options.
type Classifier struct {
	opts         Options
	allow        map[string]struct{}
	compilations map[string]string
}

// New returns a classifier for opts.
func New(opts Options) *Classifier {
	c := &Classifier{
		opts:         opts,
		allow:        make(map[string]struct{}, len(opts.Languages)),
		compilations: make(map[string]string, len(opts.Compilations)),
	}
	for _, l := range opts.Languages {
		c.allow[l] = struct{}{}
	}
	for _, name := range opts.Compilations {
		if key := compilationKey(name); key != "" {
			c.compilations[key] = name
		}
	}
	return c
}

func compilationKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Classify runs one pass for region. Records are kept in catalog order.
func (c *Classifier) Classify(region string, records []Record) Result {
	result := Result{Region: region, Removed: audit.NewTrail()}
	seen := make(map[string]struct{})
	found := make(map[string]struct{})
	for _, rec := range records {
		if !rec.Tags.Claims(region) {
			continue
		}
		if reason := c.optionReason(rec); reason != "" {
			result.Removed.Add(reason, rec.Name())
			continue
		}
		if !c.languageAllowed(rec) {
			result.Removed.Add(ReasonLanguage, rec.Name())
			continue
		}
		if key := rec.Entry.ReleaseKey(); key != "" {
			if _, dup := seen[key]; dup {
				result.DuplicateNames = append(result.DuplicateNames, rec.Name())
				continue
			}
			seen[key] = struct{}{}
		}
		result.Records = append(result.Records, rec)
		if declared, ok := c.compilation(rec); ok {
			if _, dup := found[rec.Name()]; !dup {
				found[rec.Name()] = struct{}{}
				result.Compilations = append(result.Compilations, CompilationHit{Declared: declared, Name: rec.Name()})
			}
		}
	}
	return result
}

func (c *Classifier) optionReason(rec Record) string {
	ts := rec.Tags
	switch {
	case c.opts.NoApplications && rec.Category == tags.CategoryApplications:
		return ReasonApplications
	case c.opts.NoDemos && (ts.HasStatus(tags.StatusDemo) || rec.Category == tags.CategoryDemos):
		return ReasonDemos
	case c.opts.NoPreproduction && (ts.HasStatus(tags.StatusBeta) || ts.HasStatus(tags.StatusProto) || rec.Category == tags.CategoryPreproduction):
		return ReasonPreproduction
	case c.opts.NoUnlicensed && ts.HasStatus(tags.StatusUnlicensed):
		return ReasonUnlicensed
	case c.opts.NoPirate && ts.HasStatus(tags.StatusPirate):
		return ReasonPirate
	case c.opts.NoBadDumps && ts.HasStatus(tags.StatusBadDump):
		return ReasonBadDumps
	}
	return ""
}

func (c *Classifier) languageAllowed(rec Record) bool {
	if len(c.allow) == 0 || len(rec.Tags.Languages) == 0 {
		return true
	}
	for _, l := range rec.Tags.Languages {
		if _, ok := c.allow[l]; ok {
			return true
		}
	}
	return false
}

func (c *Classifier) compilation(rec Record) (string, bool) {
	if len(c.compilations) == 0 {
		return "", false
	}
	if declared, ok := c.compilations[compilationKey(rec.Name())]; ok {
		return declared, true
	}
	declared, ok := c.compilations[compilationKey(rec.Tags.Base)]
	return declared, ok
}

// ClassifyAll runs one pass per region with at most workers passes in
// flight (workers <= 0 means unbounded). Results follow the order of regions.
func (c *Classifier) ClassifyAll(ctx context.Context, regionOrder []string, records []Record, workers int) ([]Result, error) {
	results := make([]Result, len(regionOrder))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, region := range regionOrder {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = c.Classify(region, records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
