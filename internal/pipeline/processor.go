package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"retool/internal/audit"
	"retool/internal/catalog"
	"retool/internal/classify"
	"retool/internal/clonelist"
	"retool/internal/grouping"
	"retool/internal/logging"
	"retool/internal/regions"
	"retool/internal/selection"
	"retool/internal/tags"
)

// Removal reasons recorded by the processor itself.
const (
	ReasonRegion       = "region_filter"
	ReasonCompilations = "no_compilations"
)

// ErrNoTitles reports a catalog run that left no parent.
var ErrNoTitles = errors.New("no titles left after filtering")

// Options fixes the behaviour of a processor for a whole run.
type Options struct {
	// Table is the region table with any synonyms spliced in. Nil means the
	// built-in table.
	Table *regions.Table
	// Order is the region priority order. Nil derives one per catalog from
	// region frequency.
	Order []string
	// Languages is the language allow-list in priority order. Empty
	// disables language filtering.
	Languages []string
	// LanguagePriority ranks languages when choosing between releases of
	// the same region. Nil falls back to Languages.
	LanguagePriority []string

	NoApplications  bool
	NoDemos         bool
	NoPreproduction bool
	NoUnlicensed    bool
	NoPirate        bool
	NoBadDumps      bool
	NoCompilations  bool

	// Legacy keeps clones in the output with a cloneof attribute.
	Legacy          bool
	PreferRevisions bool
	// Workers bounds the classification fan-out. Values below one run
	// passes sequentially.
	Workers int
}

// Result is the frozen outcome of processing one catalog.
type Result struct {
	Header catalog.Header
	// Order is the region priority order used for selection.
	Order []string
	Set   *grouping.Set
	Stats Stats
	// Removed maps removal reasons to the names they removed. Names that
	// survive in any region are not listed.
	Removed *audit.Trail
	// Duplicates lists the names dropped as second filings.
	Duplicates   []string
	Compilations []string
	Warnings     []audit.Warning
	Legacy       bool
}

// Processor runs the core stages over a catalog.
type Processor struct {
	opts      Options
	table     *regions.Table
	extractor tags.Extractor
	logger    *slog.Logger
}

// NewProcessor returns a processor for opts.
func NewProcessor(opts Options, logger *slog.Logger) *Processor {
	table := opts.Table
	if table == nil {
		table = regions.Default()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Processor{
		opts:      opts,
		table:     table,
		extractor: tags.NewNameExtractor(table),
		logger:    logging.NewComponentLogger(logger, "pipeline"),
	}
}

// Process reduces one catalog. list holds the catalog's overrides and may be
// empty. When no parent survives the result is returned with ErrNoTitles.
func (p *Processor) Process(ctx context.Context, cat catalog.Catalog, list clonelist.List) (*Result, error) {
	logger := p.logger.With(logging.String(logging.FieldCatalog, cat.Header.Name))
	res := &Result{
		Header:  cat.Header,
		Removed: audit.NewTrail(),
		Legacy:  p.opts.Legacy,
	}
	res.Stats.Total = len(cat.Entries)

	entries, sameName := uniqueEntries(cat.Entries)
	res.Duplicates = append(res.Duplicates, sameName...)
	records := classify.Prepare(entries, p.extractor)

	res.Order = p.priorityOrder(records)
	classifier := classify.New(p.classifyOptions(list))
	results, err := classifier.ClassifyAll(ctx, regions.ProcessingOrder(res.Order), records, p.opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("classify %s: %w", cat.Header.Name, err)
	}

	set := grouping.Build(results)
	seenDup := make(map[string]struct{})
	var hits []classify.CompilationHit
	for _, r := range results {
		res.Removed.Merge(r.Removed)
		for _, name := range r.DuplicateNames {
			if _, ok := seenDup[name]; ok || set.Contains(name) {
				continue
			}
			seenDup[name] = struct{}{}
			res.Duplicates = append(res.Duplicates, name)
		}
		hits = append(hits, r.Compilations...)
	}
	for _, rec := range records {
		if _, dup := seenDup[rec.Name()]; dup || set.Contains(rec.Name()) || res.Removed.Contains(rec.Name()) {
			continue
		}
		res.Removed.Add(ReasonRegion, rec.Name())
	}

	if p.opts.NoCompilations {
		p.handleCompilations(res, set, list, hits)
	}

	selection.New(selection.Options{
		Order:           res.Order,
		Languages:       p.languagePriority(),
		PreferRevisions: p.opts.PreferRevisions,
	}).Apply(set)

	if !list.Empty() {
		merged := clonelist.Merge(set, list)
		res.Warnings = append(res.Warnings, merged.Warnings...)
		logger.Debug("clone list merged", logging.Int("applied", merged.Applied), logging.Int("warnings", len(merged.Warnings)))
	}

	res.Set = set
	p.reconcile(res)

	for _, w := range res.Warnings {
		logging.WarnWithContext(logger, "catalog warning", string(w.Kind),
			logging.String("subject", w.Subject),
			logging.String("detail", w.Detail),
		)
	}
	logger.Info("catalog processed",
		logging.Int("total", res.Stats.Total),
		logging.Int("removed", res.Stats.Removed),
		logging.Int("duplicates", res.Stats.Duplicates),
		logging.Int("parents", res.Stats.Parents),
		logging.Int("clones", res.Stats.Clones),
		logging.Int("compilations", res.Stats.Compilations),
	)
	if !res.Stats.Balanced() {
		logger.Error("stats do not balance", logging.String("stats", res.Stats.String()))
	}
	if res.Stats.Parents == 0 {
		return res, ErrNoTitles
	}
	return res, nil
}

func (p *Processor) classifyOptions(list clonelist.List) classify.Options {
	opts := classify.Options{
		NoApplications:  p.opts.NoApplications,
		NoDemos:         p.opts.NoDemos,
		NoPreproduction: p.opts.NoPreproduction,
		NoUnlicensed:    p.opts.NoUnlicensed,
		NoPirate:        p.opts.NoPirate,
		NoBadDumps:      p.opts.NoBadDumps,
		Languages:       p.opts.Languages,
	}
	if p.opts.NoCompilations {
		opts.Compilations = list.CompilationNames()
	}
	return opts
}

func (p *Processor) priorityOrder(records []classify.Record) []string {
	if len(p.opts.Order) > 0 {
		return regions.UnknownLast(p.opts.Order)
	}
	claims := make([][]string, len(records))
	for i, rec := range records {
		claims[i] = rec.Tags.Regions
	}
	return p.table.FrequencyOrder(claims)
}

func (p *Processor) languagePriority() []string {
	if len(p.opts.LanguagePriority) > 0 {
		return p.opts.LanguagePriority
	}
	return p.opts.Languages
}

// handleCompilations reports declared compilations that were never observed
// and removes found compilations whose member titles are all present.
func (p *Processor) handleCompilations(res *Result, set *grouping.Set, list clonelist.List, hits []classify.CompilationHit) {
	found := make(map[string][]string)
	for _, hit := range hits {
		if !set.Contains(hit.Name) {
			continue
		}
		if !slices.Contains(found[hit.Declared], hit.Name) {
			found[hit.Declared] = append(found[hit.Declared], hit.Name)
		}
	}
	for _, declared := range list.CompilationNames() {
		names, ok := found[declared]
		if !ok {
			res.Warnings = append(res.Warnings, audit.Warning{
				Kind:    audit.KindMissingCompilation,
				Subject: declared,
				Detail:  "declared compilation not found in catalog",
			})
			continue
		}
		res.Compilations = append(res.Compilations, names...)
		if !membersPresent(set, list.Compilations[declared]) {
			continue
		}
		for _, name := range names {
			if set.Remove(name) != nil {
				res.Removed.Add(ReasonCompilations, name)
			}
		}
	}
}

func membersPresent(set *grouping.Set, members []string) bool {
	if len(members) == 0 {
		return false
	}
	for _, name := range members {
		if !set.Contains(name) && set.GroupForBase(name) == nil {
			return false
		}
	}
	return true
}

// reconcile drops survivors from the removal trail and fills in the counters.
func (p *Processor) reconcile(res *Result) {
	for _, name := range res.Removed.All() {
		if res.Set.Contains(name) {
			res.Removed.Forget(name)
		}
	}
	parents, clones := res.Set.Counts()
	res.Stats.Removed = res.Removed.Len()
	res.Stats.Duplicates = len(res.Duplicates)
	res.Stats.Parents = parents
	res.Stats.Clones = clones
	res.Stats.Compilations = len(res.Compilations)
	res.Stats.FinalTitleCount = parents
	if p.opts.Legacy {
		res.Stats.FinalTitleCount = parents + clones
	}
}

// uniqueEntries keeps the first entry of every name. Later entries with a
// name already seen are returned as duplicates.
func uniqueEntries(entries []catalog.Entry) ([]catalog.Entry, []string) {
	seen := make(map[string]struct{}, len(entries))
	out := make([]catalog.Entry, 0, len(entries))
	var dups []string
	for _, e := range entries {
		if _, ok := seen[e.Name]; ok {
			dups = append(dups, e.Name)
			continue
		}
		seen[e.Name] = struct{}{}
		out = append(out, e)
	}
	return out, dups
}
