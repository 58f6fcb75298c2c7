package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"retool/internal/datfile"
	"retool/internal/history"
	"retool/internal/pipeline"
	"retool/internal/regions"
)

var summaryColumns = []Column{
	left("Catalog"), left("Status"),
	count("Total"), count("Removed"), count("Duplicates"), count("Parents"),
	count("Clones"), count("Compilations"), count("Final"),
}

// Summary renders one row per processed catalog. Batches of more than one
// catalog get a totals footer.
func Summary(outcomes []pipeline.Outcome, colorize bool) string {
	rows := make([][]string, 0, len(outcomes))
	var total pipeline.Stats
	for _, o := range outcomes {
		name := o.Catalog
		if name == "" {
			name = filepath.Base(o.Source)
		}
		rows = append(rows, append([]string{name, paintStatus(o.Status, colorize)}, statCells(o.Stats)...))
		total = total.Add(o.Stats)
	}
	var footer []string
	if len(outcomes) > 1 {
		footer = append([]string{fmt.Sprintf("%d catalogs", len(outcomes)), ""}, statCells(total)...)
	}
	return RenderTable(summaryColumns, rows, footer)
}

func statCells(s pipeline.Stats) []string {
	return []string{
		datfile.FormatCount(s.Total),
		datfile.FormatCount(s.Removed),
		datfile.FormatCount(s.Duplicates),
		datfile.FormatCount(s.Parents),
		datfile.FormatCount(s.Clones),
		datfile.FormatCount(s.Compilations),
		datfile.FormatCount(s.FinalTitleCount),
	}
}

// Warnings renders every warning and failure of outcomes. It returns "" when
// there is nothing to show.
func Warnings(outcomes []pipeline.Outcome) string {
	var rows [][]string
	for _, o := range outcomes {
		for _, w := range o.Warnings {
			rows = append(rows, []string{o.Catalog, string(w.Kind), w.Subject, w.Detail})
		}
		if o.Err != nil {
			rows = append(rows, []string{filepath.Base(o.Source), "error", "", o.Err.Error()})
		}
	}
	if len(rows) == 0 {
		return ""
	}
	return RenderTable([]Column{left("Catalog"), left("Kind"), left("Subject"), left("Detail")}, rows, nil)
}

// Write prints the summary, warnings and written files of a batch.
func Write(w io.Writer, outcomes []pipeline.Outcome, colorize bool) {
	fmt.Fprintln(w, Summary(outcomes, colorize))
	if warnings := Warnings(outcomes); warnings != "" {
		fmt.Fprintln(w, warnings)
	}
	for _, o := range outcomes {
		if o.Output != "" {
			fmt.Fprintf(w, "Wrote %s\n", o.Output)
		}
		for _, path := range o.ListFiles {
			fmt.Fprintf(w, "Wrote %s\n", path)
		}
	}
}

// Regions renders the region table in canonical order.
func Regions(table *regions.Table) string {
	list := table.Regions()
	rows := make([][]string, 0, len(list))
	for i, r := range list {
		langs := make([]string, 0, len(r.Languages))
		for _, code := range r.Languages {
			langs = append(langs, fmt.Sprintf("%s (%s)", regions.LanguageName(code), code))
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Name, strings.Join(langs, ", ")})
	}
	return RenderTable([]Column{count("#"), left("Region"), left("Implied languages")}, rows, nil)
}

var historyColumns = []Column{
	left("Started"), left("Catalog"), left("Status"), left("Options"),
	count("Parents"), count("Clones"), count("Final"), count("Duration"),
}

// History renders recent runs, newest first.
func History(runs []history.Run, colorize bool) string {
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			r.Catalog,
			paintStatus(r.Status, colorize),
			r.Options,
			datfile.FormatCount(r.Parents),
			datfile.FormatCount(r.Clones),
			datfile.FormatCount(r.FinalCount),
			r.Duration().Round(10 * time.Millisecond).String(),
		})
	}
	return RenderTable(historyColumns, rows, nil)
}
