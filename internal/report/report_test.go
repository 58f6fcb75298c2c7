package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"retool/internal/audit"
	"retool/internal/history"
	"retool/internal/pipeline"
	"retool/internal/regions"
)

func sampleOutcomes() []pipeline.Outcome {
	return []pipeline.Outcome{
		{
			Catalog: "Nintendo - Game Boy",
			Source:  "/dats/gb.dat",
			Output:  "/out/gb (1G1R).dat",
			Status:  history.StatusOK,
			Stats:   pipeline.Stats{Total: 1500, Removed: 10, Parents: 900, Clones: 590, FinalTitleCount: 900},
			Warnings: []audit.Warning{
				{Kind: audit.KindMissingCompilation, Subject: "Compilation Z", Detail: "declared compilation not found in catalog"},
			},
		},
		{
			Source: "/dats/broken.dat",
			Status: history.StatusFailed,
			Err:    errors.New("decode dat: unexpected EOF"),
		},
	}
}

func TestSummary(t *testing.T) {
	out := Summary(sampleOutcomes(), false)
	for _, want := range []string{"Nintendo - Game Boy", "1,500", "broken.dat", "failed", "Compilations", "2 catalogs"} {
		if !strings.Contains(out, want) {
			t.Fatalf("summary missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "COMPILATIONS") {
		t.Fatalf("headers should keep their case:\n%s", out)
	}
	if strings.Contains(out, ansiGreen) {
		t.Fatal("summary should not be colorized")
	}
	if colored := Summary(sampleOutcomes(), true); !strings.Contains(colored, ansiGreen+"ok"+ansiReset) {
		t.Fatalf("expected colorized status:\n%s", colored)
	}
}

func TestSummarySingleCatalogHasNoFooter(t *testing.T) {
	out := Summary(sampleOutcomes()[:1], false)
	if strings.Contains(out, "catalogs") {
		t.Fatalf("unexpected totals footer:\n%s", out)
	}
}

func TestWarnings(t *testing.T) {
	out := Warnings(sampleOutcomes())
	for _, want := range []string{"missing_compilation", "Compilation Z", "unexpected EOF"} {
		if !strings.Contains(out, want) {
			t.Fatalf("warnings missing %q:\n%s", want, out)
		}
	}
	if Warnings([]pipeline.Outcome{{Status: history.StatusOK}}) != "" {
		t.Fatal("expected empty warnings table")
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	Write(&buf, sampleOutcomes(), false)
	if !strings.Contains(buf.String(), "Wrote /out/gb (1G1R).dat") {
		t.Fatalf("missing written file line:\n%s", buf.String())
	}
}

func TestRegions(t *testing.T) {
	out := Regions(regions.Default())
	for _, want := range []string{"USA", "English (En)", "Unknown"} {
		if !strings.Contains(out, want) {
			t.Fatalf("regions missing %q", want)
		}
	}
}

func TestHistory(t *testing.T) {
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	out := History([]history.Run{{
		Catalog:    "Sega - Mega Drive",
		Status:     history.StatusNoTitles,
		Options:    "(-d)",
		StartedAt:  start,
		FinishedAt: start.Add(1250 * time.Millisecond),
	}}, false)
	for _, want := range []string{"Sega - Mega Drive", "no_titles", "(-d)", "1.25s"} {
		if !strings.Contains(out, want) {
			t.Fatalf("history missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTable(t *testing.T) {
	if RenderTable(nil, [][]string{{"x"}}, nil) != "" {
		t.Fatal("expected empty render")
	}
	out := RenderTable([]Column{left("Name"), count("Size")}, [][]string{{"only name"}}, []string{"Total", "10"})
	for _, want := range []string{"Name", "Size", "only name", "Total"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if ShouldColorize(&bytes.Buffer{}) {
		t.Fatal("buffers are never terminals")
	}
}
