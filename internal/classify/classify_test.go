package classify

import (
	"context"
	"reflect"
	"testing"

	"retool/internal/catalog"
	"retool/internal/tags"
)

func entry(name, crc string) catalog.Entry {
	e := catalog.Entry{Name: name, Description: name}
	if crc != "" {
		e.Roms = []catalog.Rom{{Name: name + ".bin", Size: 1, CRC: crc}}
	}
	return e
}

func prepare(entries ...catalog.Entry) []Record {
	return Prepare(entries, tags.NewNameExtractor(nil))
}

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Name())
	}
	return out
}

func TestClassifyKeepsClaimingRecords(t *testing.T) {
	records := prepare(
		entry("Game X (USA)", "aa"),
		entry("Game X (Europe)", "bb"),
		entry("Game W (USA, Europe)", "cc"),
		entry("Mystery", "dd"),
	)
	c := New(Options{})

	if got, want := names(c.Classify("USA", records).Records), []string{"Game X (USA)", "Game W (USA, Europe)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("USA = %v, want %v", got, want)
	}
	if got, want := names(c.Classify("Unknown", records).Records), []string{"Mystery"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Unknown = %v, want %v", got, want)
	}
}

func TestClassifyLanguageFilter(t *testing.T) {
	records := prepare(
		entry("Game Y (Japan) (Ja)", "aa"),
		entry("Game Z (Japan) (En,Ja)", "bb"),
		entry("Game Q (Japan)", "cc"),
	)
	res := New(Options{Languages: []string{"En"}}).Classify("Japan", records)

	if got, want := names(res.Records), []string{"Game Z (Japan) (En,Ja)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("kept = %v, want %v", got, want)
	}
	if got, want := res.Removed.Names(ReasonLanguage), []string{"Game Q (Japan)", "Game Y (Japan) (Ja)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("removed = %v, want %v", got, want)
	}
}

func TestClassifyEmptyAllowListKeepsEverything(t *testing.T) {
	records := prepare(entry("Game Y (Japan) (Ja)", "aa"))
	res := New(Options{}).Classify("Japan", records)
	if len(res.Records) != 1 || !res.Removed.Empty() {
		t.Fatalf("res = %+v", res)
	}
}

func TestClassifyOptionFilters(t *testing.T) {
	records := prepare(
		entry("Tool (USA) (Program)", "a1"),
		entry("Game (USA) (Demo)", "a2"),
		entry("Game (USA) (Beta)", "a3"),
		entry("Game (USA) (Unl)", "a4"),
		entry("Game (USA) (Pirate)", "a5"),
		entry("Game (USA) [b]", "a6"),
		entry("Game (USA)", "a7"),
	)
	res := New(Options{
		NoApplications:  true,
		NoDemos:         true,
		NoPreproduction: true,
		NoUnlicensed:    true,
		NoPirate:        true,
		NoBadDumps:      true,
	}).Classify("USA", records)

	if got := names(res.Records); !reflect.DeepEqual(got, []string{"Game (USA)"}) {
		t.Fatalf("kept = %v", got)
	}
	want := []string{ReasonApplications, ReasonBadDumps, ReasonDemos, ReasonPirate, ReasonPreproduction, ReasonUnlicensed}
	if got := res.Removed.Reasons(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reasons = %v, want %v", got, want)
	}
}

func TestClassifyDropsDuplicateFilings(t *testing.T) {
	records := prepare(
		entry("Game X (USA)", "abcd"),
		entry("Game X (USA) (Alt)", "ABCD"),
		entry("No Checksum (USA)", ""),
		entry("No Checksum 2 (USA)", ""),
	)
	res := New(Options{}).Classify("USA", records)

	if got, want := names(res.Records), []string{"Game X (USA)", "No Checksum (USA)", "No Checksum 2 (USA)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("kept = %v, want %v", got, want)
	}
	if !reflect.DeepEqual(res.DuplicateNames, []string{"Game X (USA) (Alt)"}) {
		t.Fatalf("duplicates = %v", res.DuplicateNames)
	}
	if !res.Removed.Empty() {
		t.Fatal("duplicates must not be recorded as removals")
	}
}

func TestClassifyFindsCompilations(t *testing.T) {
	records := prepare(
		entry("Compilation Z (USA)", "aa"),
		entry("Game X (USA)", "bb"),
	)
	res := New(Options{Compilations: []string{"Compilation Z"}}).Classify("USA", records)

	want := []CompilationHit{{Declared: "Compilation Z", Name: "Compilation Z (USA)"}}
	if !reflect.DeepEqual(res.Compilations, want) {
		t.Fatalf("compilations = %+v, want %+v", res.Compilations, want)
	}
}

func TestClassifyAllIndependentOfWorkers(t *testing.T) {
	records := prepare(
		entry("Game X (USA)", "01"),
		entry("Game X (Europe)", "02"),
		entry("Game X (Japan)", "03"),
		entry("Game W (USA, Europe)", "04"),
		entry("Mystery", "05"),
	)
	order := []string{"USA", "Europe", "Japan", "Unknown"}
	c := New(Options{})

	serial, err := c.ClassifyAll(context.Background(), order, records, 1)
	if err != nil {
		t.Fatalf("ClassifyAll: %v", err)
	}
	parallel, err := c.ClassifyAll(context.Background(), order, records, 4)
	if err != nil {
		t.Fatalf("ClassifyAll: %v", err)
	}
	for i := range order {
		if serial[i].Region != order[i] {
			t.Fatalf("result %d region = %s, want %s", i, serial[i].Region, order[i])
		}
		if !reflect.DeepEqual(names(serial[i].Records), names(parallel[i].Records)) {
			t.Fatalf("%s differs: %v vs %v", order[i], names(serial[i].Records), names(parallel[i].Records))
		}
	}
}

func TestClassifyAllCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(Options{}).ClassifyAll(ctx, []string{"USA"}, nil, 1); err == nil {
		t.Fatal("expected cancellation error")
	}
}
