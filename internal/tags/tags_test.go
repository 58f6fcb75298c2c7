package tags

import (
	"reflect"
	"testing"

	"retool/internal/catalog"
	"retool/internal/regions"
)

func TestExtractName(t *testing.T) {
	x := NewNameExtractor(nil)

	tests := []struct {
		name string
		want TagSet
	}{
		{
			name: "Game X (USA)",
			want: TagSet{Base: "Game X", Regions: []string{"USA"}, Languages: []string{"En"}, LanguagesImplied: true},
		},
		{
			name: "Game X (USA, Europe) (En,Fr,De)",
			want: TagSet{Base: "Game X", Regions: []string{"USA", "Europe"}, Languages: []string{"En", "Fr", "De"}},
		},
		{
			name: "Game Y (Japan) (Ja)",
			want: TagSet{Base: "Game Y", Regions: []string{"Japan"}, Languages: []string{"Ja"}},
		},
		{
			name: "Game Z (Switzerland)",
			want: TagSet{Base: "Game Z", Regions: []string{"Switzerland"}, Languages: []string{"De", "Fr", "It"}, LanguagesImplied: true},
		},
		{
			name: "Saga (Europe) (En+Fr) (Disc 2) (Rev A)",
			want: TagSet{Base: "Saga", Regions: []string{"Europe"}, Languages: []string{"En", "Fr"}, Disc: "2", Revision: "A"},
		},
		{
			name: "Racer (Japan) (Disc 1 of 2) (v1.02)",
			want: TagSet{Base: "Racer", Regions: []string{"Japan"}, Languages: []string{"Ja"}, LanguagesImplied: true, Disc: "1", Version: "1.02"},
		},
		{
			name: "Shooter (USA) (Demo) (Beta 2)",
			want: TagSet{Base: "Shooter", Regions: []string{"USA"}, Languages: []string{"En"}, LanguagesImplied: true, Status: []Status{StatusBeta, StatusDemo}},
		},
		{
			name: "Puzzle (World) (Unl) [b]",
			want: TagSet{Base: "Puzzle", Regions: []string{"World"}, Languages: []string{"En"}, LanguagesImplied: true, Status: []Status{StatusBadDump, StatusUnlicensed}},
		},
		{
			name: "Fighter (Sega Ages) (Japan)",
			want: TagSet{Base: "Fighter (Sega Ages)", Regions: []string{"Japan"}, Languages: []string{"Ja"}, LanguagesImplied: true, Comments: []string{"(Sega Ages)"}},
		},
		{
			name: "Mystery Disc",
			want: TagSet{Base: "Mystery Disc", Regions: []string{regions.Unknown}},
		},
		{
			name: "Half Tag (USA, Atlantis)",
			want: TagSet{Base: "Half Tag (USA, Atlantis)", Regions: []string{regions.Unknown}, Comments: []string{"(USA, Atlantis)"}},
		},
		{
			name: "Both (Beta, Proto) (Korea)",
			want: TagSet{Base: "Both", Regions: []string{"Korea"}, Languages: []string{"Ko"}, LanguagesImplied: true, Status: []Status{StatusBeta, StatusProto}},
		},
		{
			name: "",
			want: TagSet{Regions: []string{regions.Unknown}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.ExtractName(tt.name)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("ExtractName(%q)\n got  %+v\n want %+v", tt.name, got, tt.want)
			}
		})
	}
}

func TestExtractUsesExplicitRegion(t *testing.T) {
	x := NewNameExtractor(nil)
	ts := x.Extract(catalog.Entry{Name: "Untagged Game", Region: "Germany"})
	if !reflect.DeepEqual(ts.Regions, []string{"Germany"}) {
		t.Fatalf("regions = %v", ts.Regions)
	}
	if !reflect.DeepEqual(ts.Languages, []string{"De"}) || !ts.LanguagesImplied {
		t.Fatalf("languages = %v implied=%v", ts.Languages, ts.LanguagesImplied)
	}

	tagged := x.Extract(catalog.Entry{Name: "Tagged (Japan)", Region: "Germany"})
	if tagged.PrimaryRegion() != "Japan" {
		t.Fatalf("name tag must win over explicit region, got %v", tagged.Regions)
	}

	bogus := x.Extract(catalog.Entry{Name: "Untagged", Region: "Atlantis"})
	if !bogus.IsUnknownRegion() {
		t.Fatalf("unknown explicit region must be ignored, got %v", bogus.Regions)
	}
}

func TestExtractionIsIdempotent(t *testing.T) {
	x := NewNameExtractor(nil)
	names := []string{
		"Game X (USA)",
		"Game X (USA, Europe) (En,Fr,De)",
		"Saga (Europe) (En+Fr) (Disc 2) (Rev A)",
		"Racer (Japan) (Disc 1 of 2) (Version 2.0)",
		"Shooter (USA) (Demo 3) (Beta)",
		"Puzzle (World) (Unl) [b2]",
		"Fighter (Sega Ages) (Japan) (Alt 2)",
		"Mystery Disc",
		"Pirated (Asia) (Pirate)",
	}
	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			first := x.ExtractName(name)
			again := x.ExtractName(Rebuild(first))
			if !reflect.DeepEqual(first, again) {
				t.Fatalf("re-extracting %q changed the tag set\n first %+v\n again %+v", Rebuild(first), first, again)
			}
		})
	}
}

func TestExtractWithSynonymTable(t *testing.T) {
	x := NewNameExtractor(regions.Default().WithSynonym("UK", "United Kingdom"))
	ts := x.ExtractName("Game (United Kingdom)")
	if ts.PrimaryRegion() != "United Kingdom" {
		t.Fatalf("expected synonym region, got %v", ts.Regions)
	}
	if !ts.HasLanguage("En") {
		t.Fatalf("synonym should imply English, got %v", ts.Languages)
	}
}

func TestStatusKey(t *testing.T) {
	ts := NewNameExtractor(nil).ExtractName("G (USA) (Proto) (Demo)")
	if got := ts.StatusKey(); got != "demo,proto" {
		t.Fatalf("StatusKey = %q", got)
	}
}
