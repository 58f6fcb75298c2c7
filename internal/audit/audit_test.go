package audit

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestTrailNamesNaturalOrder(t *testing.T) {
	trail := NewTrail()
	trail.Add("no_demos", "Game 10 (USA) (Demo)")
	trail.Add("no_demos", "Game 2 (USA) (Demo)")
	trail.Add("no_demos", "Game 2 (USA) (Demo)")
	trail.Add("language_filter", "Game Y (Japan)")

	if got, want := trail.Reasons(), []string{"language_filter", "no_demos"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Reasons = %v, want %v", got, want)
	}
	if got, want := trail.Names("no_demos"), []string{"Game 2 (USA) (Demo)", "Game 10 (USA) (Demo)"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names = %v, want %v", got, want)
	}
	if trail.Len() != 3 {
		t.Fatalf("Len = %d, want 3", trail.Len())
	}
}

func TestTrailMergeAndForget(t *testing.T) {
	a := NewTrail()
	a.Add("no_demos", "Demo A")
	b := NewTrail()
	b.Add("no_demos", "Demo B")
	b.Add("no_pirate", "Pirate C")
	a.Merge(b)
	a.Merge(nil)

	if !a.Contains("Demo B") || !a.Contains("Pirate C") {
		t.Fatalf("merged trail missing names: %v", a.All())
	}
	a.Forget("Pirate C")
	if a.Contains("Pirate C") {
		t.Fatal("Forget left name behind")
	}
	if got := a.Reasons(); !reflect.DeepEqual(got, []string{"no_demos"}) {
		t.Fatalf("empty reason not dropped: %v", got)
	}
}

func TestWriteKeepRemove(t *testing.T) {
	var buf bytes.Buffer
	families := []Family{
		{Parent: "Game A (USA)"},
		{Parent: "Game X (USA)", Clones: []string{"Game X (Europe)", "Game X (Japan)"}},
	}
	if err := WriteKeepRemove(&buf, families); err != nil {
		t.Fatalf("WriteKeepRemove: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"# STANDALONES\n==============\n+ Game A (USA)\n",
		"# PARENTS & CLONES\n===================\n+ Game X (USA)\n\t- Game X (Europe)\n\t- Game X (Japan)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteKeepRemoveWithoutClones(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteKeepRemove(&buf, []Family{{Parent: "Solo (USA)"}}); err != nil {
		t.Fatalf("WriteKeepRemove: %v", err)
	}
	if strings.Contains(buf.String(), "PARENTS & CLONES") {
		t.Fatalf("unexpected clone section:\n%s", buf.String())
	}
}

func TestWriteUserRemove(t *testing.T) {
	trail := NewTrail()
	trail.Add("language_filter", "Game Y (Japan)")
	var buf bytes.Buffer
	if err := WriteUserRemove(&buf, trail); err != nil {
		t.Fatalf("WriteUserRemove: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"KEYS\n====\n* LANGUAGE FILTER\n",
		"# LANGUAGE FILTER\n=================\n- Game Y (Japan)\n",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteListFiles(t *testing.T) {
	dir := t.TempDir()
	datPath := filepath.Join(dir, "Sony - PlayStation (1) [1G1R].dat")

	written, err := WriteListFiles(datPath, []Family{{Parent: "Game A (USA)"}}, NewTrail())
	if err != nil {
		t.Fatalf("WriteListFiles: %v", err)
	}
	if len(written) != 1 || written[0] != KeepRemoveListPath(datPath) {
		t.Fatalf("written = %v", written)
	}

	trail := NewTrail()
	trail.Add("no_demos", "Demo (USA)")
	written, err = WriteListFiles(datPath, nil, trail)
	if err != nil {
		t.Fatalf("WriteListFiles: %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want both lists", written)
	}
	data, err := os.ReadFile(UserRemoveListPath(datPath))
	if err != nil {
		t.Fatalf("read user list: %v", err)
	}
	if !strings.Contains(string(data), "- Demo (USA)") {
		t.Fatalf("user list missing removal:\n%s", data)
	}
}

func TestWarningString(t *testing.T) {
	w := Warning{Kind: KindMissingCompilation, Subject: "Compilation Z"}
	if got := w.String(); got != "missing_compilation: Compilation Z" {
		t.Fatalf("String = %q", got)
	}
	w.Detail = "not in catalog"
	if got := w.String(); got != "missing_compilation: Compilation Z (not in catalog)" {
		t.Fatalf("String = %q", got)
	}
}
