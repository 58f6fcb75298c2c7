package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"retool/internal/clonelist"
	"retool/internal/history"
	"retool/internal/logging"
	"retool/internal/testsupport"
)

func fixedRunner(procOpts Options, opts RunnerOptions) *Runner {
	r := NewRunner(procOpts, opts, logging.NewNop())
	at := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	r.now = func() time.Time { return at }
	return r
}

func TestRunSingleFile(t *testing.T) {
	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "out")
	path := testsupport.WriteDat(t, inDir, "gb.dat", testsupport.GameBoyDat)

	store := testsupport.MustOpenHistory(t, testsupport.NewConfig(t))

	r := fixedRunner(Options{Order: []string{"USA", "Europe", "Japan"}, NoDemos: true}, RunnerOptions{
		OutputDir:  outDir,
		KeepRemove: true,
		History:    store,
	})
	outcomes, err := r.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 1 {
		t.Fatalf("outcomes = %d", len(outcomes))
	}
	got := outcomes[0]
	wantName := "Nintendo - Game Boy (1) (20240101) [1G1R] (-dy) (retool 2024-06-01 10-30-00).dat"
	if filepath.Base(got.Output) != wantName {
		t.Fatalf("output = %q, want %q", filepath.Base(got.Output), wantName)
	}
	data, err := os.ReadFile(got.Output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), `<game name="Game X (USA)">`) || strings.Contains(string(data), "Game X (Europe)") {
		t.Fatalf("unexpected output:\n%s", data)
	}
	if len(got.ListFiles) != 2 {
		t.Fatalf("list files = %v", got.ListFiles)
	}
	if got.Stats.Removed != 1 || got.Stats.Clones != 1 {
		t.Fatalf("stats = %s", got.Stats)
	}
	if _, err := os.Stat(filepath.Join(outDir, lockFileName)); !os.IsNotExist(err) {
		t.Fatalf("lock file should be removed, stat err = %v", err)
	}

	runs, err := store.List(context.Background(), 5)
	if err != nil || len(runs) != 1 {
		t.Fatalf("history = %d, %v", len(runs), err)
	}
	if runs[0].Catalog != "Nintendo - Game Boy" || runs[0].Options != "(-dy)" || runs[0].FinalCount != 1 {
		t.Fatalf("recorded run = %+v", runs[0])
	}
}

func TestRunFolderSkipsFailures(t *testing.T) {
	inDir := t.TempDir()
	testsupport.WriteDat(t, inDir, "a.dat", testsupport.GameBoyDat)
	testsupport.WriteDat(t, inDir, "b.dat", "<datafile><game name=")
	testsupport.WriteDat(t, inDir, "c.DAT", strings.ReplaceAll(testsupport.GameBoyDat, "Nintendo - Game Boy", "Sega - Game Gear"))
	testsupport.WriteDat(t, inDir, "notes.txt", "ignored")

	r := fixedRunner(Options{Order: []string{"USA", "Europe"}}, RunnerOptions{})
	outcomes, err := r.Run(context.Background(), inDir)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(outcomes) != 3 {
		t.Fatalf("outcomes = %d, want 3", len(outcomes))
	}
	if outcomes[1].Status != history.StatusFailed || outcomes[1].Err == nil {
		t.Fatalf("malformed dat outcome = %+v", outcomes[1])
	}
	for _, i := range []int{0, 2} {
		if outcomes[i].Status != history.StatusOK || outcomes[i].Output == "" {
			t.Fatalf("outcome %d = %+v", i, outcomes[i])
		}
		if filepath.Dir(outcomes[i].Output) != inDir {
			t.Fatalf("output dir = %q, want input folder", filepath.Dir(outcomes[i].Output))
		}
	}
}

func TestRunNoTitles(t *testing.T) {
	inDir := t.TempDir()
	path := testsupport.WriteDat(t, inDir, "gb.dat", testsupport.GameBoyDat)
	r := fixedRunner(Options{Order: []string{"Brazil"}}, RunnerOptions{})
	outcomes, err := r.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcomes[0].Status != history.StatusNoTitles || outcomes[0].Output != "" {
		t.Fatalf("outcome = %+v", outcomes[0])
	}
}

func TestRunUsesCloneLists(t *testing.T) {
	inDir := t.TempDir()
	listDir := t.TempDir()
	path := testsupport.WriteDat(t, inDir, "gb.dat", testsupport.GameBoyDat)
	list := `{"clones": [{"parent": "Game Y (Japan) (Demo)", "clone": "Game X (USA)"}]}`
	if err := os.WriteFile(filepath.Join(listDir, "Nintendo - Game Boy.json"), []byte(list), 0o644); err != nil {
		t.Fatalf("write clone list: %v", err)
	}
	r := fixedRunner(Options{Order: []string{"USA", "Europe", "Japan"}}, RunnerOptions{
		CloneLists: clonelist.NewStore(listDir, logging.NewNop()),
	})
	outcomes, err := r.Run(context.Background(), path)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if outcomes[0].Stats.Parents != 1 || outcomes[0].Stats.Clones != 2 {
		t.Fatalf("stats = %s", outcomes[0].Stats)
	}
}

func TestRunHonoursLockAndCancel(t *testing.T) {
	inDir := t.TempDir()
	path := testsupport.WriteDat(t, inDir, "gb.dat", testsupport.GameBoyDat)

	held := flock.New(filepath.Join(inDir, lockFileName))
	if ok, err := held.TryLock(); err != nil || !ok {
		t.Fatalf("hold lock: %v %v", ok, err)
	}
	r := fixedRunner(Options{}, RunnerOptions{})
	if _, err := r.Run(context.Background(), path); !errors.Is(err, ErrOutputLocked) {
		t.Fatalf("err = %v, want ErrOutputLocked", err)
	}
	_ = held.Unlock()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := r.Run(ctx, inDir)
	if !errors.Is(err, context.Canceled) || len(outcomes) != 0 {
		t.Fatalf("cancelled run = %d outcomes, %v", len(outcomes), err)
	}
}
