package history_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"retool/internal/history"
)

func openTestStore(t *testing.T) (*history.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "history.db")
	store, err := history.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store, path
}

func TestRecordAndList(t *testing.T) {
	store, _ := openTestStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, history.Run{
		Catalog:    "Nintendo - Game Boy",
		SourcePath: "/dats/gb.dat",
		OutputPath: "/out/gb 1G1R.dat",
		Options:    "-d",
		Total:      10, Removed: 2, Duplicates: 1, Parents: 5, Clones: 2, FinalCount: 5,
		StartedAt:  base,
		FinishedAt: base.Add(1500 * time.Millisecond),
	})
	if err != nil {
		t.Fatalf("Record: %v", err)
	}
	if first.ID == "" || first.BatchID != first.ID || first.Status != history.StatusOK {
		t.Fatalf("defaults not applied: %+v", first)
	}

	if _, err := store.Record(ctx, history.Run{
		BatchID:      first.BatchID,
		Catalog:      "Sega - Mega Drive",
		SourcePath:   "/dats/md.dat",
		Status:       history.StatusNoTitles,
		ErrorMessage: "no titles left",
		StartedAt:    base.Add(time.Minute),
		FinishedAt:   base.Add(time.Minute),
	}); err != nil {
		t.Fatalf("Record second: %v", err)
	}

	runs, err := store.List(ctx, 0)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d, want 2", len(runs))
	}
	if runs[0].Catalog != "Sega - Mega Drive" || runs[0].Status != history.StatusNoTitles || runs[0].OutputPath != "" {
		t.Fatalf("newest run = %+v", runs[0])
	}
	got := runs[1]
	if got.Total != 10 || got.Parents != 5 || got.Options != "-d" || got.Duration() != 1500*time.Millisecond {
		t.Fatalf("stored run = %+v", got)
	}
	if !got.StartedAt.Equal(base) {
		t.Fatalf("started_at = %v", got.StartedAt)
	}

	limited, err := store.List(ctx, 1)
	if err != nil || len(limited) != 1 {
		t.Fatalf("limited list = %d, %v", len(limited), err)
	}

	fetched, found, err := store.Get(ctx, first.ID)
	if err != nil || !found || fetched.Catalog != "Nintendo - Game Boy" {
		t.Fatalf("Get = %+v, %v, %v", fetched, found, err)
	}
	if _, found, err := store.Get(ctx, "missing"); found || err != nil {
		t.Fatalf("Get missing = %v, %v", found, err)
	}
}

func TestReopenKeepsRuns(t *testing.T) {
	store, path := openTestStore(t)
	ctx := context.Background()
	if _, err := store.Record(ctx, history.Run{Catalog: "c", SourcePath: "s", StartedAt: time.Now(), FinishedAt: time.Now()}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	reopened, err := history.Open(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	runs, err := reopened.List(ctx, 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("runs after reopen = %d, %v", len(runs), err)
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	_ = db.Close()

	if _, err := history.Open(context.Background(), path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("Open error = %v, want ErrSchemaMismatch", err)
	}
}

func TestOpenStampsVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	_ = store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	defer db.Close()
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read version: %v", err)
	}
	if version != 1 {
		t.Fatalf("user_version = %d, want 1", version)
	}
}

func TestNilStoreClose(t *testing.T) {
	var store *history.Store
	if err := store.Close(); err != nil {
		t.Fatalf("Close on nil store: %v", err)
	}
}
