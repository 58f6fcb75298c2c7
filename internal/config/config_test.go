package config_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"retool/internal/config"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved != filepath.Join(tempHome, ".config", "retool", "config.toml") {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if cfg.Paths.CloneListsDir != filepath.Join(tempHome, ".config", "retool", "clonelists") {
		t.Fatalf("unexpected clone lists dir: %q", cfg.Paths.CloneListsDir)
	}
	if cfg.Paths.HistoryPath != filepath.Join(tempHome, ".local", "share", "retool", "history.db") {
		t.Fatalf("unexpected history path: %q", cfg.Paths.HistoryPath)
	}
	if cfg.Paths.OutputDir != "" {
		t.Fatalf("expected empty output dir, got %q", cfg.Paths.OutputDir)
	}
	if cfg.Processing.Workers != 4 || !cfg.Processing.RecordHistory {
		t.Fatalf("unexpected processing defaults: %+v", cfg.Processing)
	}
	if cfg.PriorityOrder() != nil {
		t.Fatalf("expected no configured order, got %v", cfg.PriorityOrder())
	}
	if cfg.LanguageAllowList() != nil {
		t.Fatal("language filtering should be off by default")
	}
	if cfg.LanguagePriority() != nil {
		t.Fatalf("expected no language priority, got %v", cfg.LanguagePriority())
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "retool.toml")
	content := `
[regions]
order = ["USA", "UK", "Europe", "USA"]

[languages]
filter = ["Japanese", "fr"]

[options]
filter_languages = true
no_demos = true

[processing]
workers = 2
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved=%q exists=%v", resolved, exists)
	}
	if got, want := cfg.PriorityOrder(), []string{"USA", "UK", "United Kingdom", "Europe"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("PriorityOrder = %v, want %v", got, want)
	}
	if got, want := cfg.LanguageAllowList(), []string{"Ja", "Fr", "En"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("LanguageAllowList = %v, want %v", got, want)
	}
	if got, want := cfg.LanguagePriority(), []string{"Ja", "Fr", "En"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("LanguagePriority = %v, want %v", got, want)
	}
	if !cfg.Options.NoDemos || cfg.Processing.Workers != 2 {
		t.Fatalf("unexpected options: %+v %+v", cfg.Options, cfg.Processing)
	}
	if !cfg.RegionTable().IsRegion("United Kingdom") {
		t.Fatal("synonym missing from region table")
	}
}

func TestEnglishExcluded(t *testing.T) {
	cfg := config.Default()
	cfg.Languages.Filter = []string{"Japanese"}
	cfg.Languages.Excluded = []string{"English"}
	cfg.Options.FilterLanguages = true
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := cfg.LanguageAllowList(); !reflect.DeepEqual(got, []string{"Ja"}) {
		t.Fatalf("LanguageAllowList = %v", got)
	}
}

func TestLanguagePriorityWithoutFilter(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	cfg.Languages.Filter = []string{"French", "German"}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if cfg.LanguageAllowList() != nil {
		t.Fatal("filter must stay off without filter_languages")
	}
	if got := cfg.LanguagePriority(); len(got) < 2 || got[0] != "Fr" || got[1] != "De" {
		t.Fatalf("LanguagePriority = %v", got)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{"unknown region", func(c *config.Config) { c.Regions.Order = []string{"Atlantis"} }, "regions.order"},
		{"unknown synonym region", func(c *config.Config) { c.Regions.Synonyms = map[string]string{"Atlantis": "Mu"} }, "regions.synonyms"},
		{"unknown language", func(c *config.Config) { c.Languages.Filter = []string{"Klingon"} }, "languages.filter"},
		{"workers", func(c *config.Config) { c.Processing.Workers = -1 }, "processing.workers"},
		{"log format", func(c *config.Config) { c.Logging.Format = "xml" }, "logging.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Finalize()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Finalize error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSampleConfigIsValid(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var decoded map[string]any
	if err := toml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("sample is not valid TOML: %v", err)
	}
	cfg, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	order := cfg.PriorityOrder()
	if order[0] != "USA" || order[len(order)-1] != "Unknown" {
		t.Fatalf("unexpected sample order %v", order)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg := config.Default()
	cfg.Regions.Order = []string{"Japan", "USA"}
	if err := config.Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, _, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(loaded.Regions.Order, []string{"Japan", "USA"}) {
		t.Fatalf("order = %v", loaded.Regions.Order)
	}
}

func TestParseLegacy(t *testing.T) {
	data := []byte(`---
# If the -l option is used, only include titles with the following languages.
- language filter:
  - English
  # - Japanese
  - French

# The region order Retool follows.
- region order:
  - USA
  - Europe
  - Japan
`)
	settings, err := config.ParseLegacy(data)
	if err != nil {
		t.Fatalf("ParseLegacy: %v", err)
	}
	if !reflect.DeepEqual(settings.Languages, []string{"English", "French"}) {
		t.Fatalf("languages = %v", settings.Languages)
	}
	if !reflect.DeepEqual(settings.RegionOrder, []string{"USA", "Europe", "Japan"}) {
		t.Fatalf("region order = %v", settings.RegionOrder)
	}

	t.Setenv("HOME", t.TempDir())
	cfg := config.Default()
	cfg.ApplyLegacy(settings)
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if got := cfg.LanguageAllowList(); !reflect.DeepEqual(got, []string{"En", "Fr"}) {
		t.Fatalf("allow list = %v", got)
	}
}
