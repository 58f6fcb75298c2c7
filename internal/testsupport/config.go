package testsupport

import (
	"path/filepath"
	"testing"

	"retool/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a finalized config whose paths live in a fresh temp
// directory. Logging is quiet and history is stored per test.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.CloneListsDir = filepath.Join(base, "clonelists")
	cfgVal.Paths.HistoryPath = filepath.Join(base, "history.db")
	cfgVal.Logging.Level = "error"

	builder := &configBuilder{t: t, baseDir: base, cfg: &cfgVal}
	for _, opt := range opts {
		opt(builder)
	}
	if err := builder.cfg.Finalize(); err != nil {
		t.Fatalf("finalize test config: %v", err)
	}
	return builder.cfg
}

// WithRegionOrder sets the region priority order.
func WithRegionOrder(order ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Regions.Order = append([]string(nil), order...)
	}
}

// WithLanguages enables language filtering with the given names or codes.
func WithLanguages(languages ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Languages.Filter = append([]string(nil), languages...)
		b.cfg.Options.FilterLanguages = true
	}
}

// WithOutputDir points output dats at a subdirectory of the test base.
func WithOutputDir(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Paths.OutputDir = filepath.Join(b.baseDir, name)
	}
}

// BaseDir returns the temp directory backing cfg's paths.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.HistoryPath)
}

// WriteConfig saves cfg next to its paths and returns the file path.
func WriteConfig(t testing.TB, cfg *config.Config) string {
	t.Helper()
	path := filepath.Join(BaseDir(cfg), "config.toml")
	if err := config.Save(path, *cfg); err != nil {
		t.Fatalf("save test config: %v", err)
	}
	return path
}
