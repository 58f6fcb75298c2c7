package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"retool/internal/regions"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains file and directory locations.
type Paths struct {
	// OutputDir receives output dats. Empty writes next to the input.
	OutputDir     string `toml:"output_dir"`
	CloneListsDir string `toml:"clone_lists_dir"`
	HistoryPath   string `toml:"history_path"`
}

// Regions contains the region priority order and synonyms.
type Regions struct {
	// Order is the region priority order. Empty derives it from the
	// catalog by frequency.
	Order []string `toml:"order"`
	// Synonyms maps a canonical region to an equivalent name spliced
	// directly after it.
	Synonyms map[string]string `toml:"synonyms"`
}

// Languages contains the language allow-list.
type Languages struct {
	// Filter lists allowed languages by name or code, in priority order.
	// After Load it holds short codes.
	Filter   []string `toml:"filter"`
	Excluded []string `toml:"excluded"`
}

// Options contains the output filters and modes.
type Options struct {
	NoApplications  bool `toml:"no_applications"`
	NoDemos         bool `toml:"no_demos"`
	NoPreproduction bool `toml:"no_preproduction"`
	NoUnlicensed    bool `toml:"no_unlicensed"`
	NoPirate        bool `toml:"no_pirate"`
	NoBadDumps      bool `toml:"no_bad_dumps"`
	NoCompilations  bool `toml:"no_compilations"`
	// FilterLanguages enables the language allow-list.
	FilterLanguages bool `toml:"filter_languages"`
	Legacy          bool `toml:"legacy"`
	KeepRemove      bool `toml:"keep_remove"`
}

// Selection contains parent selection tuning.
type Selection struct {
	PreferRevisions bool `toml:"prefer_revisions"`
}

// Processing contains execution settings.
type Processing struct {
	Workers       int  `toml:"workers"`
	RecordHistory bool `toml:"record_history"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
	File   string `toml:"file"`
}

// Config encapsulates all configuration values for retool.
type Config struct {
	Paths      Paths      `toml:"paths"`
	Regions    Regions    `toml:"regions"`
	Languages  Languages  `toml:"languages"`
	Options    Options    `toml:"options"`
	Selection  Selection  `toml:"selection"`
	Processing Processing `toml:"processing"`
	Logging    Logging    `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and languages resolved.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

// Finalize normalizes and validates a config built in code or adjusted by
// command-line flags.
func (c *Config) Finalize() error {
	if err := c.normalize(); err != nil {
		return err
	}
	return c.Validate()
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs(defaultProjectConfig)
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// RegionTable returns the default region table with configured synonyms spliced in.
func (c *Config) RegionTable() *regions.Table {
	table := regions.Default()
	for _, region := range c.synonymRegions() {
		table = table.WithSynonym(region, c.Regions.Synonyms[region])
	}
	return table
}

// PriorityOrder returns the configured region order with synonyms spliced
// in, or nil when the order should be derived from the catalog.
func (c *Config) PriorityOrder() []string {
	if len(c.Regions.Order) == 0 {
		return nil
	}
	order := append([]string(nil), c.Regions.Order...)
	for _, region := range c.synonymRegions() {
		order = regions.SpliceSynonym(order, region, c.Regions.Synonyms[region])
	}
	return order
}

func (c *Config) synonymRegions() []string {
	keys := make([]string, 0, len(c.Regions.Synonyms))
	for region := range c.Regions.Synonyms {
		keys = append(keys, region)
	}
	sort.Strings(keys)
	return keys
}

// LanguageAllowList returns the allow-list in priority order, or nil when
// language filtering is off.
func (c *Config) LanguageAllowList() []string {
	if !c.Options.FilterLanguages {
		return nil
	}
	return append([]string(nil), c.Languages.Filter...)
}

// LanguagePriority returns the configured languages in priority order
// whether or not filtering is on. Parent selection uses it to break ties
// between releases of the same region.
func (c *Config) LanguagePriority() []string {
	if len(c.Languages.Filter) == 0 {
		return nil
	}
	return append([]string(nil), c.Languages.Filter...)
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	return writeConfigFile(path, []byte(sampleConfig))
}

// Save writes cfg as TOML to path.
func Save(path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeConfigFile(path, data)
}

func writeConfigFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
