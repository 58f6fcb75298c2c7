package config

import (
	"fmt"
	"slices"
	"strings"

	"retool/internal/regions"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRegions()
	if err := c.normalizeLanguages(); err != nil {
		return err
	}
	c.normalizeProcessing()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.OutputDir, err = expandPath(strings.TrimSpace(c.Paths.OutputDir)); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	if c.Paths.CloneListsDir, err = expandPath(strings.TrimSpace(c.Paths.CloneListsDir)); err != nil {
		return fmt.Errorf("paths.clone_lists_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.HistoryPath) == "" {
		c.Paths.HistoryPath = defaultHistoryPath
	}
	if c.Paths.HistoryPath, err = expandPath(strings.TrimSpace(c.Paths.HistoryPath)); err != nil {
		return fmt.Errorf("paths.history_path: %w", err)
	}
	if c.Logging.File, err = expandPath(strings.TrimSpace(c.Logging.File)); err != nil {
		return fmt.Errorf("logging.file: %w", err)
	}
	return nil
}

func (c *Config) normalizeRegions() {
	order := make([]string, 0, len(c.Regions.Order))
	for _, region := range c.Regions.Order {
		trimmed := strings.TrimSpace(region)
		if trimmed == "" || slices.Contains(order, trimmed) {
			continue
		}
		order = append(order, trimmed)
	}
	c.Regions.Order = order

	synonyms := make(map[string]string, len(c.Regions.Synonyms))
	for region, synonym := range c.Regions.Synonyms {
		region, synonym = strings.TrimSpace(region), strings.TrimSpace(synonym)
		if region == "" || synonym == "" {
			continue
		}
		synonyms[region] = synonym
	}
	c.Regions.Synonyms = synonyms
}

// normalizeLanguages resolves names to short codes and appends English
// unless it is excluded. An empty filter stays empty.
func (c *Config) normalizeLanguages() error {
	excluded := make(map[string]struct{}, len(c.Languages.Excluded))
	cleanedExcluded := make([]string, 0, len(c.Languages.Excluded))
	for _, name := range c.Languages.Excluded {
		if strings.TrimSpace(name) == "" {
			continue
		}
		code, ok := regions.LanguageCode(name)
		if !ok {
			return fmt.Errorf("languages.excluded: unknown language %q", name)
		}
		excluded[code] = struct{}{}
		cleanedExcluded = append(cleanedExcluded, code)
	}
	c.Languages.Excluded = cleanedExcluded

	filter := make([]string, 0, len(c.Languages.Filter)+1)
	for _, name := range c.Languages.Filter {
		if strings.TrimSpace(name) == "" {
			continue
		}
		code, ok := regions.LanguageCode(name)
		if !ok {
			return fmt.Errorf("languages.filter: unknown language %q", name)
		}
		if _, skip := excluded[code]; skip || slices.Contains(filter, code) {
			continue
		}
		filter = append(filter, code)
	}
	if len(filter) > 0 && !slices.Contains(filter, englishCode) {
		if _, skip := excluded[englishCode]; !skip {
			filter = append(filter, englishCode)
		}
	}
	c.Languages.Filter = filter
	return nil
}

func (c *Config) normalizeProcessing() {
	if c.Processing.Workers == 0 {
		c.Processing.Workers = defaultWorkers
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
