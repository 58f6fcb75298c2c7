package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// LegacySettings holds what a legacy user-config.yaml declares.
type LegacySettings struct {
	Languages   []string
	RegionOrder []string
}

// ParseLegacy decodes a legacy user-config.yaml: a list of single-key maps
// holding the "language filter" and "region order" lists.
func ParseLegacy(data []byte) (LegacySettings, error) {
	var sections []map[string][]string
	if err := yaml.Unmarshal(data, &sections); err != nil {
		return LegacySettings{}, fmt.Errorf("parse legacy config: %w", err)
	}
	var out LegacySettings
	for _, section := range sections {
		for key, values := range section {
			switch strings.ToLower(strings.TrimSpace(key)) {
			case "language filter":
				out.Languages = append(out.Languages, trimAll(values)...)
			case "region order":
				out.RegionOrder = append(out.RegionOrder, trimAll(values)...)
			}
		}
	}
	return out, nil
}

// LoadLegacy reads and decodes a legacy user-config.yaml file.
func LoadLegacy(path string) (LegacySettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LegacySettings{}, fmt.Errorf("read legacy config: %w", err)
	}
	return ParseLegacy(data)
}

// ApplyLegacy copies the legacy lists into cfg. A present language list
// also turns on language filtering.
func (c *Config) ApplyLegacy(settings LegacySettings) {
	if len(settings.Languages) > 0 {
		c.Languages.Filter = append([]string(nil), settings.Languages...)
		c.Options.FilterLanguages = true
	}
	if len(settings.RegionOrder) > 0 {
		c.Regions.Order = append([]string(nil), settings.RegionOrder...)
	}
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
