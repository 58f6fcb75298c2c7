package config

import (
	"errors"
	"fmt"

	"retool/internal/regions"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateRegions(); err != nil {
		return err
	}
	if err := c.validateProcessing(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateRegions() error {
	table := regions.Default()
	for region, synonym := range c.Regions.Synonyms {
		if !table.IsRegion(region) {
			return fmt.Errorf("regions.synonyms: unknown region %q", region)
		}
		if table.IsRegion(synonym) {
			return fmt.Errorf("regions.synonyms: %q is already a region", synonym)
		}
	}
	withSynonyms := c.RegionTable()
	for _, region := range c.Regions.Order {
		if !withSynonyms.IsRegion(region) {
			return fmt.Errorf("regions.order: unknown region %q", region)
		}
	}
	return nil
}

func (c *Config) validateProcessing() error {
	if c.Processing.Workers < 1 || c.Processing.Workers > maxWorkers {
		return fmt.Errorf("processing.workers must be between 1 and %d", maxWorkers)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
	default:
		return errors.New("logging.level must be one of debug, info, warn, error")
	}
	return nil
}
