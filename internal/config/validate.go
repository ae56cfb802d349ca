package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSources(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	return nil
}

func (c *Config) validateSources() error {
	seen := make(map[string]struct{}, len(c.Sources))
	for i, source := range c.Sources {
		if source.Name == "" {
			return fmt.Errorf("sources[%d].name must be set", i)
		}
		if _, dup := seen[source.Name]; dup {
			return fmt.Errorf("sources: duplicate source name %q", source.Name)
		}
		seen[source.Name] = struct{}{}
		if strings.TrimSpace(source.Dir) == "" {
			return fmt.Errorf("sources[%d].dir must be set for source %q", i, source.Name)
		}
		switch source.Format {
		case "", "json", "tsv":
		default:
			return fmt.Errorf("sources[%d].format: unsupported value %q (use json or tsv)", i, source.Format)
		}
	}
	return nil
}
