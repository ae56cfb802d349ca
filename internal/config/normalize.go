package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSources(); err != nil {
		return err
	}
	c.normalizeDedupe()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if value, ok := os.LookupEnv("MEDIAMERGE_DATA_DIR"); ok && strings.TrimSpace(value) != "" {
		c.Paths.DataDir = strings.TrimSpace(value)
	}
	var err error
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeSources() error {
	for i := range c.Sources {
		source := &c.Sources[i]
		source.Name = strings.ToLower(strings.TrimSpace(source.Name))
		source.Format = strings.ToLower(strings.TrimSpace(source.Format))
		if strings.TrimSpace(source.Dir) == "" {
			continue
		}
		expanded, err := expandPath(source.Dir)
		if err != nil {
			return fmt.Errorf("sources[%d].dir: %w", i, err)
		}
		source.Dir = expanded
	}
	return nil
}

func (c *Config) normalizeDedupe() {
	if c.Dedupe.Workers < 0 {
		c.Dedupe.Workers = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
