// Package config loads, normalizes, and validates mediamerge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// MEDIAMERGE_DATA_DIR. The Config type centralizes every knob the CLI needs:
// data and log directories, source database declarations with their merge
// priority order, dedupe worker count, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
