// Package config loads, normalizes, and validates batchprint configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and enforces the hot folder invariants: watch,
// success, and error directories must be set and mutually distinct, and the
// success/error directories are created eagerly so a folder is never started
// against a missing destination.
//
// Always obtain settings through this package so downstream code receives
// sanitized absolute paths, canonical log formats, and clear validation
// errors.
package config
