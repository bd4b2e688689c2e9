// Package config loads, normalizes, and validates coursegen configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// YOUTUBE_API_KEY and OPENROUTER_API_KEY. The Config type centralizes every
// knob the CLI and pipeline need, including the synthesis policy constants
// (fallback module counts, exam sizing, truncation limits).
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
