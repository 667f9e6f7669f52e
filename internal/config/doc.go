// Package config loads and validates favsync configuration.
//
// Configuration lives in a TOML file (default ~/.config/favsync/config.toml,
// with a project-local favsync.toml fallback). Load applies defaults, expands
// and normalizes all path fields, and validates the result, so downstream
// packages always receive absolute paths and sane values.
package config
