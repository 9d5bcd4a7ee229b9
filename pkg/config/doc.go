// Package config handles configuration management for importsteps.
// It layers the embedded defaults, the user and project TOML files,
// environment variables and explicit overrides with koanf.
package config
