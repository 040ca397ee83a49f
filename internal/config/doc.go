// Package config loads and validates flavorprune configuration data.
//
// It supplies repository defaults, resolves the config file location
// (explicit flag, then ~/.config/flavorprune/config.toml, then a
// project-local flavorprune.toml), and parses TOML. The matching gates,
// report preview length, backup policy, and log settings all flow from
// here so the CLI and the pruning engine read one source of truth.
package config
