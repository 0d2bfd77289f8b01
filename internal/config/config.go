// Package config provides configuration management for rulesync with layered precedence.
//
// Configuration sources are loaded in the following order (highest precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (RULESYNC_* prefix)
//  3. Project config (.rulesync/config.yaml in the repository root)
//  4. Global config (~/.rulesync/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
// The defaults give a working zero-config setup: push to origin with an
// "Auto update: <timestamp>" message, expand custom/ into output/.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import other internal packages.
package config

import "time"

// Config is the root configuration structure for rulesync.
type Config struct {
	// Git contains settings for the stage/commit/push workflow.
	Git GitConfig `yaml:"git" mapstructure:"git"`

	// Rules contains settings for rule list expansion.
	Rules RulesConfig `yaml:"rules" mapstructure:"rules"`
}

// GitConfig contains settings for the auto-commit workflow.
type GitConfig struct {
	// Remote is the git remote pushed to. Empty means the configured
	// upstream (a bare `git push`).
	// Default: "origin"
	Remote string `yaml:"remote" mapstructure:"remote"`

	// Branch is the branch pushed. Empty means the current branch.
	// Default: ""
	Branch string `yaml:"branch" mapstructure:"branch"`

	// MessagePrefix precedes the timestamp in generated commit messages.
	// Default: "Auto update: "
	MessagePrefix string `yaml:"message_prefix" mapstructure:"message_prefix"`

	// CommandTimeout bounds each individual git command. Zero disables
	// the bound, so a slow push over a bad link is waited out rather
	// than aborted.
	// Default: 0
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`
}

// RulesConfig contains settings for rule list expansion.
type RulesConfig struct {
	// CustomDir is the repository directory holding source .list files,
	// relative to the repository root unless absolute.
	// Default: "custom"
	CustomDir string `yaml:"custom_dir" mapstructure:"custom_dir"`

	// OutputDir is the repository directory receiving expanded lists,
	// relative to the repository root unless absolute.
	// Default: "output"
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// DownloadTimeout is the per-request timeout for fetching a remote
	// rule set.
	// Default: 30s
	DownloadTimeout time.Duration `yaml:"download_timeout" mapstructure:"download_timeout"`

	// Concurrency bounds the number of rule-set downloads in flight.
	// Default: 4, Valid range: 1-32
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`
}
