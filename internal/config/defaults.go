package config

import (
	"github.com/ruleforge/rulesync/internal/constants"
)

// DefaultConfig returns a new Config with sensible default values.
// These defaults are used as the base layer that can be overridden by
// config files, environment variables, and CLI flags. A repository with
// no configuration at all gets a fully working setup.
func DefaultConfig() *Config {
	return &Config{
		Git: GitConfig{
			// Remote: "origin" is the standard Git remote name.
			Remote: constants.DefaultRemote,

			// Branch: empty pushes the current branch.
			Branch: "",

			// MessagePrefix: the timestamp is appended at commit time.
			MessagePrefix: constants.CommitMessagePrefix,

			// CommandTimeout: zero waits indefinitely on each git command.
			CommandTimeout: 0,
		},
		Rules: RulesConfig{
			CustomDir: constants.DefaultCustomDir,
			OutputDir: constants.DefaultOutputDir,

			// DownloadTimeout: generous enough for large hosted lists.
			DownloadTimeout: constants.DefaultDownloadTimeout,

			// Concurrency: keeps expansion fast without hammering hosts.
			Concurrency: constants.DefaultDownloadConcurrency,
		},
	}
}
