package config

import (
	"github.com/ruleforge/rulesync/internal/constants"
	"github.com/ruleforge/rulesync/internal/errors"
)

// Validate checks the configuration for invalid or inconsistent values.
// It returns an error describing the first validation failure found.
//
// Validation rules:
//   - Git message prefix must not be empty
//   - Git command timeout must not be negative
//   - Rules custom and output directories must not be empty or equal
//   - Rules download timeout must not be negative
//   - Rules concurrency must be between 1 and 32
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.ErrConfigNil
	}

	if err := validateGitConfig(&cfg.Git); err != nil {
		return err
	}

	return validateRulesConfig(&cfg.Rules)
}

// validateGitConfig checks git-specific configuration values.
func validateGitConfig(cfg *GitConfig) error {
	if cfg.MessagePrefix == "" {
		return errors.Wrap(errors.ErrConfigInvalidGit,
			"git.message_prefix must not be empty")
	}

	if cfg.Branch != "" && cfg.Remote == "" {
		// `git push "" branch` is not a thing; a pinned branch needs a remote.
		return errors.Wrap(errors.ErrConfigInvalidGit,
			"git.branch requires git.remote to be set")
	}

	if cfg.CommandTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidGit,
			"git.command_timeout must not be negative, got %s", cfg.CommandTimeout)
	}

	return nil
}

// validateRulesConfig checks expansion-specific configuration values.
func validateRulesConfig(cfg *RulesConfig) error {
	if cfg.CustomDir == "" {
		return errors.Wrap(errors.ErrConfigInvalidRules,
			"rules.custom_dir must not be empty")
	}
	if cfg.OutputDir == "" {
		return errors.Wrap(errors.ErrConfigInvalidRules,
			"rules.output_dir must not be empty")
	}
	if cfg.CustomDir == cfg.OutputDir {
		return errors.Wrap(errors.ErrConfigInvalidRules,
			"rules.custom_dir and rules.output_dir must differ")
	}

	if cfg.DownloadTimeout < 0 {
		return errors.Wrapf(errors.ErrConfigInvalidRules,
			"rules.download_timeout must not be negative, got %s", cfg.DownloadTimeout)
	}

	if cfg.Concurrency < 1 || cfg.Concurrency > constants.MaxDownloadConcurrency {
		return errors.Wrapf(errors.ErrValueOutOfRange,
			"rules.concurrency must be between 1 and %d, got %d",
			constants.MaxDownloadConcurrency, cfg.Concurrency)
	}

	return nil
}
