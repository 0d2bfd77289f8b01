// Package errors provides centralized error handling for rulesync.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrGitOperation indicates that a git command (status, add, commit, push)
	// failed during execution.
	ErrGitOperation = errors.New("git operation failed")

	// ErrNotGitRepo indicates that the path is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrDirectoryAccess indicates that the repository root is missing
	// or cannot be entered.
	ErrDirectoryAccess = errors.New("repository directory inaccessible")

	// ErrPathResolution indicates that the repository root could not be
	// derived from the executable's location.
	ErrPathResolution = errors.New("repository root resolution failed")

	// ErrCommitFailed indicates the commit step returned non-zero.
	// This covers both genuine commit failures and the "nothing staged"
	// race; the two are deliberately not distinguished.
	ErrCommitFailed = errors.New("commit failed")

	// ErrPushFailed indicates the push step returned non-zero. The local
	// commit created earlier in the run is left in place.
	ErrPushFailed = errors.New("push failed")

	// ErrRuleSetDownload indicates that a RULE-SET remote list could not
	// be downloaded.
	ErrRuleSetDownload = errors.New("rule-set download failed")

	// ErrNoRuleFiles indicates that the custom directory contains no
	// .list files to expand.
	ErrNoRuleFiles = errors.New("no rule list files found")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGit indicates an invalid git configuration value.
	ErrConfigInvalidGit = errors.New("invalid git configuration")

	// ErrConfigInvalidRules indicates an invalid rules configuration value.
	ErrConfigInvalidRules = errors.New("invalid rules configuration")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrValueOutOfRange indicates that a value is outside the allowed range.
	ErrValueOutOfRange = errors.New("value out of range")

	// ErrConfigExists indicates an attempt to scaffold a config file that
	// already exists.
	ErrConfigExists = errors.New("config file already exists")
)
