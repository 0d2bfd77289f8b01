// Package constants provides centralized constant values used throughout rulesync.
// This package is the single source of truth for all shared constants and MUST NOT
// import any other internal packages.
package constants

import "time"

// Directory names and paths used by rulesync for organizing data.
const (
	// RulesyncHome is the hidden directory name where rulesync stores all its data.
	// This directory is created in the user's home directory.
	RulesyncHome = ".rulesync"

	// LogsDir is the directory name where log files are stored.
	LogsDir = "logs"

	// DefaultCustomDir is the repository directory holding source .list files.
	DefaultCustomDir = "custom"

	// DefaultOutputDir is the repository directory receiving expanded .list files.
	DefaultOutputDir = "output"
)

// File names and patterns.
const (
	// CLILogFileName is the name of the global CLI log file.
	// This file is located in ~/.rulesync/logs/rulesync.log
	CLILogFileName = "rulesync.log"

	// GlobalConfigName is the name of the global rulesync configuration file.
	// This file is located in the rulesync home directory.
	GlobalConfigName = "config.yaml"

	// ProjectConfigDir is the per-repository configuration directory.
	ProjectConfigDir = ".rulesync"

	// RuleListExtension is the file extension for rule list files.
	RuleListExtension = ".list"
)

// Git defaults.
const (
	// DefaultRemote is the standard git remote name pushed to.
	DefaultRemote = "origin"

	// CommitMessagePrefix precedes the timestamp in generated commit messages.
	CommitMessagePrefix = "Auto update: "

	// CommitTimestampFormat is the layout of the timestamp portion of the
	// generated commit message (local time).
	CommitTimestampFormat = "2006-01-02 15:04:05"
)

// Rule expansion defaults.
const (
	// DefaultDownloadTimeout is the per-request timeout for fetching a
	// remote rule set.
	DefaultDownloadTimeout = 30 * time.Second

	// DefaultDownloadConcurrency bounds the number of rule-set downloads
	// in flight per list file.
	DefaultDownloadConcurrency = 4

	// MaxDownloadConcurrency is the upper bound accepted from configuration.
	MaxDownloadConcurrency = 32
)

// Log rotation settings for the CLI log file.
const (
	// LogMaxSizeMB is the maximum size in megabytes before rotation.
	LogMaxSizeMB = 10

	// LogMaxBackups is the number of rotated files to retain.
	LogMaxBackups = 3

	// LogMaxAgeDays is the maximum age in days of a rotated file.
	LogMaxAgeDays = 30

	// LogCompress controls gzip compression of rotated files.
	LogCompress = true
)
