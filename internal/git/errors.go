// Package git provides Git operations for rulesync.
// This file provides error sentinel re-exports from internal/errors.
package git

import (
	rserrors "github.com/ruleforge/rulesync/internal/errors"
)

// ErrGitOperation is re-exported from internal/errors for convenience.
// Use errors.Is(err, ErrGitOperation) to check for git operation failures.
var ErrGitOperation = rserrors.ErrGitOperation

// ErrNotGitRepo is re-exported from internal/errors for convenience.
// Returned when the path is not a git repository.
var ErrNotGitRepo = rserrors.ErrNotGitRepo

// ErrDirectoryAccess is re-exported from internal/errors for convenience.
// Returned when the working directory cannot be entered.
var ErrDirectoryAccess = rserrors.ErrDirectoryAccess
