// Package git provides Git operations for rulesync.
// This file defines the Runner interface for git CLI operations.
package git

import "context"

// Runner defines operations for Git repository management.
// All operations run in the runner's working directory and use context
// for cancellation.
type Runner interface {
	// Status returns the current working tree status including staged,
	// unstaged, and untracked files.
	Status(ctx context.Context) (*Status, error)

	// Add stages files for commit. If paths is empty, stages all changes
	// including untracked and deleted paths.
	Add(ctx context.Context, paths []string) error

	// Commit creates a commit with the given message.
	Commit(ctx context.Context, message string) error

	// Push pushes commits to the remote repository. If remote and branch
	// are both empty, pushes the current branch to its configured upstream.
	Push(ctx context.Context, remote, branch string) error

	// CurrentBranch returns the name of the currently checked out branch.
	// Returns an error if in detached HEAD state.
	CurrentBranch(ctx context.Context) (string, error)

	// HeadSubject returns the subject line of the HEAD commit.
	HeadSubject(ctx context.Context) (string, error)
}
