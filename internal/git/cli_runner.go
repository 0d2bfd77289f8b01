// Package git provides Git operations for rulesync.
// This file implements the CLIRunner which wraps git CLI commands
// through an injected Execer.
package git

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ruleforge/rulesync/internal/ctxutil"
	rserrors "github.com/ruleforge/rulesync/internal/errors"
)

// CLIRunner implements Runner using the git CLI.
type CLIRunner struct {
	workDir string        // Working directory for git commands
	execer  Execer        // Subprocess capability, swappable in tests
	timeout time.Duration // Per-command bound, 0 means none
}

// RunnerOption configures a CLIRunner.
type RunnerOption func(*CLIRunner)

// WithExecer sets the command execution capability. Tests use this to
// substitute a fake runner so no real git is invoked.
func WithExecer(e Execer) RunnerOption {
	return func(r *CLIRunner) {
		r.execer = e
	}
}

// WithCommandTimeout bounds each individual git command. Zero keeps the
// default of no bound, so a slow push is waited out rather than aborted.
func WithCommandTimeout(d time.Duration) RunnerOption {
	return func(r *CLIRunner) {
		r.timeout = d
	}
}

// NewRunner creates a new CLIRunner for the given working directory.
// Returns ErrDirectoryAccess if the directory is missing or unreadable,
// and ErrNotGitRepo if it is not inside a git repository.
func NewRunner(ctx context.Context, workDir string, opts ...RunnerOption) (*CLIRunner, error) {
	if workDir == "" {
		return nil, fmt.Errorf("work directory cannot be empty: %w", rserrors.ErrEmptyValue)
	}

	r := &CLIRunner{workDir: workDir, execer: NewSystemExecer()}
	for _, opt := range opts {
		opt(r)
	}

	if info, err := os.Stat(workDir); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", workDir, rserrors.ErrDirectoryAccess)
	}

	// Verify this is a git repository
	if _, err := r.git(ctx, "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%w: %w", rserrors.ErrNotGitRepo, err)
	}

	return r, nil
}

// WorkDir returns the directory git commands run in.
func (r *CLIRunner) WorkDir() string {
	return r.workDir
}

// Status returns the current working tree status.
func (r *CLIRunner) Status(ctx context.Context) (*Status, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	// Porcelain output is the stable machine-readable form
	output, err := r.git(ctx, "status", "--porcelain", "-uall", "--branch")
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	return parseGitStatus(output), nil
}

// Add stages files for commit.
func (r *CLIRunner) Add(ctx context.Context, paths []string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	args := []string{"add"}
	if len(paths) == 0 {
		// Stage everything: modified, deleted, and untracked
		args = append(args, "-A")
	} else {
		args = append(args, "--")
		args = append(args, paths...)
	}

	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("failed to add files: %w", err)
	}

	return nil
}

// Commit creates a commit with the given message.
func (r *CLIRunner) Commit(ctx context.Context, message string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	if message == "" {
		return fmt.Errorf("commit message cannot be empty: %w", rserrors.ErrEmptyValue)
	}

	// --cleanup=strip removes trailing whitespace and surrounding blank lines
	if _, err := r.git(ctx, "commit", "-m", message, "--cleanup=strip"); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}

	return nil
}

// Push pushes commits to the remote repository. With empty remote and
// branch it relies on the configured upstream, matching a bare `git push`.
func (r *CLIRunner) Push(ctx context.Context, remote, branch string) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	args := []string{"push"}
	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}

	if _, err := r.git(ctx, args...); err != nil {
		return fmt.Errorf("failed to push: %w", err)
	}

	return nil
}

// CurrentBranch returns the name of the currently checked out branch.
func (r *CLIRunner) CurrentBranch(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	// Handle detached HEAD state
	if output == "HEAD" {
		return "", fmt.Errorf("repository is in detached HEAD state: %w", rserrors.ErrGitOperation)
	}

	return output, nil
}

// HeadSubject returns the subject line of the HEAD commit.
func (r *CLIRunner) HeadSubject(ctx context.Context) (string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return "", err
	}

	output, err := r.git(ctx, "log", "-1", "--pretty=%s")
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD subject: %w", err)
	}

	return output, nil
}

// git executes a git subcommand through the execer, converting non-zero
// exit statuses into ErrGitOperation with stderr attached for debugging.
func (r *CLIRunner) git(ctx context.Context, args ...string) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	res, err := r.execer.Run(ctx, r.workDir, "git", args...)
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	if res.ExitCode != 0 {
		if res.Stderr != "" {
			return "", fmt.Errorf("git %s failed: %s: %w", args[0], res.Stderr, rserrors.ErrGitOperation)
		}
		return "", fmt.Errorf("git %s failed (exit %d): %w", args[0], res.ExitCode, rserrors.ErrGitOperation)
	}
	return res.Stdout, nil
}

// parseGitStatus parses git status --porcelain --branch output.
func parseGitStatus(output string) *Status {
	status := &Status{
		Staged:    []FileChange{},
		Unstaged:  []FileChange{},
		Untracked: []string{},
	}

	for _, line := range strings.Split(output, "\n") {
		if len(line) < 2 {
			continue
		}

		// Branch line: ## branch...origin/branch [ahead N, behind M]
		if strings.HasPrefix(line, "## ") {
			parseBranchLine(line, status)
			continue
		}

		if len(line) < 4 {
			continue
		}

		// XY PATH or XY ORIG -> PATH (for renames)
		indexStatus := line[0]
		workTreeStatus := line[1]
		path := strings.TrimSpace(line[3:])

		var oldPath string
		if strings.Contains(path, " -> ") {
			parts := strings.SplitN(path, " -> ", 2)
			oldPath = parts[0]
			path = parts[1]
		}

		if indexStatus == '?' && workTreeStatus == '?' {
			status.Untracked = append(status.Untracked, path)
			continue
		}

		if indexStatus != ' ' && indexStatus != '?' {
			status.Staged = append(status.Staged, FileChange{
				Path:    path,
				Status:  ChangeType(string(indexStatus)),
				OldPath: oldPath,
			})
		}

		if workTreeStatus != ' ' && workTreeStatus != '?' {
			status.Unstaged = append(status.Unstaged, FileChange{
				Path:    path,
				Status:  ChangeType(string(workTreeStatus)),
				OldPath: oldPath,
			})
		}
	}

	return status
}

// parseBranchLine parses the branch line from git status --porcelain --branch.
// Format: ## branch...origin/branch [ahead N, behind M]
func parseBranchLine(line string, status *Status) {
	line = strings.TrimPrefix(line, "## ")

	parts := strings.SplitN(line, "...", 2)
	status.Branch = parts[0]

	if len(parts) < 2 {
		return
	}

	remotePart := parts[1]
	bracketStart := strings.Index(remotePart, " [")
	if bracketStart == -1 {
		return
	}
	if len(remotePart) < bracketStart+4 || remotePart[len(remotePart)-1] != ']' {
		return
	}

	info := remotePart[bracketStart+2 : len(remotePart)-1]
	status.Ahead = parseAheadBehind(info, "ahead ")
	status.Behind = parseAheadBehind(info, "behind ")
}

// parseAheadBehind extracts the count from "ahead N" or "behind N" in the info string.
func parseAheadBehind(info, prefix string) int {
	idx := strings.Index(info, prefix)
	if idx == -1 {
		return 0
	}

	numStr := info[idx+len(prefix):]
	if commaIdx := strings.Index(numStr, ","); commaIdx != -1 {
		numStr = numStr[:commaIdx]
	}

	n, err := strconv.Atoi(strings.TrimSpace(numStr))
	if err != nil {
		return 0
	}
	return n
}

// Ensure CLIRunner implements Runner.
var _ Runner = (*CLIRunner)(nil)
