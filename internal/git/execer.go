// Package git provides Git operations for rulesync.
// This file defines the command execution capability that all git
// operations go through, so tests can substitute a fake process runner.
package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
)

// Result holds the outcome of a single subprocess invocation.
// It is consumed immediately by the caller to decide control flow.
type Result struct {
	// ExitCode is the process exit status. Zero means success.
	ExitCode int
	// Stdout is the captured standard output, trailing whitespace trimmed.
	Stdout string
	// Stderr is the captured standard error, trailing whitespace trimmed.
	Stderr string
}

// Execer runs external commands. Implementations must be safe for
// sequential reuse; rulesync never runs commands concurrently against
// the same repository.
type Execer interface {
	// Run executes name with args in dir and blocks until the process
	// terminates. A non-zero exit status is reported through
	// Result.ExitCode, not through err; err is reserved for failures to
	// run the command at all (missing binary, inaccessible directory,
	// canceled context).
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)
}

// SystemExecer implements Execer with os/exec.
type SystemExecer struct{}

// NewSystemExecer returns an Execer backed by real subprocesses.
func NewSystemExecer() *SystemExecer {
	return &SystemExecer{}
}

// Run executes the command and captures its output.
func (e *SystemExecer) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...) //#nosec G204 -- args are constructed internally, not user input
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if err != nil {
		// Context cancellation takes precedence over the exit status.
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// The process never ran (binary missing, bad dir).
		return res, err
	}

	return res, nil
}

// Ensure SystemExecer implements Execer.
var _ Execer = (*SystemExecer)(nil)
