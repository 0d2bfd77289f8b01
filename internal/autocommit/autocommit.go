// Package autocommit implements the stage/commit/push workflow for rule
// repositories: check the working tree, and if anything changed, stage
// everything, commit with a timestamped message, and push. The repository
// root is carried as an explicit value; the process working directory is
// never changed.
package autocommit

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/ruleforge/rulesync/internal/clock"
	"github.com/ruleforge/rulesync/internal/constants"
	"github.com/ruleforge/rulesync/internal/ctxutil"
	rserrors "github.com/ruleforge/rulesync/internal/errors"
	"github.com/ruleforge/rulesync/internal/git"
)

// RepositoryContext identifies the repository a run operates on.
// Passing it explicitly keeps every operation independent of the
// process working directory.
type RepositoryContext struct {
	// Root is the absolute path to the repository root.
	Root string
}

// Options configures the push target and commit message shape.
type Options struct {
	// Remote is the git remote pushed to. Empty means the configured
	// upstream (a bare `git push`).
	Remote string
	// Branch is the branch pushed. Empty means the current branch.
	Branch string
	// MessagePrefix precedes the timestamp in the commit message.
	MessagePrefix string
}

// DefaultOptions returns the options matching the zero-config workflow.
func DefaultOptions() Options {
	return Options{
		Remote:        constants.DefaultRemote,
		MessagePrefix: constants.CommitMessagePrefix,
	}
}

// Service runs the auto-commit workflow against one repository.
type Service struct {
	repo   RepositoryContext
	runner git.Runner
	clock  clock.Clock
	logger zerolog.Logger
	out    io.Writer
	opts   Options
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithClock sets the clock used for commit message timestamps.
func WithClock(c clock.Clock) ServiceOption {
	return func(s *Service) {
		s.clock = c
	}
}

// WithLogger sets the logger for workflow progress.
func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithOutput sets the writer receiving user-facing progress banners.
func WithOutput(w io.Writer) ServiceOption {
	return func(s *Service) {
		s.out = w
	}
}

// WithOptions sets the push target and message prefix.
func WithOptions(opts Options) ServiceOption {
	return func(s *Service) {
		s.opts = opts
	}
}

// NewService creates an auto-commit service for the given repository.
func NewService(repo RepositoryContext, runner git.Runner, opts ...ServiceOption) *Service {
	s := &Service{
		repo:   repo,
		runner: runner,
		clock:  clock.RealClock{},
		logger: zerolog.Nop(),
		out:    io.Discard,
		opts:   DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run executes one stage/commit/push cycle. A clean working tree is a
// successful no-op. Every step after the status check is fail-fast: the
// first failure aborts the run, and a commit that lands before a failed
// push stays in place.
func (s *Service) Run(ctx context.Context) error {
	if err := ctxutil.Canceled(ctx); err != nil {
		return err
	}

	fmt.Fprintf(s.out, "Repository: %s\n", s.repo.Root)

	status, err := s.runner.Status(ctx)
	if err != nil {
		fmt.Fprintf(s.out, "status failed: %v\n", err)
		return rserrors.Wrap(err, "checking working tree")
	}

	if status.IsClean() {
		fmt.Fprintln(s.out, "Nothing to commit, working tree clean.")
		s.logger.Info().Str("repo", s.repo.Root).Msg("working tree clean, nothing to do")
		return nil
	}

	paths := status.ChangedPaths()
	fmt.Fprintln(s.out, "Changes detected:")
	for _, p := range paths {
		fmt.Fprintf(s.out, "  %s\n", p)
	}
	s.logger.Info().Str("repo", s.repo.Root).Int("paths", len(paths)).Msg("changes detected")

	if err := s.runner.Add(ctx, nil); err != nil {
		fmt.Fprintf(s.out, "stage failed: %v\n", err)
		return rserrors.Wrap(err, "staging changes")
	}
	fmt.Fprintf(s.out, "Staged %d path(s).\n", len(paths))

	message := s.opts.MessagePrefix + s.clock.Now().Format(constants.CommitTimestampFormat)
	if err := s.runner.Commit(ctx, message); err != nil {
		// Push is never attempted after a failed commit. A status/stage
		// race that leaves nothing to commit lands here too and is not
		// distinguished from other commit failures.
		fmt.Fprintf(s.out, "commit failed: %v\n", err)
		s.logger.Error().Err(err).Msg("commit failed")
		return fmt.Errorf("%w: %w", rserrors.ErrCommitFailed, err)
	}
	fmt.Fprintf(s.out, "Committed: %s\n", message)
	s.logger.Info().Str("message", message).Msg("commit created")

	branch := s.opts.Branch
	if s.opts.Remote != "" && branch == "" {
		// An explicit refspec lets the push succeed even when the branch
		// has no upstream configured yet. Detached HEAD falls back to
		// letting git resolve the ref itself.
		if current, berr := s.runner.CurrentBranch(ctx); berr == nil {
			branch = current
		} else {
			s.logger.Debug().Err(berr).Msg("could not resolve current branch for push")
		}
	}

	if err := s.runner.Push(ctx, s.opts.Remote, branch); err != nil {
		// The local commit stays; only the publish step failed.
		fmt.Fprintf(s.out, "push failed: %v\n", err)
		s.logger.Error().Err(err).Msg("push failed, local commit retained")
		return fmt.Errorf("%w: %w", rserrors.ErrPushFailed, err)
	}

	if s.opts.Remote != "" {
		fmt.Fprintf(s.out, "Pushed to %s.\n", s.opts.Remote)
	} else {
		fmt.Fprintln(s.out, "Pushed to configured upstream.")
	}
	fmt.Fprintln(s.out, "Done.")
	s.logger.Info().Str("remote", s.opts.Remote).Msg("push complete")

	return nil
}
