package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruleforge/rulesync/internal/autocommit"
	"github.com/ruleforge/rulesync/internal/config"
	"github.com/ruleforge/rulesync/internal/errors"
	"github.com/ruleforge/rulesync/internal/git"
)

// AddSyncCommand adds the sync command to the root command.
func AddSyncCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Stage, commit, and push repository changes",
		Long: `Sync checks the repository working tree and, if anything changed,
stages everything, commits with an "Auto update: <timestamp>" message,
and pushes. A clean working tree is a successful no-op.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSync(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(cmd)
}

// runSync wires the auto-commit service and executes one cycle. It backs
// both `rulesync sync` and the bare `rulesync` invocation.
func runSync(ctx context.Context, flags *GlobalFlags, out io.Writer) error {
	logger := GetLogger()

	root, err := resolveRepoRoot(flags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(logger.WithContext(ctx), root)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	runner, err := git.NewRunner(ctx, root, git.WithCommandTimeout(cfg.Git.CommandTimeout))
	if err != nil {
		return err
	}

	svc := autocommit.NewService(
		autocommit.RepositoryContext{Root: root},
		runner,
		autocommit.WithLogger(logger),
		autocommit.WithOutput(out),
		autocommit.WithOptions(autocommit.Options{
			Remote:        cfg.Git.Remote,
			Branch:        cfg.Git.Branch,
			MessagePrefix: cfg.Git.MessagePrefix,
		}),
	)

	return svc.Run(ctx)
}

// resolveRepoRoot determines the repository root for a run. An explicit
// --repo flag (or RULESYNC_REPO) wins; otherwise the root is derived from
// the installed binary's location.
func resolveRepoRoot(flags *GlobalFlags) (string, error) {
	if flags.Repo != "" {
		abs, err := filepath.Abs(flags.Repo)
		if err != nil {
			return "", errors.Wrapf(err, "resolving repository path %q", flags.Repo)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("%w: %s", errors.ErrDirectoryAccess, abs)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("%w: %s is not a directory", errors.ErrDirectoryAccess, abs)
		}
		return abs, nil
	}
	return autocommit.ResolveRoot()
}
