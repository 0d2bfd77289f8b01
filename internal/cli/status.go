package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ruleforge/rulesync/internal/git"
)

// AddStatusCommand adds the status command to the root command.
func AddStatusCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the repository working tree state",
		Long: `Status reports whether the rule repository has uncommitted changes,
without modifying anything. It prints the same change listing that a
sync run would act on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(cmd)
}

type statusView struct {
	Repository string   `json:"repository"`
	Branch     string   `json:"branch,omitempty"`
	LastCommit string   `json:"last_commit,omitempty"`
	Clean      bool     `json:"clean"`
	Ahead      int      `json:"ahead,omitempty"`
	Behind     int      `json:"behind,omitempty"`
	Changes    []string `json:"changes,omitempty"`
}

func runStatus(ctx context.Context, flags *GlobalFlags, out io.Writer) error {
	root, err := resolveRepoRoot(flags)
	if err != nil {
		return err
	}

	runner, err := git.NewRunner(ctx, root)
	if err != nil {
		return err
	}

	status, err := runner.Status(ctx)
	if err != nil {
		return err
	}

	// A repository with no commits yet has no HEAD subject; leave it out.
	lastCommit, err := runner.HeadSubject(ctx)
	if err != nil {
		lastCommit = ""
	}

	if flags.Output == OutputJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(statusView{
			Repository: root,
			Branch:     status.Branch,
			LastCommit: lastCommit,
			Clean:      status.IsClean(),
			Ahead:      status.Ahead,
			Behind:     status.Behind,
			Changes:    status.ChangedPaths(),
		})
	}

	fmt.Fprintf(out, "Repository: %s\n", root)
	if status.Branch != "" {
		fmt.Fprintf(out, "Branch: %s\n", status.Branch)
	}
	if lastCommit != "" {
		fmt.Fprintf(out, "Last commit: %s\n", lastCommit)
	}
	if status.Ahead > 0 || status.Behind > 0 {
		fmt.Fprintf(out, "Ahead %d, behind %d.\n", status.Ahead, status.Behind)
	}
	if status.IsClean() {
		fmt.Fprintln(out, "Nothing to commit, working tree clean.")
		return nil
	}
	fmt.Fprintln(out, "Changes detected:")
	for _, p := range status.ChangedPaths() {
		fmt.Fprintf(out, "  %s\n", p)
	}
	return nil
}
