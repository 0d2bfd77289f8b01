package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ruleforge/rulesync/internal/config"
	"github.com/ruleforge/rulesync/internal/errors"
	"github.com/ruleforge/rulesync/internal/rules"
)

// AddExpandCommand adds the expand command to the root command.
func AddExpandCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand RULE-SET references in rule list files",
		Long: `Expand reads every .list file in the custom directory, downloads the
rule lists referenced by RULE-SET lines, and writes fully inlined copies
to the output directory. A reference that cannot be downloaded
contributes zero rules; the file is still written.

Examples:
  rulesync expand
  rulesync expand --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExpand(cmd.Context(), flags, cmd.OutOrStdout())
		},
	}
	rootCmd.AddCommand(cmd)
}

// expandFileView is the JSON shape of a per-file expansion summary.
type expandFileView struct {
	Name     string   `json:"name"`
	RuleSets int      `json:"rule_sets"`
	Rules    int      `json:"rules"`
	Skipped  int      `json:"skipped,omitempty"`
	Failures []string `json:"failures,omitempty"`
}

type expandReportView struct {
	Files      []expandFileView `json:"files"`
	TotalRules int              `json:"total_rules"`
	Failures   int              `json:"failures"`
}

func runExpand(ctx context.Context, flags *GlobalFlags, out io.Writer) error {
	logger := GetLogger()

	root, err := resolveRepoRoot(flags)
	if err != nil {
		return err
	}

	cfg, err := config.Load(logger.WithContext(ctx), root)
	if err != nil {
		return errors.Wrap(err, "loading configuration")
	}

	customDir := resolveDir(root, cfg.Rules.CustomDir)
	outputDir := resolveDir(root, cfg.Rules.OutputDir)

	fetcher := rules.NewHTTPFetcher(rules.WithTimeout(cfg.Rules.DownloadTimeout))
	expander := rules.NewExpander(fetcher,
		rules.WithExpanderLogger(logger),
		rules.WithDirs(customDir, outputDir),
		rules.WithConcurrency(cfg.Rules.Concurrency),
	)

	report, err := expander.ExpandAll(ctx)
	if err != nil {
		return err
	}

	if flags.Output == OutputJSON {
		return printExpandJSON(out, report)
	}
	printExpandText(out, report, outputDir)
	return nil
}

func printExpandText(out io.Writer, report *rules.Report, outputDir string) {
	for _, f := range report.Files {
		fmt.Fprintf(out, "Expanded %s: %d rule-set(s), %d rule(s)\n", f.Name, f.RuleSets, f.Rules)
		for _, u := range f.Failures {
			fmt.Fprintf(out, "  download failed: %s\n", u)
		}
	}
	fmt.Fprintf(out, "Wrote %d file(s) to %s (%d rules", len(report.Files), outputDir, report.TotalRules())
	if n := report.FailureCount(); n > 0 {
		fmt.Fprintf(out, ", %d failed download(s)", n)
	}
	fmt.Fprintln(out, ").")
}

func printExpandJSON(out io.Writer, report *rules.Report) error {
	view := expandReportView{
		Files:      make([]expandFileView, 0, len(report.Files)),
		TotalRules: report.TotalRules(),
		Failures:   report.FailureCount(),
	}
	for _, f := range report.Files {
		view.Files = append(view.Files, expandFileView{
			Name:     f.Name,
			RuleSets: f.RuleSets,
			Rules:    f.Rules,
			Skipped:  f.Skipped,
			Failures: f.Failures,
		})
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(view)
}

// resolveDir joins a configured directory to the repository root unless it
// is already absolute.
func resolveDir(root, dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(root, dir)
}
