package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ruleforge/rulesync/internal/config"
	"github.com/ruleforge/rulesync/internal/errors"
)

// AddInitCommand adds the init command to the root command.
func AddInitCommand(rootCmd *cobra.Command, flags *GlobalFlags) {
	var global bool
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default configuration file",
		Long: `Init writes a config.yaml populated with the default settings, either
to the repository's .rulesync directory or, with --global, to the
per-user configuration directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(flags, global, force, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&global, "global", false, "write the per-user configuration instead of the project one")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
	rootCmd.AddCommand(cmd)
}

func runInit(flags *GlobalFlags, global, force bool, out io.Writer) error {
	path, err := initConfigPath(flags, global)
	if err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", errors.ErrConfigExists, path)
	}

	data, err := yaml.Marshal(config.DefaultConfig())
	if err != nil {
		return errors.Wrap(err, "encoding default configuration")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return errors.Wrapf(err, "creating %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	fmt.Fprintf(out, "Wrote %s\n", path)
	return nil
}

func initConfigPath(flags *GlobalFlags, global bool) (string, error) {
	if global {
		return config.GlobalConfigPath()
	}
	root, err := resolveRepoRoot(flags)
	if err != nil {
		return "", err
	}
	return config.ProjectConfigPath(root), nil
}
