package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ruleforge/rulesync/internal/constants"
	"github.com/ruleforge/rulesync/internal/errors"
)

// GlobalConfigDir returns the path to the global rulesync configuration
// directory, typically ~/.rulesync on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, constants.RulesyncHome), nil
}

// GlobalConfigPath returns the full path to the global configuration file,
// typically ~/.rulesync/config.yaml on Unix systems.
//
// Returns an error if the home directory cannot be determined.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", fmt.Errorf("get global config path: %w", err)
	}
	return filepath.Join(dir, constants.GlobalConfigName), nil
}

// ProjectConfigPath returns the path to the per-repository configuration
// file under the given repository root.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, constants.ProjectConfigDir, constants.GlobalConfigName)
}
