// Package autocommit implements the stage/commit/push workflow.
// This file resolves the repository root from the tool's own location.
package autocommit

import (
	"fmt"
	"os"
	"path/filepath"

	rserrors "github.com/ruleforge/rulesync/internal/errors"
)

// ResolveRoot derives the repository root from the running executable's
// location: the binary is expected to live in a subdirectory of the
// repository (tools/rulesync or bin/rulesync inside the rule repo), so
// the root is the parent of the executable's directory. Symlinks are
// resolved first so an installed symlink still points at the real
// location. The result is independent of the process working directory.
func ResolveRoot() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("%w: %w", rserrors.ErrPathResolution, err)
	}

	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("%w: %w", rserrors.ErrPathResolution, err)
	}

	exeDir := filepath.Dir(resolved)
	root := filepath.Dir(exeDir)
	if root == exeDir {
		// Executable sits at the filesystem root; there is no parent
		// directory to treat as the repository.
		return "", fmt.Errorf("%w: executable has no parent directory", rserrors.ErrPathResolution)
	}

	return root, nil
}
