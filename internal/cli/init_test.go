package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/ruleforge/rulesync/internal/config"
	"github.com/ruleforge/rulesync/internal/errors"
)

func TestRunInit_WritesProjectConfig(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	var out bytes.Buffer

	err := runInit(&GlobalFlags{Repo: root}, false, false, &out)
	require.NoError(t, err)

	path := config.ProjectConfigPath(root)
	assert.Contains(t, out.String(), path)

	data, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal(data, &cfg))
	assert.Equal(t, config.DefaultConfig().Git.Remote, cfg.Git.Remote)
	assert.Equal(t, config.DefaultConfig().Rules.CustomDir, cfg.Rules.CustomDir)
}

func TestRunInit_WritesGlobalConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	var out bytes.Buffer
	err := runInit(&GlobalFlags{}, true, false, &out)
	require.NoError(t, err)

	path, err := config.GlobalConfigPath()
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestRunInit_RefusesToOverwrite(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := config.ProjectConfigPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("git:\n  remote: upstream\n"), 0o600))

	var out bytes.Buffer
	err := runInit(&GlobalFlags{Repo: root}, false, false, &out)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrConfigExists)

	// The existing file is untouched.
	data, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	assert.Contains(t, string(data), "upstream")
}

func TestRunInit_ForceOverwrites(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := config.ProjectConfigPath(root)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("git:\n  remote: upstream\n"), 0o600))

	var out bytes.Buffer
	err := runInit(&GlobalFlags{Repo: root}, false, true, &out)
	require.NoError(t, err)

	data, err := os.ReadFile(path) //nolint:gosec // test-controlled path
	require.NoError(t, err)
	assert.Contains(t, string(data), config.DefaultConfig().Git.Remote)
}
