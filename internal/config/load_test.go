package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeProjectConfig writes a .rulesync/config.yaml under root.
func writeProjectConfig(t *testing.T, root, content string) {
	t.Helper()
	dir := filepath.Join(root, ".rulesync")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600))
}

func TestLoadDefaults(t *testing.T) {
	// Point HOME at an empty dir so no real global config interferes.
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)

	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Empty(t, cfg.Git.Branch)
	assert.Equal(t, "Auto update: ", cfg.Git.MessagePrefix)
	assert.Equal(t, "custom", cfg.Rules.CustomDir)
	assert.Equal(t, "output", cfg.Rules.OutputDir)
	assert.Equal(t, 30*time.Second, cfg.Rules.DownloadTimeout)
	assert.Equal(t, 4, cfg.Rules.Concurrency)
	assert.Zero(t, cfg.Git.CommandTimeout)
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	writeProjectConfig(t, root, `
git:
  remote: upstream
  message_prefix: "Rules update: "
rules:
  download_timeout: 10s
  concurrency: 8
`)

	cfg, err := Load(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Git.Remote)
	assert.Equal(t, "Rules update: ", cfg.Git.MessagePrefix)
	assert.Equal(t, 10*time.Second, cfg.Rules.DownloadTimeout)
	assert.Equal(t, 8, cfg.Rules.Concurrency)
	// Untouched keys keep their defaults.
	assert.Equal(t, "custom", cfg.Rules.CustomDir)
}

func TestLoadCommandTimeout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	writeProjectConfig(t, root, `
git:
  command_timeout: 5s
`)

	cfg, err := Load(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, 5*time.Second, cfg.Git.CommandTimeout)
	// Untouched git keys keep their defaults.
	assert.Equal(t, "origin", cfg.Git.Remote)
	assert.Equal(t, "Auto update: ", cfg.Git.MessagePrefix)
}

func TestLoadGlobalThenProjectPrecedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	globalDir := filepath.Join(home, ".rulesync")
	require.NoError(t, os.MkdirAll(globalDir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(globalDir, "config.yaml"), []byte(`
git:
  remote: global-remote
rules:
  concurrency: 2
`), 0o600))

	root := t.TempDir()
	writeProjectConfig(t, root, `
git:
  remote: project-remote
`)

	cfg, err := Load(context.Background(), root)
	require.NoError(t, err)

	// Project overrides global; global fills keys the project omits.
	assert.Equal(t, "project-remote", cfg.Git.Remote)
	assert.Equal(t, 2, cfg.Rules.Concurrency)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("RULESYNC_GIT_REMOTE", "env-remote")

	cfg, err := Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "env-remote", cfg.Git.Remote)
}

func TestLoadInvalidConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	writeProjectConfig(t, root, `
rules:
  concurrency: 99
`)

	_, err := Load(context.Background(), root)
	require.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	root := t.TempDir()
	writeProjectConfig(t, root, "git: [not a mapping")

	_, err := Load(context.Background(), root)
	require.Error(t, err)
}
