package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleforge/rulesync/internal/errors"
)

func TestValidate(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		err := Validate(nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigNil)
	})

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Validate(DefaultConfig()))
	})

	t.Run("empty message prefix", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Git.MessagePrefix = ""
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidGit)
	})

	t.Run("branch without remote", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Git.Remote = ""
		cfg.Git.Branch = "main"
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidGit)
	})

	t.Run("negative command timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Git.CommandTimeout = -time.Second
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidGit)
	})

	t.Run("zero command timeout is valid", func(t *testing.T) {
		// Zero disables the per-command bound.
		cfg := DefaultConfig()
		cfg.Git.CommandTimeout = 0
		assert.NoError(t, Validate(cfg))
	})

	t.Run("empty remote alone is valid", func(t *testing.T) {
		// Bare `git push` against the configured upstream.
		cfg := DefaultConfig()
		cfg.Git.Remote = ""
		assert.NoError(t, Validate(cfg))
	})

	t.Run("same custom and output dir", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rules.OutputDir = cfg.Rules.CustomDir
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidRules)
	})

	t.Run("negative download timeout", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Rules.DownloadTimeout = -time.Second
		err := Validate(cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrConfigInvalidRules)
	})

	t.Run("zero download timeout is valid", func(t *testing.T) {
		// Zero disables the per-request timeout.
		cfg := DefaultConfig()
		cfg.Rules.DownloadTimeout = 0
		assert.NoError(t, Validate(cfg))
	})

	t.Run("concurrency out of range", func(t *testing.T) {
		for _, n := range []int{0, -1, 33} {
			cfg := DefaultConfig()
			cfg.Rules.Concurrency = n
			err := Validate(cfg)
			require.Error(t, err, "concurrency %d", n)
			assert.ErrorIs(t, err, errors.ErrValueOutOfRange)
		}
	})
}
