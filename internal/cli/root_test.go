package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ruleforge/rulesync/internal/errors"
)

func TestNewRootCmd_Structure(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})

	assert.Equal(t, "rulesync", cmd.Use)
	assert.True(t, cmd.SilenceUsage)
	assert.NotNil(t, cmd.RunE, "bare invocation should run the sync workflow")

	names := make([]string, 0, len(cmd.Commands()))
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"sync", "expand", "status", "init"} {
		assert.Contains(t, names, want)
	}
}

func TestRootCmd_Help(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "sync workflow")
	assert.Contains(t, out.String(), "Available Commands")
}

func TestRootCmd_InvalidOutputFormat(t *testing.T) {
	t.Parallel()

	flags := &GlobalFlags{}
	cmd := newRootCmd(flags, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"status", "--output", "yaml"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrInvalidOutputFormat)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestRootCmd_MutuallyExclusiveVerbosityFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&GlobalFlags{}, BuildInfo{})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"status", "--verbose", "--quiet"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Equal(t, ExitInvalidInput, ExitCodeForError(err))
}

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{
			name: "full build info",
			info: BuildInfo{Version: "1.2.3", Commit: "abc1234", Date: "2026-08-30"},
			want: "1.2.3 (commit: abc1234, built: 2026-08-30)",
		},
		{
			name: "empty build info falls back to dev",
			info: BuildInfo{},
			want: "dev (commit: none, built: unknown)",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, formatVersion(tt.info))
		})
	}
}

func TestGetLogger_BeforeInitIsUsable(t *testing.T) {
	logger := GetLogger()
	// A zero-value logger must not panic when used.
	logger.Info().Msg("noop")
}
