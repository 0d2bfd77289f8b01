package rules

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rserrors "github.com/ruleforge/rulesync/internal/errors"
	"github.com/ruleforge/rulesync/internal/testutil"
)

// fakeFetcher serves canned rule lists keyed by URL.
type fakeFetcher struct {
	lists map[string][]string
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]string, error) {
	lines, ok := f.lists[url]
	if !ok {
		return nil, testutil.ErrMockNetwork
	}
	return lines, nil
}

// writeList creates a .list file under dir.
func writeList(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func newTestExpander(t *testing.T, fetcher Fetcher) (*Expander, string, string) {
	t.Helper()
	root := t.TempDir()
	customDir := filepath.Join(root, "custom")
	outputDir := filepath.Join(root, "output")
	return NewExpander(fetcher, WithDirs(customDir, outputDir)), customDir, outputDir
}

func TestExpandAll(t *testing.T) {
	t.Run("inlines rule sets in source order", func(t *testing.T) {
		fetcher := &fakeFetcher{lists: map[string][]string{
			"https://rules.example.com/ads.list":     {"DOMAIN,ad1.example", "DOMAIN,ad2.example"},
			"https://rules.example.com/privacy.list": {"DOMAIN-SUFFIX,tracker.example"},
		}}
		e, customDir, outputDir := newTestExpander(t, fetcher)

		writeList(t, customDir, "reject.list", strings.Join([]string{
			"# local overrides",
			"DOMAIN,first.example,REJECT",
			"RULE-SET,https://rules.example.com/ads.list,REJECT",
			"DOMAIN-SUFFIX,middle.example,REJECT",
			"RULE-SET,https://rules.example.com/privacy.list,REJECT",
			"DOMAIN,last.example,REJECT",
		}, "\n"))

		report, err := e.ExpandAll(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		fr := report.Files[0]
		assert.Equal(t, "reject.list", fr.Name)
		assert.Equal(t, 2, fr.RuleSets)
		assert.Equal(t, 6, fr.Rules)
		assert.Empty(t, fr.Failures)
		assert.Equal(t, 0, report.FailureCount())
		assert.Equal(t, 6, report.TotalRules())

		data, err := os.ReadFile(filepath.Join(outputDir, "reject.list"))
		require.NoError(t, err)
		content := string(data)

		assert.Contains(t, content, "# Generated by rulesync, expanded from: reject.list")
		assert.Contains(t, content, "# Expanded 2 RULE-SET reference(s)")
		assert.Contains(t, content, "# Total rules: 6")

		// Expanded rules keep source order, with policies stripped from
		// plain domain rules.
		want := []string{
			"DOMAIN,first.example",
			"DOMAIN,ad1.example",
			"DOMAIN,ad2.example",
			"DOMAIN-SUFFIX,middle.example",
			"DOMAIN-SUFFIX,tracker.example",
			"DOMAIN,last.example",
		}
		lines := strings.Split(strings.TrimSpace(content), "\n")
		assert.Equal(t, want, lines[len(lines)-6:])
	})

	t.Run("download failure degrades to zero rules", func(t *testing.T) {
		fetcher := &fakeFetcher{lists: map[string][]string{}}
		e, customDir, outputDir := newTestExpander(t, fetcher)

		writeList(t, customDir, "proxy.list",
			"DOMAIN,keep.example,Proxy\nRULE-SET,https://down.example/x.list,Proxy\n")

		report, err := e.ExpandAll(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Files, 1)

		fr := report.Files[0]
		assert.Equal(t, 0, fr.RuleSets)
		assert.Equal(t, []string{"https://down.example/x.list"}, fr.Failures)
		assert.Equal(t, 1, fr.Rules)
		assert.Equal(t, 1, report.FailureCount())

		data, err := os.ReadFile(filepath.Join(outputDir, "proxy.list"))
		require.NoError(t, err)
		assert.Contains(t, string(data), "DOMAIN,keep.example")
		assert.NotContains(t, string(data), "down.example")
	})

	t.Run("multiple files processed in name order", func(t *testing.T) {
		fetcher := &fakeFetcher{lists: map[string][]string{}}
		e, customDir, _ := newTestExpander(t, fetcher)

		writeList(t, customDir, "b.list", "DOMAIN,b.example,Proxy\n")
		writeList(t, customDir, "a.list", "DOMAIN,a.example,Proxy\n")
		// Non-list files are ignored.
		writeList(t, customDir, "notes.txt", "DOMAIN,ignored.example\n")

		report, err := e.ExpandAll(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Files, 2)
		assert.Equal(t, "a.list", report.Files[0].Name)
		assert.Equal(t, "b.list", report.Files[1].Name)
	})

	t.Run("comment-less malformed lines are skipped and counted", func(t *testing.T) {
		fetcher := &fakeFetcher{lists: map[string][]string{}}
		e, customDir, _ := newTestExpander(t, fetcher)

		writeList(t, customDir, "a.list", "DOMAIN,ok.example\nFINAL\n")

		report, err := e.ExpandAll(context.Background())
		require.NoError(t, err)
		require.Len(t, report.Files, 1)
		assert.Equal(t, 1, report.Files[0].Rules)
		assert.Equal(t, 1, report.Files[0].Skipped)
	})

	t.Run("empty custom dir fails with ErrNoRuleFiles", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e, customDir, _ := newTestExpander(t, fetcher)
		require.NoError(t, os.MkdirAll(customDir, 0o750))

		_, err := e.ExpandAll(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, rserrors.ErrNoRuleFiles)
	})

	t.Run("missing custom dir fails with ErrDirectoryAccess", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		e, _, _ := newTestExpander(t, fetcher)

		_, err := e.ExpandAll(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, rserrors.ErrDirectoryAccess)
	})
}

func TestExpandAllConcurrent(t *testing.T) {
	// Many rule sets with a low concurrency bound still stitch results
	// back in source order.
	lists := map[string][]string{}
	var src []string
	for _, u := range []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7", "u8"} {
		url := "https://rules.example.com/" + u + ".list"
		lists[url] = []string{"DOMAIN," + u + ".example"}
		src = append(src, "RULE-SET,"+url+",Proxy")
	}

	e, customDir, outputDir := newTestExpander(t, &fakeFetcher{lists: lists})
	writeList(t, customDir, "all.list", strings.Join(src, "\n"))

	report, err := e.ExpandAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, report.Files[0].RuleSets)

	data, err := os.ReadFile(filepath.Join(outputDir, "all.list"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Equal(t, []string{
		"DOMAIN,u1.example",
		"DOMAIN,u2.example",
		"DOMAIN,u3.example",
		"DOMAIN,u4.example",
		"DOMAIN,u5.example",
		"DOMAIN,u6.example",
		"DOMAIN,u7.example",
		"DOMAIN,u8.example",
	}, lines[len(lines)-8:])
}
