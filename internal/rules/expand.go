// Package rules implements parsing and expansion of proxy rule list files.
// This file implements the expansion pipeline: read .list files from the
// custom directory, inline every RULE-SET reference, and write the
// expanded lists to the output directory.
package rules

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ruleforge/rulesync/internal/constants"
	"github.com/ruleforge/rulesync/internal/ctxutil"
	rserrors "github.com/ruleforge/rulesync/internal/errors"
	"github.com/ruleforge/rulesync/internal/logging"
)

// FileReport summarizes the expansion of a single .list file.
type FileReport struct {
	// Name is the list file name, identical in input and output dirs.
	Name string
	// RuleSets is the number of RULE-SET references successfully inlined.
	RuleSets int
	// Failures lists the URLs that could not be downloaded. Each failed
	// reference contributes zero rules; the file is still written.
	Failures []string
	// Rules is the total number of rules written.
	Rules int
	// Skipped counts lines that were neither comments nor parseable rules.
	Skipped int
}

// Report aggregates the expansion of a whole custom directory.
type Report struct {
	Files []FileReport
}

// FailureCount returns the total number of failed rule-set downloads
// across all files.
func (r *Report) FailureCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Failures)
	}
	return n
}

// TotalRules returns the total number of rules written across all files.
func (r *Report) TotalRules() int {
	n := 0
	for _, f := range r.Files {
		n += f.Rules
	}
	return n
}

// Expander expands rule list files.
type Expander struct {
	fetcher     Fetcher
	logger      zerolog.Logger
	customDir   string
	outputDir   string
	concurrency int
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithExpanderLogger sets the logger for expansion progress.
func WithExpanderLogger(logger zerolog.Logger) ExpanderOption {
	return func(e *Expander) {
		e.logger = logger
	}
}

// WithDirs sets the input (custom) and output directories.
func WithDirs(customDir, outputDir string) ExpanderOption {
	return func(e *Expander) {
		e.customDir = customDir
		e.outputDir = outputDir
	}
}

// WithConcurrency bounds the number of rule-set downloads in flight.
func WithConcurrency(n int) ExpanderOption {
	return func(e *Expander) {
		if n > 0 {
			e.concurrency = n
		}
	}
}

// NewExpander creates an Expander using the given fetcher for RULE-SET
// downloads.
func NewExpander(fetcher Fetcher, opts ...ExpanderOption) *Expander {
	e := &Expander{
		fetcher:     fetcher,
		logger:      zerolog.Nop(),
		customDir:   constants.DefaultCustomDir,
		outputDir:   constants.DefaultOutputDir,
		concurrency: constants.DefaultDownloadConcurrency,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpandAll expands every .list file in the custom directory into the
// output directory, in name order. Download failures degrade to zero
// rules for the affected reference and are recorded in the report; only
// filesystem problems fail the run.
func (e *Expander) ExpandAll(ctx context.Context) (*Report, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(e.customDir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", e.customDir, rserrors.ErrDirectoryAccess)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.RuleListExtension) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	if len(names) == 0 {
		return nil, fmt.Errorf("%s: %w", e.customDir, rserrors.ErrNoRuleFiles)
	}

	if err := os.MkdirAll(e.outputDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating %s: %w", e.outputDir, err)
	}

	report := &Report{}
	for _, name := range names {
		fr, err := e.expandFile(ctx, name)
		if err != nil {
			return nil, rserrors.Wrapf(err, "expanding %s", name)
		}
		report.Files = append(report.Files, fr)
	}

	return report, nil
}

// segment is a contiguous piece of an expanded file: either literal
// rules carried over from the source, or the download slot for one
// RULE-SET reference. Keeping segments in source order lets downloads
// fan out while the output stays deterministic.
type segment struct {
	rules []string
	url   string // non-empty for RULE-SET segments
}

// expandFile expands one list file and writes the result.
func (e *Expander) expandFile(ctx context.Context, name string) (FileReport, error) {
	fr := FileReport{Name: name}

	data, err := os.ReadFile(filepath.Join(e.customDir, name)) //#nosec G304 -- name comes from our own directory listing
	if err != nil {
		return fr, err
	}

	segments, skipped := e.parseSegments(string(data))
	fr.Skipped = skipped

	e.downloadSegments(ctx, name, segments, &fr)

	var rules []string
	for _, seg := range segments {
		rules = append(rules, seg.rules...)
	}
	fr.Rules = len(rules)

	if err := e.writeExpanded(name, fr, rules); err != nil {
		return fr, err
	}

	e.logger.Info().
		Str("file", name).
		Int("rule_sets", fr.RuleSets).
		Int("rules", fr.Rules).
		Int("failures", len(fr.Failures)).
		Msg("expanded rule list")

	return fr, nil
}

// parseSegments splits the source file into in-order segments and counts
// skipped lines.
func (e *Expander) parseSegments(content string) ([]segment, int) {
	var segments []segment
	skipped := 0
	current := segment{}

	flush := func() {
		if len(current.rules) > 0 {
			segments = append(segments, current)
		}
		current = segment{}
	}

	for _, line := range strings.Split(content, "\n") {
		if IsComment(line) {
			continue
		}

		rule, ok := Parse(line)
		if !ok {
			// A rule line needs at least TYPE,value; anything else has
			// no meaning in the expanded output.
			skipped++
			continue
		}

		if rule.IsRuleSet() {
			flush()
			segments = append(segments, segment{url: rule.Value})
			continue
		}

		current.rules = append(current.rules, rule.Normalize())
	}
	flush()

	return segments, skipped
}

// downloadSegments fills every RULE-SET segment's rules in place,
// fanning downloads out with bounded concurrency.
func (e *Expander) downloadSegments(ctx context.Context, name string, segments []segment, fr *FileReport) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	type outcome struct {
		idx   int
		rules []string
		err   error
	}
	results := make(chan outcome)

	go func() {
		for i := range segments {
			if segments[i].url == "" {
				continue
			}
			idx := i
			url := segments[i].url
			g.Go(func() error {
				e.logger.Debug().
					Str("file", name).
					Str("url", logging.SafeValue("url", url)).
					Msg("downloading rule set")
				lines, err := e.fetcher.Fetch(gctx, url)
				results <- outcome{idx: idx, rules: lines, err: err}
				// Failures are reported, not fatal: the original list
				// still expands with the remaining references.
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			fr.Failures = append(fr.Failures, segments[res.idx].url)
			e.logger.Warn().
				Err(res.err).
				Str("file", name).
				Str("url", logging.SafeValue("url", segments[res.idx].url)).
				Msg("rule-set download failed")
			continue
		}
		segments[res.idx].rules = res.rules
		fr.RuleSets++
	}

	sort.Strings(fr.Failures)
}

// writeExpanded writes the header and rules for one expanded file.
func (e *Expander) writeExpanded(name string, fr FileReport, rules []string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by rulesync, expanded from: %s\n", name)
	fmt.Fprintf(&b, "# Expanded %d RULE-SET reference(s)\n", fr.RuleSets)
	fmt.Fprintf(&b, "# Total rules: %d\n\n", len(rules))
	for _, rule := range rules {
		b.WriteString(rule)
		b.WriteByte('\n')
	}

	outPath := filepath.Join(e.outputDir, name)
	if err := os.WriteFile(outPath, []byte(b.String()), 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}
	return nil
}
