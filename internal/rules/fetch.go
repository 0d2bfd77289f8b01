// Package rules implements parsing and expansion of proxy rule list files.
// This file implements downloading of remote RULE-SET lists.
package rules

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ruleforge/rulesync/internal/constants"
	"github.com/ruleforge/rulesync/internal/ctxutil"
	rserrors "github.com/ruleforge/rulesync/internal/errors"
)

// maxRuleSetBytes caps a single remote list to keep a misconfigured URL
// (or a hostile server) from exhausting memory.
const maxRuleSetBytes = 32 << 20

// Fetcher downloads a remote rule list and returns its rule lines with
// comments and blanks stripped.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]string, error)
}

// HTTPFetcher implements Fetcher over plain HTTP GET.
type HTTPFetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// FetcherOption configures an HTTPFetcher.
type FetcherOption func(*HTTPFetcher)

// WithHTTPClient sets the underlying client. Tests use this with
// httptest servers.
func WithHTTPClient(c *http.Client) FetcherOption {
	return func(f *HTTPFetcher) {
		f.client = c
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) FetcherOption {
	return func(f *HTTPFetcher) {
		f.timeout = d
	}
}

// NewHTTPFetcher creates an HTTPFetcher with the default client and
// download timeout.
func NewHTTPFetcher(opts ...FetcherOption) *HTTPFetcher {
	f := &HTTPFetcher{
		client:   http.DefaultClient,
		timeout:  constants.DefaultDownloadTimeout,
		maxBytes: maxRuleSetBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the list at url and returns its rule lines.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]string, error) {
	if err := ctxutil.Canceled(ctx); err != nil {
		return nil, err
	}
	if url == "" {
		return nil, fmt.Errorf("rule-set url: %w", rserrors.ErrEmptyValue)
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rserrors.ErrRuleSetDownload, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", rserrors.ErrRuleSetDownload, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", rserrors.ErrRuleSetDownload, resp.StatusCode)
	}

	var lines []string
	// Read one byte past the cap so an oversized body is detected
	// rather than silently truncated mid-rule.
	body := &countingReader{r: io.LimitReader(resp.Body, f.maxBytes+1)}
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		line := scanner.Text()
		if IsComment(line) {
			continue
		}
		lines = append(lines, strings.TrimSpace(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", rserrors.ErrRuleSetDownload, err)
	}
	if body.n > f.maxBytes {
		return nil, fmt.Errorf("%w: list exceeds %d byte limit", rserrors.ErrRuleSetDownload, f.maxBytes)
	}

	return lines, nil
}

// countingReader tracks how many bytes passed through.
type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

// Ensure HTTPFetcher implements Fetcher.
var _ Fetcher = (*HTTPFetcher)(nil)
