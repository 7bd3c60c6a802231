// Package http provides the HTTP implementation of draftpipe.Fetcher and
// the JSON job server that exposes the pipeline to callers.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/pkorzen/draftpipe"
)

// DefaultFetchTimeout is the default timeout for content fetches.
// Asset fetches (images etc.) typically use AssetFetchTimeout instead.
const (
	DefaultFetchTimeout = 10 * time.Second
	AssetFetchTimeout   = 30 * time.Second
)

// maxRedirects caps redirect chains. The original relied on the
// transport's default; we pick an explicit finite value.
const maxRedirects = 5

// userAgent is a fixed desktop-browser identity. Some sites block
// unrecognized clients outright; a browser UA reduces false negatives.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

const acceptHeader = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"

// Ensure Fetcher implements draftpipe.Fetcher at compile time.
var _ draftpipe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using plain HTTP requests.
// It does not execute JavaScript; use rod.Fetcher for pages that need
// rendering.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errors.New("too many redirects")
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the HTML content from the given URL. Failures are
// classified: ETIMEOUT when the deadline elapses, EUNAVAILABLE for
// transport errors and non-2xx responses.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", draftpipe.Errorf(draftpipe.EINVALID, "invalid fetch URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || isClientTimeout(err) {
			return "", draftpipe.Errorf(draftpipe.ETIMEOUT, "fetch timed out after %s: %s", f.timeout, url)
		}
		return "", draftpipe.Errorf(draftpipe.EUNAVAILABLE, "fetch failed for %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", draftpipe.Errorf(draftpipe.EUNAVAILABLE, "failed to fetch URL: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", draftpipe.Errorf(draftpipe.EUNAVAILABLE, "reading response from %s: %v", url, err)
	}

	return string(body), nil
}

// isClientTimeout detects http.Client timeouts, which surface as url.Error
// values with Timeout() == true rather than context.DeadlineExceeded.
func isClientTimeout(err error) bool {
	var t interface{ Timeout() bool }
	return errors.As(err, &t) && t.Timeout()
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
