// Package rod provides a draftpipe.Fetcher backed by headless Chrome for
// pages that only render their content through JavaScript (SPA shells are
// a common extraction failure mode for the plain HTTP fetcher).
package rod

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/pkorzen/draftpipe"
)

// DefaultFetchTimeout matches the plain HTTP fetcher's content timeout.
const DefaultFetchTimeout = 10 * time.Second

// Ensure Fetcher implements draftpipe.Fetcher at compile time.
var _ draftpipe.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves rendered HTML from URLs using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser *rod.Browser
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-fetch timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	l := launcher.New().Headless(true)
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill() // Clean up launched process on connection failure
		return nil, fmt.Errorf("connecting to browser: %w", err)
	}

	f := &Fetcher{
		browser: browser,
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// Fetch navigates to the URL, waits for the page to load, and returns the
// rendered HTML. Timeouts surface as ETIMEOUT, other browser failures as
// EUNAVAILABLE.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	page, err := f.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", draftpipe.Errorf(draftpipe.EUNAVAILABLE, "opening browser page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", classify(ctx, url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", classify(ctx, url, err)
	}

	html, err := page.HTML()
	if err != nil {
		return "", classify(ctx, url, err)
	}

	return html, nil
}

func classify(ctx context.Context, url string, err error) error {
	if ctx.Err() == context.DeadlineExceeded {
		return draftpipe.Errorf(draftpipe.ETIMEOUT, "rendered fetch timed out: %s", url)
	}
	return draftpipe.Errorf(draftpipe.EUNAVAILABLE, "rendered fetch failed for %s: %v", url, err)
}

// Close releases browser resources.
func (f *Fetcher) Close() error {
	return f.browser.Close()
}
