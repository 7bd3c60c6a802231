// Package mock provides hand-rolled mock implementations of the draftpipe
// interfaces for testing.
package mock

import (
	"context"

	"github.com/pkorzen/draftpipe"
)

var _ draftpipe.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of draftpipe.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error

	// FetchCalls counts invocations of Fetch.
	FetchCalls int
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.FetchCalls++
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
