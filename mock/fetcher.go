package mock

import (
	"context"

	"github.com/fwojciec/docmap"
)

var _ docmap.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of docmap.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ docmap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of docmap.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, pageURL string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	return l.WaitFn(ctx, pageURL)
}
