package mock

import (
	"context"

	"github.com/fwojciec/docmap"
)

var _ docmap.URLSource = (*URLSource)(nil)

// URLSource is a mock implementation of docmap.URLSource.
type URLSource struct {
	DiscoverFn func(ctx context.Context, sourceURL string) ([]string, error)
}

func (s *URLSource) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return s.DiscoverFn(ctx, sourceURL)
}

var _ docmap.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of docmap.LinkSelector.
type LinkSelector struct {
	ExtractLinksFn func(html string, baseURL string) ([]string, error)
}

func (s *LinkSelector) ExtractLinks(html string, baseURL string) ([]string, error) {
	return s.ExtractLinksFn(html, baseURL)
}
