// Package crawl discovers the pages of a documentation site by following
// same-site links breadth first.
package crawl

import (
	"context"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/fwojciec/docmap"
)

// Default crawl budgets.
const (
	DefaultDepth    = 2
	DefaultMaxPages = 50
)

// skippedExtensions are path suffixes of assets that are never crawled.
var skippedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".ico":  true,
	".css":  true,
	".js":   true,
	".pdf":  true,
}

var _ docmap.URLSource = (*Crawler)(nil)

// Crawler walks a documentation site from a start URL.
type Crawler struct {
	Fetcher docmap.Fetcher
	Links   docmap.LinkSelector

	// RateLimiter, if set, is waited on with each page URL before its fetch.
	RateLimiter docmap.DomainLimiter

	// RetryDelays are the waits between fetch attempts. Nil means one attempt.
	RetryDelays []time.Duration

	// Logf, if set, receives retry messages.
	Logf LogFunc

	// Depth and MaxPages are the budgets used by Discover.
	Depth    int
	MaxPages int
}

// Discover crawls sourceURL with the crawler's configured budgets.
func (c *Crawler) Discover(ctx context.Context, sourceURL string) ([]string, error) {
	return c.Crawl(ctx, sourceURL, c.Depth, c.MaxPages)
}

// Crawl visits startURL and the same-site pages reachable from it.
//
// Links are followed while their remaining depth stays positive, so depth 1
// visits only startURL. At most maxPages URLs are visited, counting pages
// whose fetch failed. Only links whose normalized form starts with the
// normalized startURL are followed. The returned slice holds the normalized
// URLs of successfully fetched pages in visit order.
//
// If ctx is canceled the pages gathered so far are returned with ctx.Err().
func (c *Crawler) Crawl(ctx context.Context, startURL string, depth, maxPages int) ([]string, error) {
	start := docmap.NormalizeURL(startURL)
	u, err := url.Parse(start)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, docmap.Errorf(docmap.EINVALID, "invalid start URL %q", startURL)
	}

	if depth <= 0 || maxPages <= 0 {
		return nil, nil
	}

	frontier := NewFrontier()
	frontier.Push(start, depth)

	visited := make(map[string]struct{})
	var pages []string

	for {
		if err := ctx.Err(); err != nil {
			return pages, err
		}

		pageURL, remaining, ok := frontier.Pop()
		if !ok {
			break
		}
		if len(visited) >= maxPages {
			break
		}
		if _, done := visited[pageURL]; done {
			continue
		}
		visited[pageURL] = struct{}{}

		html, err := c.fetch(ctx, pageURL)
		if err != nil {
			if ctx.Err() != nil {
				return pages, ctx.Err()
			}
			continue
		}
		pages = append(pages, pageURL)

		next := remaining - 1
		if next <= 0 {
			continue
		}

		links, err := c.Links.ExtractLinks(html, pageURL)
		if err != nil {
			continue
		}
		for _, link := range links {
			normalized := docmap.NormalizeURL(link)
			if _, done := visited[normalized]; done {
				continue
			}
			if !eligible(normalized, start) {
				continue
			}
			frontier.Push(normalized, next)
		}
	}

	return pages, nil
}

// fetch waits on the rate limiter and fetches pageURL with retries.
func (c *Crawler) fetch(ctx context.Context, pageURL string) (string, error) {
	if c.RateLimiter != nil {
		if err := c.RateLimiter.Wait(ctx, pageURL); err != nil {
			return "", err
		}
	}
	return FetchWithRetryDelays(ctx, pageURL, c.Fetcher.Fetch, c.Logf, c.RetryDelays)
}

// eligible reports whether a normalized link stays under prefix and does
// not point at a static asset.
func eligible(link, prefix string) bool {
	if !strings.HasPrefix(link, prefix) {
		return false
	}
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	return !skippedExtensions[path.Ext(strings.ToLower(u.Path))]
}
