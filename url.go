package docmap

import (
	"context"
	"net/url"
)

// NormalizeURL returns the canonical form of rawURL used for crawl identity:
// scheme, user info, host and path only. Query string and fragment are
// dropped, so URLs differing only in those normalize identically.
// Input that cannot be parsed is returned unchanged.
func NormalizeURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	canonical := url.URL{
		Scheme:  u.Scheme,
		Opaque:  u.Opaque,
		User:    u.User,
		Host:    u.Host,
		Path:    u.Path,
		RawPath: u.RawPath,
	}
	return canonical.String()
}

// URLSource discovers the documentation pages of a site.
type URLSource interface {
	// Discover returns the normalized URLs of pages reachable from sourceURL.
	Discover(ctx context.Context, sourceURL string) ([]string, error)
}

// LinkSelector extracts outgoing links from HTML.
type LinkSelector interface {
	// ExtractLinks parses HTML and returns the absolute URLs of its links.
	// The baseURL is used to resolve relative URLs.
	ExtractLinks(html string, baseURL string) ([]string, error)
}
