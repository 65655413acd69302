package crawl

import (
	"context"
	"net/url"
	"sync"

	"github.com/fwojciec/docmap"
	"golang.org/x/time/rate"
)

var _ docmap.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter paces page fetches with one token bucket per host.
// A zero limiter never blocks.
type DomainLimiter struct {
	mu    sync.Mutex
	hosts map[string]*rate.Limiter
	limit rate.Limit
}

// NewDomainLimiter returns a limiter allowing rps fetches per second to each
// host, without bursts. rps <= 0 disables limiting.
func NewDomainLimiter(rps float64) *DomainLimiter {
	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	return &DomainLimiter{
		hosts: make(map[string]*rate.Limiter),
		limit: limit,
	}
}

// Wait blocks until the host of pageURL may be fetched again.
func (d *DomainLimiter) Wait(ctx context.Context, pageURL string) error {
	if d.limit == rate.Inf {
		return ctx.Err()
	}
	return d.limiter(HostKey(pageURL)).Wait(ctx)
}

func (d *DomainLimiter) limiter(host string) *rate.Limiter {
	d.mu.Lock()
	defer d.mu.Unlock()
	l, ok := d.hosts[host]
	if !ok {
		l = rate.NewLimiter(d.limit, 1)
		d.hosts[host] = l
	}
	return l
}

// HostKey returns the host (with port) of the normalized form of pageURL.
// Unparseable URLs share the empty key.
func HostKey(pageURL string) string {
	u, err := url.Parse(docmap.NormalizeURL(pageURL))
	if err != nil {
		return ""
	}
	return u.Host
}
