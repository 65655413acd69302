// Package slog provides logging decorators for docmap services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmap"
)

var _ docmap.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher logs every page fetch of a crawl or extraction pass.
type LoggingFetcher struct {
	next   docmap.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next docmap.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the page URL, body size and duration. Failures also carry the
// docmap error code so invalid URLs stand apart from network errors.
func (f *LoggingFetcher) Fetch(ctx context.Context, pageURL string) (html string, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", pageURL,
			"bytes", len(html),
			"duration", time.Since(begin),
		}
		if err != nil {
			attrs = append(attrs, "code", docmap.ErrorCode(err), "err", err)
		}
		f.logger.Info("fetch", attrs...)
	}(time.Now())
	return f.next.Fetch(ctx, pageURL)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
