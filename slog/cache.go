package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/xxhash"
)

// Ensure LoggingCache implements docmap.Cache.
var _ docmap.Cache = (*LoggingCache)(nil)

// LoggingCache wraps a Cache with logging. Entries are identified by key.
type LoggingCache struct {
	next   docmap.Cache
	logger *slog.Logger
}

// NewLoggingCache creates a new LoggingCache.
func NewLoggingCache(next docmap.Cache, logger *slog.Logger) *LoggingCache {
	return &LoggingCache{next: next, logger: logger}
}

// Get delegates to the wrapped cache and logs whether the entry was found.
func (c *LoggingCache) Get(ctx context.Context, text string) (records []docmap.ModuleRecord, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"key", xxhash.Key(text),
			"hit", err == nil,
			"records", len(records),
			"duration", time.Since(begin),
		}
		if err != nil && docmap.ErrorCode(err) != docmap.ENOTFOUND {
			attrs = append(attrs, "err", err)
		}
		c.logger.Info("cache get", attrs...)
	}(time.Now())
	return c.next.Get(ctx, text)
}

// Put delegates to the wrapped cache and logs the write.
func (c *LoggingCache) Put(ctx context.Context, text string, records []docmap.ModuleRecord) (err error) {
	defer func(begin time.Time) {
		c.logger.Info("cache put",
			"key", xxhash.Key(text),
			"records", len(records),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Put(ctx, text, records)
}
