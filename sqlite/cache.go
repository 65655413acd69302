package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/xxhash"
)

var _ docmap.Cache = (*Cache)(nil)

// Cache implements docmap.Cache on the inferences table.
type Cache struct {
	db *DB
}

// NewCache creates a new Cache.
func NewCache(db *DB) *Cache {
	return &Cache{db: db}
}

// Get returns the records stored for text, or ENOTFOUND.
func (c *Cache) Get(ctx context.Context, text string) ([]docmap.ModuleRecord, error) {
	key := xxhash.Key(text)

	var data string
	err := c.db.QueryRowContext(ctx, `
		SELECT records FROM inferences WHERE key = ?
	`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "no cached result for %s", key)
	}
	if err != nil {
		return nil, err
	}

	var records []docmap.ModuleRecord
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, docmap.Errorf(docmap.EINTERNAL, "corrupted cache entry %s: %v", key, err)
	}
	return records, nil
}

// Put stores records for text, replacing any previous entry.
func (c *Cache) Put(ctx context.Context, text string, records []docmap.ModuleRecord) error {
	if records == nil {
		records = []docmap.ModuleRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return docmap.Errorf(docmap.EINTERNAL, "encode cache entry: %v", err)
	}

	_, err = c.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO inferences (key, records, created_at)
		VALUES (?, ?, ?)
	`, xxhash.Key(text), string(data), time.Now().UTC().Format(time.RFC3339))
	return err
}

// Len returns the number of cached entries.
func (c *Cache) Len(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM inferences`).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
