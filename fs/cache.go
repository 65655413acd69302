// Package fs provides file-based storage for inference results and output.
package fs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/docmap"
	"github.com/fwojciec/docmap/bloom"
	"github.com/fwojciec/docmap/xxhash"
)

// Bloom filter sizing and file layout for cache entries.
const (
	cacheExpectedKeys      = 100000
	cacheFalsePositiveRate = 0.01
	cacheFileExt           = ".json"
	cacheFilePerm          = 0o644
	cacheDirPerm           = 0o755
)

var _ docmap.Cache = (*Cache)(nil)

// Cache stores inference results as one JSON file per chunk hash.
// A Bloom filter of keys on disk answers definite misses without
// touching the filesystem. It is safe for concurrent use.
type Cache struct {
	dir string

	mu   sync.Mutex
	keys *bloom.Filter
}

// NewCache returns a Cache rooted at dir. Call Open before use.
func NewCache(dir string) *Cache {
	return &Cache{dir: dir}
}

// Open creates the cache directory and loads the keys already stored in it.
func (c *Cache) Open() error {
	if err := os.MkdirAll(c.dir, cacheDirPerm); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return fmt.Errorf("read cache dir: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.keys = bloom.NewFilter(cacheExpectedKeys, cacheFalsePositiveRate)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, cacheFileExt) {
			continue
		}
		c.keys.Add(strings.TrimSuffix(name, cacheFileExt))
	}
	return nil
}

// Get returns the records stored for text, or ENOTFOUND.
func (c *Cache) Get(ctx context.Context, text string) ([]docmap.ModuleRecord, error) {
	key := xxhash.Key(text)

	c.mu.Lock()
	maybe := c.keys == nil || c.keys.Test(key)
	c.mu.Unlock()
	if !maybe {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "no cached result for %s", key)
	}

	data, err := os.ReadFile(c.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, docmap.Errorf(docmap.ENOTFOUND, "no cached result for %s", key)
	} else if err != nil {
		return nil, docmap.Errorf(docmap.EINTERNAL, "read cache entry %s: %v", key, err)
	}

	var records []docmap.ModuleRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, docmap.Errorf(docmap.EINTERNAL, "corrupted cache entry %s: %v", key, err)
	}
	return records, nil
}

// Put stores records for text. The file is written to a temporary name
// and renamed into place so readers never observe a partial entry.
func (c *Cache) Put(ctx context.Context, text string, records []docmap.ModuleRecord) error {
	key := xxhash.Key(text)

	if records == nil {
		records = []docmap.ModuleRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return docmap.Errorf(docmap.EINTERNAL, "encode cache entry %s: %v", key, err)
	}

	if err := writeFileAtomic(c.dir, c.path(key), data); err != nil {
		return docmap.Errorf(docmap.EINTERNAL, "write cache entry %s: %v", key, err)
	}

	c.mu.Lock()
	if c.keys != nil {
		c.keys.Add(key)
	}
	c.mu.Unlock()
	return nil
}

// Len returns the approximate number of cached entries, estimated from the
// Bloom filter rather than by listing the directory.
func (c *Cache) Len(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.keys == nil {
		return 0, docmap.Errorf(docmap.EINTERNAL, "cache not open")
	}
	return int(c.keys.EstimatedCount()), nil
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key+cacheFileExt)
}

// writeFileAtomic writes data to a temp file in dir and renames it to path.
func writeFileAtomic(dir, path string, data []byte) error {
	if err := os.MkdirAll(dir, cacheDirPerm); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), cacheFilePerm); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
