// Copyright 2026 The Shopdash Authors
// SPDX-License-Identifier: MIT

package dataset

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/shopdash/shopdash/internal/testable"
)

// Cache memoizes a Dataset loaded from a single path. Concurrent callers that
// miss the memo share one load. Failed loads are not memoized.
type Cache struct {
	path       string
	fs         testable.FileSystem
	autoReload bool

	group singleflight.Group

	mu      sync.RWMutex
	ds      *Dataset
	modTime time.Time
	loads   int
}

// CacheOption configures a Cache.
type CacheOption func(*Cache)

// WithFileSystem overrides the file system used to stat and open the dataset.
func WithFileSystem(fsys testable.FileSystem) CacheOption {
	return func(c *Cache) {
		c.fs = fsys
	}
}

// WithAutoReload makes Get reload the dataset when the file's modification
// time differs from the memoized one.
func WithAutoReload(enabled bool) CacheOption {
	return func(c *Cache) {
		c.autoReload = enabled
	}
}

// NewCache returns an empty memo for the CSV at path.
func NewCache(path string, opts ...CacheOption) *Cache {
	c := &Cache{
		path: path,
		fs:   testable.DefaultFS,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Path returns the dataset path this cache reads.
func (c *Cache) Path() string { return c.path }

// Get returns the memoized dataset, loading it on first use. Concurrent
// callers share one load, which runs detached from any single caller's
// cancellation; a caller whose ctx ends stops waiting and gets ctx.Err().
func (c *Cache) Get(ctx context.Context) (*Dataset, error) {
	if ds := c.current(); ds != nil {
		return ds, nil
	}

	loadCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(c.path, func() (any, error) {
		// Another caller may have finished a load since current() missed.
		if ds := c.current(); ds != nil {
			return ds, nil
		}
		return c.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		return r.Val.(*Dataset), nil
	}
}

// current returns the memoized dataset if it is still valid, or nil.
func (c *Cache) current() *Dataset {
	c.mu.RLock()
	ds, modTime := c.ds, c.modTime
	c.mu.RUnlock()

	if ds == nil || !c.autoReload {
		return ds
	}
	info, err := c.fs.Stat(c.path)
	if err == nil && info.ModTime().Equal(modTime) {
		return ds
	}
	slog.Debug("dataset changed on disk, reloading", "path", c.path)
	return nil
}

// Invalidate drops the memoized dataset so the next Get reloads it.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ds = nil
	c.modTime = time.Time{}
}

// Loads returns how many successful loads the cache has performed.
func (c *Cache) Loads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loads
}

func (c *Cache) load(ctx context.Context) (*Dataset, error) {
	start := time.Now()

	var modTime time.Time
	if info, err := c.fs.Stat(c.path); err == nil {
		modTime = info.ModTime()
	}

	ds, err := LoadFS(ctx, c.fs, c.path)
	if err != nil {
		slog.Warn("dataset load failed", "path", c.path, "error", err)
		return nil, err
	}

	c.mu.Lock()
	c.ds = ds
	c.modTime = modTime
	c.loads++
	c.mu.Unlock()

	slog.Info("dataset loaded", "path", c.path, "rows", ds.Len(), "duration", time.Since(start).Round(time.Millisecond))
	return ds, nil
}
