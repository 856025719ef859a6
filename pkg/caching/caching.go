// Package caching keeps fetched page markup on disk so re-running an
// analysis does not refetch. It belongs to the fetch layer; analysis and
// scoring never consult it.
package caching

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const entrySuffix = ".html"

// Cache is a file-based cache of raw HTML bodies keyed by URL, with a TTL.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates the cache directory if needed. A zero ttl makes every
// entry stale, so Get always misses.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key is the SHA-256 of the URL.
func (c *Cache) key(url string) string {
	return fmt.Sprintf("%x%s", sha256.Sum256([]byte(url)), entrySuffix)
}

// Get returns the cached body for url if present and fresh.
func (c *Cache) Get(url string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(url))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false
	}
	if time.Since(info.ModTime()) >= c.ttl {
		return nil, false
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores data for url.
func (c *Cache) Set(url string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(url))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// Prune removes expired entries and returns how many were deleted.
func (c *Cache) Prune() (int, error) {
	entries, err := os.ReadDir(c.path)
	if err != nil {
		return 0, fmt.Errorf("failed to read cache directory: %w", err)
	}

	removed := 0
	var errs []error
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != entrySuffix {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < c.ttl {
			continue
		}
		if err := os.Remove(filepath.Join(c.path, e.Name())); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if len(errs) > 0 {
		return removed, fmt.Errorf("failed to prune cache: %w", errors.Join(errs...))
	}
	return removed, nil
}
