// Package cache keeps fetched station pages on disk for a while, so
// repeated runs inside the TTL skip the network entirely.
package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry is a cached page with its fetch time.
type Entry struct {
	HTML      string    `json:"html"`
	FetchedAt time.Time `json:"fetched_at"`
}

// Cache is a disk-based page cache keyed by URL.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex
}

// New creates a page cache under cacheDir. Entries older than ttl are
// treated as misses.
func New(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir: cacheDir,
		ttl: ttl,
	}, nil
}

// Get returns the cached page for a URL if it exists and is still fresh.
func (c *Cache) Get(url string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath(url))
	if err != nil {
		return "", false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return "", false
	}

	if time.Since(entry.FetchedAt) > c.ttl {
		return "", false
	}

	return entry.HTML, true
}

// Set stores a fetched page.
func (c *Cache) Set(url string, html string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		HTML:      html,
		FetchedAt: time.Now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath(url), data, 0644)
}

// Invalidate removes the cached page for a URL.
func (c *Cache) Invalidate(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath(url)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (c *Cache) filePath(url string) string {
	// Sanitize the URL to be filesystem-safe
	safeName := ""
	for _, r := range url {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			safeName += string(r)
		} else {
			safeName += "_"
		}
	}
	return filepath.Join(c.dir, safeName+".json")
}
