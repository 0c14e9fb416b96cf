package nodeindex

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// DefaultCacheTTL is the default time-to-live for the cached index.
const DefaultCacheTTL = 24 * time.Hour

const cacheFileName = "node-index.cache.json"

// CachedSource wraps a Source and caches the release index locally, so
// repeated listings do not hit the network inside the TTL window.
type CachedSource struct {
	source   Source
	cacheDir string
	ttl      time.Duration
}

// cacheEntry stores releases along with their cache timestamp.
type cacheEntry struct {
	CachedAt time.Time `json:"cached_at"`
	Releases []Release `json:"releases"`
}

// DefaultCacheDir returns the per-user cache directory for the index.
func DefaultCacheDir() string {
	return filepath.Join(xdg.CacheHome, "nvman")
}

// NewCachedSource creates a Source that caches results from the
// underlying source.
func NewCachedSource(source Source, cacheDir string, ttl time.Duration) *CachedSource {
	if cacheDir == "" {
		cacheDir = DefaultCacheDir()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{source: source, cacheDir: cacheDir, ttl: ttl}
}

// Releases returns the cached index if still valid, otherwise fetches
// from the underlying source.
func (s *CachedSource) Releases(ctx context.Context) ([]Release, error) {
	if releases, err := s.loadFromCache(); err == nil {
		return releases, nil
	}

	releases, err := s.source.Releases(ctx)
	if err != nil {
		return nil, err
	}

	// Caching is best-effort.
	_ = s.saveToCache(releases)

	return releases, nil
}

// ForceRefresh drops the cache and fetches a fresh index.
func (s *CachedSource) ForceRefresh(ctx context.Context) ([]Release, error) {
	_ = os.Remove(s.cachePath())

	releases, err := s.source.Releases(ctx)
	if err != nil {
		return nil, err
	}

	_ = s.saveToCache(releases)

	return releases, nil
}

// ClearCache removes the cached index file.
func (s *CachedSource) ClearCache() error {
	err := os.Remove(s.cachePath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *CachedSource) cachePath() string {
	return filepath.Join(s.cacheDir, cacheFileName)
}

func (s *CachedSource) loadFromCache() ([]Release, error) {
	data, err := os.ReadFile(s.cachePath())
	if err != nil {
		return nil, err
	}

	var entry cacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, err
	}

	if time.Since(entry.CachedAt) > s.ttl {
		return nil, os.ErrNotExist // expired cache reads as missing
	}

	return entry.Releases, nil
}

func (s *CachedSource) saveToCache(releases []Release) error {
	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return err
	}

	data, err := json.Marshal(cacheEntry{CachedAt: time.Now(), Releases: releases})
	if err != nil {
		return err
	}

	return os.WriteFile(s.cachePath(), data, 0644)
}
