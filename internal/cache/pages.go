package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

const pageKeyPrefix = "page:"

// PageCache stores rendered HTML by request path. Backend errors are logged
// and treated as misses: a broken cache must never break a page.
//
// Every invalidation bumps a generation counter. A page rendered from data
// read before an invalidation is stale and PutIfCurrent drops it.
type PageCache struct {
	cache  Cache
	logger *slog.Logger

	// mu orders generation checks in PutIfCurrent against bumps.
	mu  sync.RWMutex
	gen uint64
}

// NewPageCache wraps c.
func NewPageCache(c Cache, logger *slog.Logger) *PageCache {
	return &PageCache{cache: c, logger: logger}
}

// Backend names the underlying cache.
func (p *PageCache) Backend() string {
	return p.cache.Name()
}

// Generation returns the current invalidation generation. Capture it before
// loading the data a page is rendered from.
func (p *PageCache) Generation() uint64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.gen
}

// Get returns the cached body for path.
func (p *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	body, err := p.cache.Get(ctx, pageKeyPrefix+path)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			p.logger.Warn("page cache read failed", "path", path, "error", err)
		}
		return nil, false
	}
	return body, true
}

// Put stores body for path with the default TTL.
func (p *PageCache) Put(ctx context.Context, path string, body []byte) {
	if err := p.cache.Set(ctx, pageKeyPrefix+path, body, 0); err != nil {
		p.logger.Warn("page cache write failed", "path", path, "error", err)
	}
}

// PutIfCurrent stores body only if no invalidation happened since gen was
// read. It reports whether the body was stored.
func (p *PageCache) PutIfCurrent(ctx context.Context, path string, body []byte, gen uint64) bool {
	// The read lock is held across the write so a concurrent invalidation
	// either sees this entry and deletes it or bumps first and wins here.
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.gen != gen {
		p.logger.Debug("page changed while rendering, not caching", "path", path)
		return false
	}
	p.Put(ctx, path, body)
	return true
}

func (p *PageCache) bump() {
	p.mu.Lock()
	p.gen++
	p.mu.Unlock()
}

// Invalidate drops the given paths.
func (p *PageCache) Invalidate(ctx context.Context, paths ...string) {
	p.bump()
	for _, path := range paths {
		if err := p.cache.Delete(ctx, pageKeyPrefix+path); err != nil {
			p.logger.Warn("page cache invalidation failed", "path", path, "error", err)
		}
	}
}

// InvalidatePrefix drops every path starting with prefix.
func (p *PageCache) InvalidatePrefix(ctx context.Context, prefix string) {
	p.bump()
	if err := p.cache.DeleteByPrefix(ctx, pageKeyPrefix+prefix); err != nil {
		p.logger.Warn("page cache invalidation failed", "prefix", prefix, "error", err)
	}
}
