package library

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strings"
	"sync"
)

// Index looks up a library movie by the normalized form of its file path.
// The index owns the mapping from normalized path to movie identity; favsync
// supplies already-normalized paths and never mutates the catalog through
// this interface.
type Index interface {
	FindByNormalizedPath(ctx context.Context, normalizedPath string) (int64, bool, error)
}

// ProbeResult is the three-valued outcome of a reachability check.
type ProbeResult int

const (
	ProbeUnknown ProbeResult = iota
	ProbeReachable
	ProbeMissing
)

// Prober checks whether a favorite's file target is reachable. Probing runs
// before the commit transaction so slow storage can never stall it.
type Prober interface {
	// Probe receives the path as written in the favorite, not the
	// normalized form, so case-sensitive filesystems resolve correctly.
	Probe(ctx context.Context, path string) ProbeResult
}

// StatProber resolves local paths with os.Stat and reports Unknown for
// scheme-prefixed targets (smb, nfs, upnp, ...), which would require a
// network round trip to answer.
type StatProber struct{}

func (StatProber) Probe(_ context.Context, path string) ProbeResult {
	path = strings.TrimSpace(path)
	if path == "" || strings.Contains(path, "://") {
		return ProbeUnknown
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ProbeMissing
		}
		return ProbeUnknown
	}
	return ProbeReachable
}

// NoopProber never answers; used when reachability probing is disabled.
type NoopProber struct{}

func (NoopProber) Probe(context.Context, string) ProbeResult { return ProbeUnknown }

// CachedIndex memoizes lookups against an inner Index for the duration of one
// scan. Favorites pointing at the same path hit the catalog once; memoization
// never changes observable matching results.
type CachedIndex struct {
	inner Index

	mu      sync.Mutex
	results map[string]cachedLookup
}

type cachedLookup struct {
	id    int64
	found bool
}

// NewCachedIndex wraps inner with per-path memoization.
func NewCachedIndex(inner Index) *CachedIndex {
	return &CachedIndex{
		inner:   inner,
		results: make(map[string]cachedLookup),
	}
}

func (c *CachedIndex) FindByNormalizedPath(ctx context.Context, normalizedPath string) (int64, bool, error) {
	c.mu.Lock()
	if hit, ok := c.results[normalizedPath]; ok {
		c.mu.Unlock()
		return hit.id, hit.found, nil
	}
	c.mu.Unlock()

	id, found, err := c.inner.FindByNormalizedPath(ctx, normalizedPath)
	if err != nil {
		return 0, false, err
	}

	c.mu.Lock()
	c.results[normalizedPath] = cachedLookup{id: id, found: found}
	c.mu.Unlock()
	return id, found, nil
}
