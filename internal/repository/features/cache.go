// Package features memoizes per-note derived search features.
package features

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/notedex/internal/domain/note"
	"github.com/kailas-cloud/notedex/internal/domain/query"
	"github.com/kailas-cloud/notedex/internal/domain/semantic"
)

// tagger is the consumer interface for note-side profiling.
type tagger interface {
	ProfileNote(ctx context.Context, tags []string, body string) semantic.Profile
}

type entry struct {
	updatedAt time.Time
	facts     query.FactSheet
	profile   semantic.Profile
}

// Cache derives and memoizes note features keyed by note ID + update
// timestamp. A stale entry (older updatedAt) is recomputed on access;
// callers on the write path evict explicitly. Entries are replaced whole
// under the lock, so readers never observe a partial write.
type Cache struct {
	tagger     tagger
	cacheTotal *prometheus.CounterVec

	mu      sync.RWMutex
	entries map[string]entry
}

// New creates a feature cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(t tagger, cacheTotal *prometheus.CounterVec) *Cache {
	return &Cache{
		tagger:     t,
		cacheTotal: cacheTotal,
		entries:    make(map[string]entry),
	}
}

// Features returns the cached fact sheet and semantic profile for a note,
// recomputing on miss.
func (c *Cache) Features(ctx context.Context, n note.Note) (query.FactSheet, semantic.Profile) {
	c.mu.RLock()
	e, ok := c.entries[n.ID()]
	c.mu.RUnlock()

	if ok && e.updatedAt.Equal(n.UpdatedAt()) {
		c.incCache("hit")
		return e.facts, e.profile
	}
	c.incCache("miss")

	facts := query.FactsOf(&n)
	profile := c.tagger.ProfileNote(ctx, n.Tags(), n.Body())

	c.mu.Lock()
	c.entries[n.ID()] = entry{updatedAt: n.UpdatedAt(), facts: facts, profile: profile}
	c.mu.Unlock()

	return facts, profile
}

// Invalidate evicts a single note's features.
func (c *Cache) Invalidate(id string) {
	c.mu.Lock()
	delete(c.entries, id)
	c.mu.Unlock()
}

// InvalidateAll drops the entire cache (bulk corpus replace).
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	c.entries = make(map[string]entry)
	c.mu.Unlock()
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}
