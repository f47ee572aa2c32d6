package cache

import (
	"context"
	"time"

	"github.com/coursehub/coursehub/internal/domain/course"
)

// The catalog is immutable from the app's perspective (only the seeder
// writes it), so a short TTL read cache in front of GET /api/courses is
// safe. Staleness after a reseed is bounded by the TTL.

const catalogKey = "catalog:courses"

type MemoryCatalog struct {
	c *Cache
}

func NewMemoryCatalog(ttl time.Duration) *MemoryCatalog {
	return &MemoryCatalog{c: New(ttl)}
}

func (m *MemoryCatalog) Get(ctx context.Context) ([]course.Course, bool) {
	v, ok := m.c.Get(catalogKey)

	if !ok {
		return nil, false
	}

	courses, ok := v.([]course.Course)

	return courses, ok
}

func (m *MemoryCatalog) Set(ctx context.Context, courses []course.Course) {
	m.c.Set(catalogKey, courses)
}
