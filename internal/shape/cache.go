package shape

import (
	"math"
	"math/rand/v2"
)

type cacheKey struct {
	kind   Kind
	radius float64
}

// Cache memoizes generated point sets by kind and radius for a fixed
// particle count. Entries for a radius are dropped once another radius is
// requested, since the old scale is never shown again until it is picked anew.
type Cache struct {
	count   int
	rng     *rand.Rand
	entries map[cacheKey]PointSet
	radius  float64
}

func NewCache(count int, rng *rand.Rand) *Cache {
	return &Cache{
		count:   count,
		rng:     rng,
		entries: make(map[cacheKey]PointSet),
	}
}

// Get returns the cached set for kind at radius, generating it on first use.
// Callers must not modify the returned slice.
func (c *Cache) Get(kind Kind, radius float64) PointSet {
	if radius <= 0 || math.IsNaN(radius) {
		radius = DefaultRadius
	}
	if radius != c.radius {
		clear(c.entries)
		c.radius = radius
	}

	key := cacheKey{kind: kind, radius: radius}
	if pts, ok := c.entries[key]; ok {
		return pts
	}
	pts := Generate(kind, c.count, radius, c.rng)
	c.entries[key] = pts
	return pts
}

// Len reports how many sets are currently memoized.
func (c *Cache) Len() int { return len(c.entries) }
