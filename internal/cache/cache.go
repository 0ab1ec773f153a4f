package cache

import (
	"sync/atomic"
	"time"

	"github.com/dimitrije/showcase-api/internal/models"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_cache_hits_total",
		Help: "Collection cache hits by resource.",
	}, []string{"resource"})
	cacheMissesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "showcase_cache_misses_total",
		Help: "Collection cache misses by resource.",
	}, []string{"resource"})
)

type entry struct {
	records []models.Record
	version uint64
}

// Cache holds the most recently fetched collection per resource. Every Set
// and Invalidate bumps a process-wide version stamp; readers never consult it,
// it only tags change notifications.
type Cache struct {
	lru     *expirable.LRU[string, entry]
	version atomic.Uint64
}

// New creates a cache holding at most size collections. A ttl of zero keeps
// entries until they are invalidated or evicted.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = len(models.Resources)
	}
	return &Cache{lru: expirable.NewLRU[string, entry](size, nil, ttl)}
}

// Get returns a copy of the cached collection.
func (c *Cache) Get(resource string) ([]models.Record, bool) {
	e, ok := c.lru.Get(resource)
	if !ok {
		cacheMissesTotal.WithLabelValues(resource).Inc()
		return nil, false
	}
	cacheHitsTotal.WithLabelValues(resource).Inc()
	return models.CloneRecords(e.records), true
}

func (c *Cache) Set(resource string, records []models.Record) uint64 {
	v := c.version.Add(1)
	c.lru.Add(resource, entry{records: models.CloneRecords(records), version: v})
	return v
}

// Invalidate drops the entry and returns the new version stamp.
func (c *Cache) Invalidate(resource string) uint64 {
	c.lru.Remove(resource)
	return c.version.Add(1)
}

func (c *Cache) Clear() {
	c.lru.Purge()
	c.version.Add(1)
}

func (c *Cache) Version() uint64 {
	return c.version.Load()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
