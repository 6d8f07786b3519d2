package dnscache

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Pesteves2002/DNS-Client/internal/dns/common/clock"
	"github.com/Pesteves2002/DNS-Client/internal/dns/domain"
	"github.com/Pesteves2002/DNS-Client/internal/dns/services/resolver"
)

// entry pairs an answer set with the instant the whole set expires. The
// shortest-lived record governs the entry: serving a partially expired
// answer would hand the caller records the response itself marked stale.
type entry struct {
	records   []domain.ResourceRecord
	expiresAt time.Time
}

// dnsCache is an in-memory TTL-aware cache using an LRU strategy to store
// resolved answers. Each key holds the complete answer section of one
// response, since a single question often resolves to multiple records.
type dnsCache struct {
	lru   *lru.Cache[string, entry]
	clock clock.Clock
}

// New returns a new dnsCache instance of the given size using an LRU backing
// store. A nil clock falls back to the system time.
func New(size int, clk clock.Clock) (*dnsCache, error) {
	if clk == nil {
		clk = clock.RealClock{}
	}
	cache, err := lru.New[string, entry](size)
	if err != nil {
		return nil, err
	}
	return &dnsCache{lru: cache, clock: clk}, nil
}

// Set stores the answer set under the given question key, replacing any
// previous entry. Empty sets are ignored, and sets containing an already
// expired record are not stored at all: a zero-TTL record marks the whole
// answer as uncacheable.
func (c *dnsCache) Set(key string, records []domain.ResourceRecord) {
	if len(records) == 0 {
		return
	}
	expiresAt := records[0].ExpiresAt()
	for _, record := range records[1:] {
		if record.ExpiresAt().Before(expiresAt) {
			expiresAt = record.ExpiresAt()
		}
	}
	if !expiresAt.After(c.clock.Now()) {
		return
	}
	c.lru.Add(key, entry{records: records, expiresAt: expiresAt})
}

// Get retrieves the answer set for the key if present and not expired.
// Expired entries are evicted on access.
func (c *dnsCache) Get(key string) ([]domain.ResourceRecord, bool) {
	e, found := c.lru.Get(key)
	if !found {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		c.lru.Remove(key)
		return nil, false
	}
	return e.records, true
}

// Delete removes the entry for the given key from the cache.
func (c *dnsCache) Delete(key string) {
	c.lru.Remove(key)
}

// Len returns the number of cache entries (keys) currently stored in the cache.
// Note: Each entry may contain multiple resource records.
func (c *dnsCache) Len() int {
	return c.lru.Len()
}

// Keys returns a slice of all current cache keys.
func (c *dnsCache) Keys() []string {
	return c.lru.Keys()
}

var _ resolver.Cache = (*dnsCache)(nil)
