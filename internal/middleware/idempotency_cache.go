package middleware

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// cachedResponse is a replayable cart mutation response.
type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// idempotencyCache remembers completed responses for a TTL and tracks keys
// whose first request is still running.
type idempotencyCache struct {
	responses *expirable.LRU[string, *cachedResponse]

	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newIdempotencyCache(size int, ttl time.Duration) *idempotencyCache {
	if size <= 0 {
		size = DefaultIdempotencyCacheSize
	}
	return &idempotencyCache{
		responses: expirable.NewLRU[string, *cachedResponse](size, nil, ttl),
		inFlight:  make(map[string]struct{}),
	}
}

func (c *idempotencyCache) Get(key string) (*cachedResponse, bool) {
	return c.responses.Get(key)
}

func (c *idempotencyCache) Set(key string, resp *cachedResponse) {
	c.responses.Add(key, resp)
}

// begin claims key for a running request. It returns false when another
// request holds it.
func (c *idempotencyCache) begin(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, busy := c.inFlight[key]; busy {
		return false
	}
	c.inFlight[key] = struct{}{}
	return true
}

func (c *idempotencyCache) end(key string) {
	c.mu.Lock()
	delete(c.inFlight, key)
	c.mu.Unlock()
}

func (c *idempotencyCache) Len() int {
	return c.responses.Len()
}
