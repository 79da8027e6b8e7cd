package cache

import (
	"container/list"
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/guttosm/cargo-quote/internal/domain/model"
	"github.com/guttosm/cargo-quote/internal/metrics"
)

const defaultShards = 16

// ShardedQuoteCache is the in-process quote cache: an LRU with a TTL per
// entry, split into shards so concurrent quotes rarely share a lock.
type ShardedQuoteCache struct {
	shards []*lruShard
	mask   uint32
	ttl    time.Duration
	now    func() time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64

	stopCh   chan struct{}
	stopOnce sync.Once
}

type lruShard struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	items    map[string]*list.Element
}

type lruEntry struct {
	key       string
	value     model.QuoteResult
	expiresAt time.Time
}

// NewShardedQuoteCache holds about capacity quotes for ttl each. numShards
// is rounded up to a power of two.
func NewShardedQuoteCache(capacity int, ttl time.Duration, numShards int) *ShardedQuoteCache {
	if numShards <= 0 {
		numShards = defaultShards
	}
	n := 1
	for n < numShards {
		n <<= 1
	}

	perShard := capacity / n
	if perShard < 1 {
		perShard = 1
	}

	c := &ShardedQuoteCache{
		shards: make([]*lruShard, n),
		mask:   uint32(n - 1),
		ttl:    ttl,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	for i := range c.shards {
		c.shards[i] = &lruShard{
			capacity: perShard,
			order:    list.New(),
			items:    make(map[string]*list.Element, perShard),
		}
	}
	metrics.UpdateCacheMetrics(0, perShard*n)

	go c.sweepLoop()
	return c
}

func (c *ShardedQuoteCache) shard(key string) *lruShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return c.shards[h.Sum32()&c.mask]
}

// Get returns the quote stored under key unless it has expired.
func (c *ShardedQuoteCache) Get(_ context.Context, key string) (model.QuoteResult, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "miss")
		return model.QuoteResult{}, false
	}
	entry := el.Value.(*lruEntry)
	if !c.now().Before(entry.expiresAt) {
		s.remove(el)
		c.misses.Add(1)
		metrics.RecordCacheOperation("get", "expired")
		return model.QuoteResult{}, false
	}

	s.order.MoveToFront(el)
	c.hits.Add(1)
	metrics.RecordCacheOperation("get", "hit")
	return entry.value, true
}

// Set stores value under key, evicting the least recently used quote of
// the shard when it is full.
func (c *ShardedQuoteCache) Set(_ context.Context, key string, value model.QuoteResult) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)
	if el, ok := s.items[key]; ok {
		entry := el.Value.(*lruEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		s.order.MoveToFront(el)
		metrics.RecordCacheOperation("set", "success")
		return
	}

	s.items[key] = s.order.PushFront(&lruEntry{key: key, value: value, expiresAt: expiresAt})
	if s.order.Len() > s.capacity {
		s.remove(s.order.Back())
		c.evictions.Add(1)
		metrics.RecordCacheOperation("evict", "capacity")
	}
	metrics.RecordCacheOperation("set", "success")
}

// Invalidate removes key.
func (c *ShardedQuoteCache) Invalidate(_ context.Context, key string) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		s.remove(el)
		metrics.RecordCacheOperation("invalidate", "success")
	}
}

// Clear drops every quote, as after a tariff import.
func (c *ShardedQuoteCache) Clear(context.Context) {
	for _, s := range c.shards {
		s.mu.Lock()
		s.order.Init()
		s.items = make(map[string]*list.Element, s.capacity)
		s.mu.Unlock()
	}
	metrics.RecordCacheOperation("clear", "success")
	metrics.UpdateCacheMetrics(0, c.capacity())
}

// Stop ends the background sweeper. It is safe to call more than once.
func (c *ShardedQuoteCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCh) })
}

// Metrics reports hit, miss and eviction counts with the current size.
func (c *ShardedQuoteCache) Metrics() Metrics {
	return Metrics{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Size:      c.size(),
		Capacity:  c.capacity(),
	}
}

func (c *ShardedQuoteCache) size() int {
	total := 0
	for _, s := range c.shards {
		s.mu.Lock()
		total += s.order.Len()
		s.mu.Unlock()
	}
	return total
}

func (c *ShardedQuoteCache) capacity() int {
	return c.shards[0].capacity * len(c.shards)
}

func (c *ShardedQuoteCache) sweepLoop() {
	interval := c.ttl
	if interval <= 0 || interval > time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep()
		case <-c.stopCh:
			return
		}
	}
}

// sweep drops expired quotes and publishes the cache size.
func (c *ShardedQuoteCache) sweep() {
	now := c.now()
	for _, s := range c.shards {
		s.mu.Lock()
		for el := s.order.Back(); el != nil; {
			prev := el.Prev()
			if !now.Before(el.Value.(*lruEntry).expiresAt) {
				s.remove(el)
			}
			el = prev
		}
		s.mu.Unlock()
	}
	metrics.UpdateCacheMetrics(c.size(), c.capacity())
}

func (s *lruShard) remove(el *list.Element) {
	delete(s.items, el.Value.(*lruEntry).key)
	s.order.Remove(el)
}
