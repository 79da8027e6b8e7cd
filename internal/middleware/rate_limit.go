package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/cargo-quote/internal/domain/dto"
	"github.com/guttosm/cargo-quote/internal/i18n"
)

const defaultNumShards = 16

// KeyFunc picks the identity a request is counted against.
type KeyFunc func(*gin.Context) string

// KeyByIP counts requests per client IP.
func KeyByIP(c *gin.Context) string {
	return "ip:" + c.ClientIP()
}

// KeyByCaller counts requests per signed-in operator, then per API key,
// then per IP.
func KeyByCaller(c *gin.Context) string {
	if operator, _ := OperatorFromContext(c); operator != "" {
		return "operator:" + operator
	}
	if client := APIClientFromContext(c); client != "" {
		return "key:" + client
	}
	return KeyByIP(c)
}

// rateWindow is the fixed-window counter of one identity.
type rateWindow struct {
	used    int
	resetAt time.Time
}

type rateLimiterShard struct {
	mu      sync.Mutex
	windows map[string]*rateWindow
}

// ShardedRateLimiter allows rate requests per identity in each fixed window.
// Identities are spread over shards to keep lock contention low.
type ShardedRateLimiter struct {
	shards   []*rateLimiterShard
	rate     int
	window   time.Duration
	now      func() time.Time
	stopCh   chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter with the default shard count.
func NewRateLimiter(rate int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(rate, window, defaultNumShards)
}

// NewShardedRateLimiter creates a limiter with numShards shards and starts
// the sweeper that drops idle identities.
func NewShardedRateLimiter(rate int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if window <= 0 {
		window = time.Minute
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{windows: make(map[string]*rateWindow)}
	}

	rl := &ShardedRateLimiter{
		shards: shards,
		rate:   rate,
		window: window,
		now:    time.Now,
		stopCh: make(chan struct{}),
	}
	go rl.sweep()
	return rl
}

func (rl *ShardedRateLimiter) shard(key string) *rateLimiterShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

// take consumes one request for key. It returns the requests left in the
// window and, when rejected, how long until the window resets.
func (rl *ShardedRateLimiter) take(key string) (allowed bool, remaining int, retryAfter time.Duration) {
	s := rl.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	now := rl.now()
	w, ok := s.windows[key]
	if !ok || !now.Before(w.resetAt) {
		w = &rateWindow{resetAt: now.Add(rl.window)}
		s.windows[key] = w
	}

	if w.used >= rl.rate {
		return false, 0, w.resetAt.Sub(now)
	}
	w.used++
	return true, rl.rate - w.used, 0
}

// Limit returns a middleware that rejects requests beyond the rate with 429.
func (rl *ShardedRateLimiter) Limit(key KeyFunc) gin.HandlerFunc {
	limit := strconv.Itoa(rl.rate)
	return func(c *gin.Context) {
		allowed, remaining, retryAfter := rl.take(key(c))

		c.Header("X-RateLimit-Limit", limit)
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}
		c.Next()
	}
}

func (rl *ShardedRateLimiter) sweep() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.sweepExpired()
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ShardedRateLimiter) sweepExpired() {
	now := rl.now()
	for _, s := range rl.shards {
		s.mu.Lock()
		for key, w := range s.windows {
			if !now.Before(w.resetAt) {
				delete(s.windows, key)
			}
		}
		s.mu.Unlock()
	}
}

// Stop ends the sweeper. It is safe to call more than once.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked identities in total and per shard.
func (rl *ShardedRateLimiter) Stats() (total int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, s := range rl.shards {
		s.mu.Lock()
		perShard[i] = len(s.windows)
		total += perShard[i]
		s.mu.Unlock()
	}
	return total, perShard
}
