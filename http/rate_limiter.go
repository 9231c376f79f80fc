package http

import (
	"sync"
	"time"
)

const (
	idleBucketTTL   = 1 * time.Hour
	cleanupInterval = 30 * time.Minute
)

// A full evaluation may spend an external valuation call, so each route draws
// from its own bucket and a burst of EMI quotes cannot starve evaluations.
type bucketKey struct {
	client string
	route  string
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter is a continuously refilling token bucket per client and route.
// capacity tokens refill evenly over window.
type RateLimiter struct {
	mu       sync.Mutex
	capacity float64
	perSec   float64
	buckets  map[bucketKey]*bucket
	now      func() time.Time
	stop     chan struct{}
	stopOnce sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		capacity: float64(capacity),
		perSec:   float64(capacity) / window.Seconds(),
		buckets:  make(map[bucketKey]*bucket),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go rl.evictLoop()
	return rl
}

func (r *RateLimiter) evictLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stop:
			return
		}
	}
}

func (r *RateLimiter) evictIdle() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for key, b := range r.buckets {
		if now.Sub(b.lastSeen) > idleBucketTTL {
			delete(r.buckets, key)
		}
	}
}

// Stop is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

// Allow spends one token from the client's bucket for route. When none is
// left it reports how long until the next token arrives.
func (r *RateLimiter) Allow(client, route string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	key := bucketKey{client: client, route: route}
	b, ok := r.buckets[key]
	if !ok {
		b = &bucket{tokens: r.capacity, lastSeen: now}
		r.buckets[key] = b
	}

	b.tokens = min(r.capacity, b.tokens+now.Sub(b.lastSeen).Seconds()*r.perSec)
	b.lastSeen = now

	if b.tokens < 1 {
		wait := (1 - b.tokens) / r.perSec
		return false, time.Duration(wait * float64(time.Second))
	}
	b.tokens--
	return true, 0
}
