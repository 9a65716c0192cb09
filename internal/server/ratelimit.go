package server

import (
	"math"
	"net/http"
	"strconv"
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"

	"github.com/osse101/PirotRaffle_Go/internal/logger"
)

// RateLimiter is a per-client token bucket for contribution submissions.
// Idle buckets age out of an expiring LRU so memory stays bounded.
type RateLimiter struct {
	mu             sync.Mutex
	limit          rate.Limit
	burst          int
	trustedProxies []string
	limiters       *expirable.LRU[string, *rate.Limiter]
}

// NewRateLimiter allows perSecond sustained requests with the given burst
// per client IP. perSecond <= 0 disables limiting.
func NewRateLimiter(perSecond, burst int, trustedProxies []string) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	return &RateLimiter{
		limit:          limit,
		burst:          burst,
		trustedProxies: trustedProxies,
		limiters:       expirable.NewLRU[string, *rate.Limiter](LimiterCacheSize, nil, LimiterIdleTTL),
	}
}

func (l *RateLimiter) limiterFor(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()
	if lim, ok := l.limiters.Get(ip); ok {
		return lim
	}
	lim := rate.NewLimiter(l.limit, l.burst)
	l.limiters.Add(ip, lim)
	return lim
}

// Middleware rejects requests over the client's budget with 429 and Retry-After
func (l *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := extractIP(r, l.trustedProxies)
		res := l.limiterFor(ip).Reserve()
		if delay := res.Delay(); delay > 0 {
			res.Cancel()
			logger.FromContext(r.Context()).Warn(LogMsgRateLimited, "ip", ip, "retry_after", delay)
			w.Header().Set(HeaderRetryAfter, strconv.Itoa(int(math.Ceil(delay.Seconds()))))
			http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}
