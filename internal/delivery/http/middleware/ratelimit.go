package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	h "mergingtonactivities/internal/delivery/http/helpers"
)

const (
	limiterIdleTTL    = 10 * time.Minute
	limiterSweepEvery = 512
)

// ClientLimiter applies a token bucket per client key and periodically evicts idle entries.
type ClientLimiter struct {
	limit rate.Limit
	burst int
	now   func() time.Time

	mu      sync.Mutex
	clients map[string]*clientEntry
	hits    uint64
}

type clientEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewClientLimiter returns a limiter allowing rps requests per second per client
// with the given burst. It returns nil when rps or burst is not positive; a nil
// limiter allows everything.
func NewClientLimiter(rps float64, burst int) *ClientLimiter {
	if rps <= 0 || burst <= 0 {
		return nil
	}
	return &ClientLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		now:     time.Now,
		clients: make(map[string]*clientEntry),
	}
}

// Allow reports whether the client identified by key may make a request now.
func (l *ClientLimiter) Allow(key string) bool {
	if l == nil {
		return true
	}
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.clients[key]
	if !ok {
		e = &clientEntry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[key] = e
	}
	e.lastSeen = now
	allowed := e.limiter.AllowN(now, 1)

	l.hits++
	if l.hits%limiterSweepEvery == 0 {
		cutoff := now.Add(-limiterIdleTTL)
		for k, v := range l.clients {
			if v.lastSeen.Before(cutoff) {
				delete(l.clients, k)
			}
		}
	}
	return allowed
}

// RateLimit rejects requests over the per-client limit with 429. Clients are
// keyed by the remote IP of the connection.
func RateLimit(limiter *ClientLimiter, next http.Handler) http.Handler {
	if limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "1")
			h.WriteJSONError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
