package chi

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// idleLimiterTTL is how long an unused client limiter is kept.
const idleLimiterTTL = 10 * time.Minute

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// ClientLimiter provides per-client rate limiting using token buckets. Each
// client IP gets its own limiter.
type ClientLimiter struct {
	mu        sync.Mutex
	clients   map[string]*clientLimiter
	limit     rate.Limit
	burst     int
	lastSweep time.Time

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// NewClientLimiter creates a ClientLimiter allowing perMinute requests per
// minute per client, with bursts of up to burst requests.
func NewClientLimiter(perMinute float64, burst int) *ClientLimiter {
	if burst < 1 {
		burst = 1
	}
	return &ClientLimiter{
		clients: make(map[string]*clientLimiter),
		limit:   rate.Limit(perMinute / 60),
		burst:   burst,
		Now:     time.Now,
	}
}

// Allow reports whether a request from client may proceed now.
func (l *ClientLimiter) Allow(client string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.Now()
	l.sweep(now)

	c, ok := l.clients[client]
	if !ok {
		c = &clientLimiter{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.clients[client] = c
	}
	c.lastSeen = now
	return c.limiter.AllowN(now, 1)
}

// Len returns the number of tracked clients.
func (l *ClientLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.clients)
}

// sweep drops idle clients. Called with mu held.
func (l *ClientLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < idleLimiterTTL {
		return
	}
	for k, c := range l.clients {
		if now.Sub(c.lastSeen) >= idleLimiterTTL {
			delete(l.clients, k)
		}
	}
	l.lastSweep = now
}

// Middleware rejects requests over the client's limit with 429.
func (l *ClientLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.Allow(clientIP(r)) {
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Too many requests, please try again later.", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP returns the request's client address without a port. RealIP
// middleware may already have replaced RemoteAddr with a bare IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
