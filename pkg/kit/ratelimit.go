package kit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// IPRateLimiter caps requests per client IP over a fixed window. Counters
// reset when the window rolls over, so a burst straddling the boundary can
// briefly exceed the limit; good enough for abuse throttling on auth routes.
type IPRateLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
}

type windowCount struct {
	start time.Time
	n     int
}

func NewIPRateLimiter(limit int, windowSeconds int) *IPRateLimiter {
	return &IPRateLimiter{
		limit:  limit,
		window: time.Duration(windowSeconds) * time.Second,
		counts: make(map[string]*windowCount),
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.allow(clientIP(r), time.Now()) {
			http.Error(w, "too many requests", http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (l *IPRateLimiter) allow(ip string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	wc := l.counts[ip]
	if wc == nil || now.Sub(wc.start) >= l.window {
		l.counts[ip] = &windowCount{start: now, n: 1}
		l.sweep(now)
		return true
	}

	if wc.n >= l.limit {
		return false
	}
	wc.n++
	return true
}

// sweep drops expired windows so the map does not grow with one entry per IP
// ever seen. Runs under the lock, only when a window rolls over.
func (l *IPRateLimiter) sweep(now time.Time) {
	for ip, wc := range l.counts {
		if now.Sub(wc.start) >= l.window {
			delete(l.counts, ip)
		}
	}
}

func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found || first != "" {
			return strings.TrimSpace(first)
		}
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil && host != "" {
		return host
	}
	return r.RemoteAddr
}
