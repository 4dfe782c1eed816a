// Rate limiter for the compute endpoints: analyze requests and live
// session opens. Fixed-window counter per client IP.
package api

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// RateLimiter grants up to limit requests per window to each client IP.
type RateLimiter struct {
	mu      sync.Mutex
	windows map[string]*window
	limit   int
	span    time.Duration
}

type window struct {
	used    int
	started time.Time
}

// NewRateLimiter creates a limiter allowing limit requests per span.
// Stale per-IP state is swept in the background.
func NewRateLimiter(limit int, span time.Duration) *RateLimiter {
	rl := &RateLimiter{
		windows: make(map[string]*window),
		limit:   limit,
		span:    span,
	}
	go func() {
		for {
			time.Sleep(time.Hour)
			rl.sweep()
		}
	}()
	return rl
}

// Allow records one request for ip and reports whether it fits in the
// current window.
func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	win, ok := rl.windows[ip]
	if !ok || now.Sub(win.started) >= rl.span {
		rl.windows[ip] = &window{used: 1, started: now}
		return true
	}
	if win.used < rl.limit {
		win.used++
		return true
	}
	return false
}

// RetryAfter returns the whole seconds until ip's window resets.
func (rl *RateLimiter) RetryAfter(ip string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	win, ok := rl.windows[ip]
	if !ok {
		return 0
	}
	remaining := rl.span - time.Since(win.started)
	if remaining < 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	for ip, win := range rl.windows {
		if now.Sub(win.started) > 2*rl.span {
			delete(rl.windows, ip)
		}
	}
}

// clientIP extracts the caller's address, preferring the first hop in
// X-Forwarded-For when the server sits behind a proxy.
func clientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimitMiddleware wraps a handler with per-IP limiting. Over-limit
// requests get 429 with a Retry-After header.
func RateLimitMiddleware(rl *RateLimiter, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !rl.Allow(ip) {
			w.Header().Set("Retry-After", strconv.Itoa(rl.RetryAfter(ip)))
			http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}
