package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"emprecords/internal/transport/http/api"
)

// sweepThreshold is the number of tracked clients above which expired
// windows are dropped on the next request.
const sweepThreshold = 1024

type window struct {
	count int
	reset time.Time
}

type verdict struct {
	allowed   bool
	remaining int
	resetIn   int
}

// fixedWindow counts requests per client address in fixed windows.
type fixedWindow struct {
	mu      sync.Mutex
	limit   int
	period  time.Duration
	clients map[string]*window
}

func newFixedWindow(limit int, period time.Duration) *fixedWindow {
	return &fixedWindow{limit: limit, period: period, clients: map[string]*window{}}
}

func (f *fixedWindow) take(key string, now time.Time) verdict {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.clients) > sweepThreshold {
		for k, w := range f.clients {
			if now.After(w.reset) {
				delete(f.clients, k)
			}
		}
	}
	w, ok := f.clients[key]
	if !ok || now.After(w.reset) {
		w = &window{reset: now.Add(f.period)}
		f.clients[key] = w
	}
	w.count++
	return verdict{
		allowed:   w.count <= f.limit,
		remaining: max(f.limit-w.count, 0),
		resetIn:   secondsUntil(w.reset, now),
	}
}

// RateLimit throttles every request per client address. A limit of zero or
// less disables it.
func RateLimit(limit int, period time.Duration) func(http.Handler) http.Handler {
	return throttle(limit, period, func(*http.Request) bool { return true })
}

// WriteRateLimit gives writes their own budget of half the base limit.
func WriteRateLimit(baseLimit int, period time.Duration) func(http.Handler) http.Handler {
	if baseLimit <= 0 {
		return throttle(0, period, nil)
	}
	return throttle(max(baseLimit/2, 1), period, func(r *http.Request) bool { return isWrite(r.Method) })
}

func throttle(limit int, period time.Duration, applies func(*http.Request) bool) func(http.Handler) http.Handler {
	counter := newFixedWindow(limit, period)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limit <= 0 || !applies(r) {
				next.ServeHTTP(w, r)
				return
			}
			key := clientIPKey(r)
			v := counter.take(key, time.Now())

			headers := w.Header()
			headers.Set("X-RateLimit-Limit", strconv.Itoa(limit))
			headers.Set("X-RateLimit-Remaining", strconv.Itoa(v.remaining))
			headers.Set("X-RateLimit-Reset", strconv.Itoa(v.resetIn))
			if !v.allowed {
				headers.Set("Retry-After", strconv.Itoa(max(v.resetIn, 1)))
				slog.Warn("rate limit exceeded", "client", key, "method", r.Method, "path", r.URL.Path, "limit", limit)
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isWrite(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

func clientIPKey(r *http.Request) string {
	if fwd := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if value := strings.TrimSpace(first); value != "" {
			return value
		}
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func secondsUntil(reset, now time.Time) int {
	d := reset.Sub(now)
	if d <= 0 {
		return 0
	}
	return max(int(d.Seconds()), 1)
}
