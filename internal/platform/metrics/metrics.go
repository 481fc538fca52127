package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector aggregates request outcomes of the record store API.
type Collector struct {
	totalRequests   uint64
	clientErrors    uint64
	serverErrors    uint64
	totalDurationMs uint64

	mu       sync.Mutex
	byMethod map[string]uint64
}

func New() *Collector {
	return &Collector{byMethod: map[string]uint64{}}
}

func (c *Collector) Record(method string, status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	switch {
	case status >= 500:
		atomic.AddUint64(&c.serverErrors, 1)
	case status >= 400:
		atomic.AddUint64(&c.clientErrors, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))

	c.mu.Lock()
	c.byMethod[method]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	methods := make(map[string]uint64, len(c.byMethod))
	for method, count := range c.byMethod {
		methods[method] = count
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":     total,
		"clientErrorsTotal": atomic.LoadUint64(&c.clientErrors),
		"serverErrorsTotal": atomic.LoadUint64(&c.serverErrors),
		"avgDurationMs":     avg,
		"totalDurationMs":   totalMs,
		"requestsByMethod":  methods,
	}
}
