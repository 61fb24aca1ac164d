package metrics

import (
	"net/http"
	"sync/atomic"
	"time"
)

// Collector keeps coarse in-process request counters for the admin snapshot
// endpoint. Counters are atomic; there is no background goroutine to stop.
type Collector struct {
	started    time.Time
	requests   atomic.Uint64
	serverErrs atomic.Uint64
	throttled  atomic.Uint64
	busyMillis atomic.Uint64
}

func New() *Collector {
	return &Collector{started: time.Now()}
}

func (c *Collector) Record(status int, duration time.Duration) {
	c.requests.Add(1)
	if status >= http.StatusInternalServerError {
		c.serverErrs.Add(1)
	}
	if status == http.StatusTooManyRequests {
		c.throttled.Add(1)
	}
	c.busyMillis.Add(uint64(duration.Milliseconds()))
}

func (c *Collector) Snapshot() map[string]any {
	requests := c.requests.Load()
	busy := c.busyMillis.Load()

	avg := float64(0)
	if requests > 0 {
		avg = float64(busy) / float64(requests)
	}
	return map[string]any{
		"requests":      requests,
		"serverErrors":  c.serverErrs.Load(),
		"rateLimited":   c.throttled.Load(),
		"avgDurationMs": avg,
		"uptimeSeconds": int64(time.Since(c.started).Seconds()),
	}
}
