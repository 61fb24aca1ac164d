package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"rhportal/internal/transport/http/api"
)

type bucket struct {
	count       int
	windowStart time.Time
}

// Limiter is a fixed-window counter keyed by caller identity. Buckets for
// expired windows are pruned lazily on each take.
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	limit   int
	window  time.Duration
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{
		buckets: make(map[string]*bucket),
		limit:   limit,
		window:  window,
	}
}

// Take consumes one slot for key. It reports whether the request may
// proceed, the remaining allowance, and when the window resets.
func (l *Limiter) Take(key string) (bool, int, time.Time) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	for k, b := range l.buckets {
		if now.Sub(b.windowStart) > l.window {
			delete(l.buckets, k)
		}
	}

	b, ok := l.buckets[key]
	if !ok || now.Sub(b.windowStart) > l.window {
		b = &bucket{windowStart: now}
		l.buckets[key] = b
	}

	reset := b.windowStart.Add(l.window)
	if b.count >= l.limit {
		return false, 0, reset
	}
	b.count++
	return true, l.limit - b.count, reset
}

// RateLimit throttles by authenticated employee when available, falling
// back to the client IP for anonymous requests.
func RateLimit(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if user, ok := GetUser(r.Context()); ok {
				key = "uid:" + strconv.FormatInt(user.EmployeeID, 10)
			}
			allowed, remaining, reset := limiter.Take(key)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(limiter.limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(reset.Unix(), 10))
			if !allowed {
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many requests", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LoginRateLimit keys the login endpoint by the submitted email so one
// caller cannot brute-force a mailbox from rotating addresses, falling
// back to the client IP when the body carries no email.
func LoginRateLimit(limiter *Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := clientIP(r)
			if email := peekEmail(r); email != "" {
				key = "email:" + email
			}
			allowed, _, reset := limiter.Take(key)
			if !allowed {
				w.Header().Set("Retry-After", strconv.FormatInt(int64(time.Until(reset).Seconds())+1, 10))
				api.Fail(w, http.StatusTooManyRequests, "rate_limited", "too many login attempts", GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// peekEmail reads the email field without consuming the body for the
// downstream handler.
func peekEmail(r *http.Request) string {
	if r.Body == nil {
		return ""
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil {
		return ""
	}
	r.Body = io.NopCloser(bytes.NewReader(body))

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Email
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
