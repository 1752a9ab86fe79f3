package middleware

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/DiegoMeloCoder/FidelizDiego/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ipWindow tracks requests per IP within a fixed window.
type ipWindow struct {
	count     int
	windowEnd time.Time
}

// Limiter is a per-IP fixed-window rate limiter.
type Limiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*ipWindow
}

func NewLimiter(limit int, window time.Duration) *Limiter {
	return &Limiter{limit: limit, window: window, now: time.Now, entries: make(map[string]*ipWindow)}
}

// allow counts one request for ip and reports whether it is within the limit,
// plus the time the current window closes.
func (l *Limiter) allow(ip string) (bool, time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	e, ok := l.entries[ip]
	if !ok || now.After(e.windowEnd) {
		e = &ipWindow{windowEnd: now.Add(l.window)}
		l.entries[ip] = e
	}
	e.count++
	return e.count <= l.limit, e.windowEnd
}

// Middleware aborts with 429 and msg once an IP exceeds the limit.
func (l *Limiter) Middleware(msg string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, windowEnd := l.allow(c.ClientIP())
		if !ok {
			retry := int(windowEnd.Sub(l.now()).Seconds()) + 1
			c.Header("Retry-After", strconv.Itoa(retry))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.WithCode(apierror.CodeRateLimited, msg))
			return
		}
		c.Next()
	}
}

// Purge drops expired windows and returns how many were removed.
func (l *Limiter) Purge() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := l.now()
	purged := 0
	for ip, e := range l.entries {
		if now.After(e.windowEnd) {
			delete(l.entries, ip)
			purged++
		}
	}
	return purged
}

const purgeInterval = 5 * time.Minute

// StartPurge removes expired entries every few minutes until ctx is done.
func (l *Limiter) StartPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(purgeInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := l.Purge(); n > 0 {
					log.Debug().Int("purged", n).Msg("rate limiter entries purged")
				}
			}
		}
	}()
}

// LoginRateLimiter limits sign-in attempts to 20 per minute per IP.
func LoginRateLimiter(l *Limiter) gin.HandlerFunc {
	return l.Middleware("Too many sign-in attempts. Try again in a minute.")
}

// RateLimiter is the general API limiter.
func RateLimiter(l *Limiter) gin.HandlerFunc {
	return l.Middleware("Too many requests. Try again shortly.")
}
