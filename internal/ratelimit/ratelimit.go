// File: internal/ratelimit/ratelimit.go

// Package ratelimit throttles the inference endpoints. Provider calls
// are slow and metered, so a sliding per-client window keeps one noisy
// client from exhausting the upstream quota for everyone.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config bounds how many inference calls one client may start per
// window.
type Config struct {
	Window        time.Duration
	MaxCalls      int
	CleanupPeriod time.Duration
}

// DefaultInferenceConfig fits the latency and cost profile of LLM
// calls: generous enough for an interactive consultation, tight enough
// to protect the upstream quota.
func DefaultInferenceConfig() *Config {
	return &Config{
		Window:        time.Minute,
		MaxCalls:      20,
		CleanupPeriod: 5 * time.Minute,
	}
}

// Info reports the limiter decision for response headers.
type Info struct {
	Allowed    bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration
}

type clientWindow struct {
	count   int
	startAt time.Time
}

// Limiter is an in-memory sliding-window limiter keyed by client
// identifier. Safe for concurrent use.
type Limiter struct {
	config  *Config
	mu      sync.Mutex
	clients map[string]*clientWindow
	stopCh  chan struct{}
}

func NewLimiter(config *Config) *Limiter {
	l := &Limiter{
		config:  config,
		clients: make(map[string]*clientWindow),
		stopCh:  make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow records one call attempt for the identifier and reports
// whether it may proceed.
func (l *Limiter) Allow(identifier string) (bool, *Info) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	win, ok := l.clients[identifier]
	if !ok || now.Sub(win.startAt) > l.config.Window {
		l.clients[identifier] = &clientWindow{count: 1, startAt: now}
		return true, &Info{
			Allowed:   true,
			Remaining: l.config.MaxCalls - 1,
			ResetAt:   now.Add(l.config.Window),
		}
	}

	win.count++
	resetAt := win.startAt.Add(l.config.Window)
	if win.count > l.config.MaxCalls {
		return false, &Info{
			Allowed:    false,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: time.Until(resetAt),
		}
	}
	return true, &Info{
		Allowed:   true,
		Remaining: l.config.MaxCalls - win.count,
		ResetAt:   resetAt,
	}
}

// Close stops the cleanup goroutine.
func (l *Limiter) Close() {
	close(l.stopCh)
}

func (l *Limiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *Limiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()
	now := time.Now()
	for id, win := range l.clients {
		if now.Sub(win.startAt) > l.config.Window {
			delete(l.clients, id)
		}
	}
}

// ClientIP extracts the calling client's IP, honoring proxy headers.
func ClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if first, _, ok := strings.Cut(forwarded, ","); ok || first != "" {
			return strings.TrimSpace(first)
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
