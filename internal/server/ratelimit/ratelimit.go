// Package ratelimit throttles API clients with per-client token buckets.
// Generation and PDF endpoints get their own, much smaller, budgets.
package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Rule limits requests whose method matches and whose path ends with Suffix
type Rule struct {
	Method string
	Suffix string
	Limit  int
	Window time.Duration
	// Burst defaults to Limit
	Burst int
}

// Config holds rate limiting configuration
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	// IdleTTL is how long an unused bucket is kept
	IdleTTL time.Duration
	Rules   []Rule
}

// DefaultRules returns the per-endpoint rules for the resume API
func DefaultRules() []Rule {
	return []Rule{
		{Method: "POST", Suffix: "/resumes", Limit: 20, Window: time.Hour, Burst: 3},
		{Method: "POST", Suffix: "/resumes/stream", Limit: 20, Window: time.Hour, Burst: 3},
		{Method: "GET", Suffix: "/pdf", Limit: 60, Window: time.Hour, Burst: 5},
	}
}

// DefaultConfig returns an enabled configuration with DefaultRules
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    600,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Rules:           DefaultRules(),
	}
}

// LoadConfig reads RATE_LIMIT_ENABLED, RATE_LIMIT_DEFAULT_LIMIT and
// RATE_LIMIT_GENERATE_PER_HOUR on top of DefaultConfig
func LoadConfig() *Config {
	cfg := DefaultConfig()
	if v, err := strconv.ParseBool(os.Getenv("RATE_LIMIT_ENABLED")); err == nil {
		cfg.Enabled = v
	}
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_DEFAULT_LIMIT")); err == nil && n > 0 {
		cfg.DefaultLimit = n
	}
	if n, err := strconv.Atoi(os.Getenv("RATE_LIMIT_GENERATE_PER_HOUR")); err == nil && n > 0 {
		for i := range cfg.Rules {
			if cfg.Rules[i].Method == "POST" {
				cfg.Rules[i].Limit = n
			}
		}
	}
	return cfg
}

// Info describes the bucket state after a request
type Info struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
}

type bucket struct {
	capacity   float64
	refillRate float64
	tokens     float64
	lastRefill time.Time
	lastSeen   time.Time
}

func (b *bucket) refill(now time.Time) {
	b.tokens = min(b.capacity, b.tokens+now.Sub(b.lastRefill).Seconds()*b.refillRate)
	b.lastRefill = now
}

// Limiter manages one token bucket per client and rule
type Limiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	config  *Config
	now     func() time.Time
	stop    chan struct{}
	once    sync.Once
}

// NewLimiter creates a Limiter. A nil config means DefaultConfig.
func NewLimiter(config *Config) *Limiter {
	if config == nil {
		config = DefaultConfig()
	}
	l := &Limiter{
		buckets: make(map[string]*bucket),
		config:  config,
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if config.Enabled && config.CleanupInterval > 0 {
		go l.cleanupLoop(config.CleanupInterval)
	}
	return l
}

// Match returns the rule for a request, or nil when the default applies.
// Health checks are never limited.
func (l *Limiter) Match(method, path string) *Rule {
	if path == "/health" {
		return &Rule{}
	}
	for i := range l.config.Rules {
		r := &l.config.Rules[i]
		if r.Method == method && strings.HasSuffix(path, r.Suffix) {
			return r
		}
	}
	return nil
}

// Allow consumes a token for the client if one is available
func (l *Limiter) Allow(clientID, method, path string) (bool, Info) {
	if !l.config.Enabled {
		return true, Info{Allowed: true}
	}

	rule := l.Match(method, path)
	key := clientID
	if rule == nil {
		rule = &Rule{Limit: l.config.DefaultLimit, Window: l.config.DefaultWindow}
	} else {
		key += " " + rule.Method + " " + rule.Suffix
	}
	if rule.Limit <= 0 || rule.Window <= 0 {
		return true, Info{Allowed: true}
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		capacity := rule.Burst
		if capacity <= 0 {
			capacity = rule.Limit
		}
		b = &bucket{
			capacity:   float64(capacity),
			refillRate: float64(rule.Limit) / rule.Window.Seconds(),
			tokens:     float64(capacity),
			lastRefill: now,
		}
		l.buckets[key] = b
	}
	b.lastSeen = now
	b.refill(now)

	allowed := b.tokens >= 1
	if allowed {
		b.tokens--
	}

	info := Info{Allowed: allowed, Limit: rule.Limit, Remaining: int(b.tokens), ResetTime: now}
	if missing := b.capacity - b.tokens; missing > 0 {
		info.ResetTime = now.Add(time.Duration(missing / b.refillRate * float64(time.Second)))
	}
	if !allowed {
		info.RetryAfter = time.Duration((1 - b.tokens) / b.refillRate * float64(time.Second))
	}
	return allowed, info
}

func (l *Limiter) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.Cleanup()
		case <-l.stop:
			return
		}
	}
}

// Cleanup drops buckets idle for longer than IdleTTL
func (l *Limiter) Cleanup() {
	ttl := l.config.IdleTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	cutoff := l.now().Add(-ttl)

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, b := range l.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(l.buckets, key)
		}
	}
}

// Size returns the number of live buckets
func (l *Limiter) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.buckets)
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (l *Limiter) Stop() {
	l.once.Do(func() { close(l.stop) })
}
