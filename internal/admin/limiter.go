package admin

import (
	"context"
	"sync"
	"time"
)

// Limiter tracks failed logins per client.
type Limiter interface {
	// Blocked returns how long the client stays locked out, zero if it may try again.
	Blocked(ctx context.Context, client string) (time.Duration, error)
	// Fail records a failed attempt and reports whether it triggered a lockout.
	Fail(ctx context.Context, client string) (bool, error)
	// Reset forgets the client's failures.
	Reset(ctx context.Context, client string) error
}

// LimitConfig sets how many failures are tolerated and for how long a client is locked out.
// Failures older than Lockout no longer count.
type LimitConfig struct {
	MaxAttempts int
	Lockout     time.Duration
}

func (c LimitConfig) withDefaults() LimitConfig {
	if c.MaxAttempts < 1 {
		c.MaxAttempts = 5
	}
	if c.Lockout <= 0 {
		c.Lockout = 30 * time.Second
	}
	return c
}

type attempts struct {
	fails       int
	first       time.Time
	lockedUntil time.Time
}

// MemoryLimiter keeps attempt counters in process memory.
type MemoryLimiter struct {
	cfg LimitConfig
	now func() time.Time

	mu        sync.Mutex
	clients   map[string]*attempts
	lastSweep time.Time
}

func NewMemoryLimiter(cfg LimitConfig) *MemoryLimiter {
	return &MemoryLimiter{
		cfg:     cfg.withDefaults(),
		now:     time.Now,
		clients: make(map[string]*attempts),
	}
}

func (l *MemoryLimiter) Blocked(_ context.Context, client string) (time.Duration, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	a, ok := l.clients[client]
	if !ok {
		return 0, nil
	}
	if left := a.lockedUntil.Sub(l.now()); left > 0 {
		return left, nil
	}
	return 0, nil
}

func (l *MemoryLimiter) Fail(_ context.Context, client string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	a, ok := l.clients[client]
	if !ok || now.Sub(a.first) > l.cfg.Lockout {
		a = &attempts{first: now}
		l.clients[client] = a
	}

	a.fails++
	if a.fails < l.cfg.MaxAttempts {
		return false, nil
	}

	a.fails = 0
	a.first = now
	a.lockedUntil = now.Add(l.cfg.Lockout)
	return true, nil
}

// sweep drops clients whose failure window and lockout have both run out.
// It walks the map at most once per Lockout. Callers hold mu.
func (l *MemoryLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSweep) < l.cfg.Lockout {
		return
	}
	l.lastSweep = now

	for client, a := range l.clients {
		if now.Sub(a.first) > l.cfg.Lockout && !now.Before(a.lockedUntil) {
			delete(l.clients, client)
		}
	}
}

func (l *MemoryLimiter) Reset(_ context.Context, client string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.clients, client)
	return nil
}
