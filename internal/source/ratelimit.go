package source

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limiters holds one interval limiter per domain. A request arriving while
// the domain is inside its interval blocks until the interval elapses;
// different domains never wait on each other.
type Limiters struct {
	mu sync.Mutex
	m  map[string]*rate.Limiter
}

func NewLimiters() *Limiters {
	return &Limiters{m: make(map[string]*rate.Limiter)}
}

// Wait blocks until the domain's interval allows another request, or until
// ctx is cancelled. The limiter for a domain is created on first use with the
// interval supplied then; later intervals for the same domain are ignored.
func (l *Limiters) Wait(ctx context.Context, domain string, interval time.Duration) error {
	l.mu.Lock()
	lim, ok := l.m[domain]
	if !ok {
		lim = rate.NewLimiter(rate.Every(interval), 1)
		l.m[domain] = lim
	}
	l.mu.Unlock()

	return lim.Wait(ctx)
}
