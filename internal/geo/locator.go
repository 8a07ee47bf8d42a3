package geo

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrPositionUnavailable = errors.New("position unavailable")

// Locator reports the device position.
type Locator interface {
	Locate(ctx context.Context) (Coordinates, error)
}

// StaticLocator always reports a fixed position, or ErrPositionUnavailable when disabled.
type StaticLocator struct {
	Position Coordinates
	Enabled  bool
}

func (s StaticLocator) Locate(ctx context.Context) (Coordinates, error) {
	if !s.Enabled {
		return Coordinates{}, ErrPositionUnavailable
	}
	return s.Position, nil
}

// CachedLocator reuses a previous fix while it is younger than MaxAge.
type CachedLocator struct {
	inner  Locator
	maxAge time.Duration
	now    func() time.Time

	mu      sync.Mutex
	last    Coordinates
	fixedAt time.Time
	hasFix  bool
}

func NewCachedLocator(inner Locator, maxAge time.Duration) *CachedLocator {
	return &CachedLocator{inner: inner, maxAge: maxAge, now: time.Now}
}

func (c *CachedLocator) Locate(ctx context.Context) (Coordinates, error) {
	c.mu.Lock()
	if c.hasFix && c.now().Sub(c.fixedAt) <= c.maxAge {
		pos := c.last
		c.mu.Unlock()
		return pos, nil
	}
	c.mu.Unlock()

	pos, err := c.inner.Locate(ctx)
	if err != nil {
		return Coordinates{}, err
	}

	c.mu.Lock()
	c.last = pos
	c.fixedAt = c.now()
	c.hasFix = true
	c.mu.Unlock()

	return pos, nil
}

// LocateWithin bounds a lookup by timeout. A locator that ignores its context
// is abandoned once the deadline passes.
func LocateWithin(ctx context.Context, l Locator, timeout time.Duration) (Coordinates, error) {
	if timeout <= 0 {
		return l.Locate(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		pos Coordinates
		err error
	}
	done := make(chan result, 1)
	go func() {
		pos, err := l.Locate(ctx)
		done <- result{pos: pos, err: err}
	}()

	select {
	case r := <-done:
		return r.pos, r.err
	case <-ctx.Done():
		return Coordinates{}, ctx.Err()
	}
}
