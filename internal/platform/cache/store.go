package cache

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is a process-local TTL cache. A single update run re-reads the same
// bootstrap and live-gameweek documents hundreds of times; the store keeps
// them decoded in memory instead.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	group   loadGroup
}

// NewStore builds a store whose entries expire after ttl. A ttl of zero
// disables expiry, which suits one-shot CLI invocations.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (s *Store) Get(_ context.Context, key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := time.Now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value any) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = time.Now().Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key, invoking loader at most once
// across concurrent callers when the entry is absent.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	return s.group.do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loaded, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		s.Set(ctx, key, loaded)
		return loaded, nil
	})
}

// loadGroup collapses concurrent loads of the same key into one call.
type loadGroup struct {
	mu     sync.Mutex
	flight map[string]*loadCall
}

type loadCall struct {
	done chan struct{}
	val  any
	err  error
}

func (g *loadGroup) do(key string, fn func() (any, error)) (any, error) {
	g.mu.Lock()
	if g.flight == nil {
		g.flight = make(map[string]*loadCall)
	}
	if c, ok := g.flight[key]; ok {
		g.mu.Unlock()
		<-c.done
		return c.val, c.err
	}

	c := &loadCall{done: make(chan struct{})}
	g.flight[key] = c
	g.mu.Unlock()

	c.val, c.err = fn()
	close(c.done)

	g.mu.Lock()
	delete(g.flight, key)
	g.mu.Unlock()

	return c.val, c.err
}
