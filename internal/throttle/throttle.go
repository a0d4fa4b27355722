// Package throttle implements per address admission control: at most one submission per address per window.
package throttle

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Map remembers when each key was last admitted. Entries older than the widest window ever requested are evicted
// by Sweep, which Run calls periodically. When the map holds capacity entries, an insertion first sweeps and then
// evicts the oldest entry.
type Map struct {
	name     string
	mu       sync.Mutex
	last     map[string]time.Time
	ttl      time.Duration
	capacity int
	sweep    time.Duration
	now      func() time.Time
}

func New(name string, capacity int, sweep time.Duration) *Map {
	if sweep <= 0 {
		sweep = time.Minute
	}
	return &Map{
		name:     name,
		last:     make(map[string]time.Time),
		capacity: capacity,
		sweep:    sweep,
		now:      time.Now,
	}
}

// Admit reports whether key may submit now, and records the admission. A non positive window admits everything
// without recording it.
func (m *Map) Admit(key string, window time.Duration) bool {
	if window <= 0 {
		return true
	}
	now := m.now()

	m.mu.Lock()
	defer m.mu.Unlock()

	if window > m.ttl {
		m.ttl = window
	}
	if t, ok := m.last[key]; ok && now.Sub(t) < window {
		return false
	}
	if _, ok := m.last[key]; !ok && m.capacity > 0 && len(m.last) >= m.capacity {
		m.sweepLocked(now)
		if len(m.last) >= m.capacity {
			m.evictOldestLocked()
		}
	}
	m.last[key] = now
	return true
}

// Sweep removes every entry older than the widest window and returns how many were removed.
func (m *Map) Sweep() int {
	now := m.now()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sweepLocked(now)
}

func (m *Map) sweepLocked(now time.Time) int {
	removed := 0
	for k, t := range m.last {
		if now.Sub(t) >= m.ttl {
			delete(m.last, k)
			removed++
		}
	}
	return removed
}

func (m *Map) evictOldestLocked() {
	var (
		oldest    string
		oldestAt  time.Time
		something bool
	)
	for k, t := range m.last {
		if !something || t.Before(oldestAt) {
			oldest, oldestAt, something = k, t, true
		}
	}
	if something {
		delete(m.last, oldest)
	}
}

func (m *Map) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.last)
}

// Run sweeps the map until ctx is done.
func (m *Map) Run(ctx context.Context) {
	ticker := time.NewTicker(m.sweep)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				log.Debug().Str("throttle", m.name).Int("evicted", n).Msg("throttle sweep")
			}
		}
	}
}
