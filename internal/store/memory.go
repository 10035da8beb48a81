// internal/store/memory.go
//
// In-memory registry of live game sessions.
//
// Characteristics:
//   - Stores *game.Session values keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts; only finished results reach SQLite.
//   - Sweep evicts sessions idle for longer than a TTL.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/julekalender/internal/game"
)

// ErrNotFound is returned by Get for unknown IDs.
var ErrNotFound = errors.New("store: session not found")

// Store defines the registry interface for game sessions.
type Store interface {
	Save(ctx context.Context, s *game.Session) error
	Get(ctx context.Context, id string) (*game.Session, error)
	Delete(ctx context.Context, id string) error
	// Sweep removes sessions whose last activity is older than now-idle and
	// returns how many were removed.
	Sweep(now time.Time, idle time.Duration) int
	Len() int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Sweep(now time.Time, idle time.Duration) int {
	cutoff := now.Add(-idle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.LastActivity().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// RunSweeper calls Sweep every interval until ctx is done.
func RunSweeper(ctx context.Context, st Store, interval, idle time.Duration, onSweep func(n int)) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-t.C:
			if n := st.Sweep(now, idle); n > 0 && onSweep != nil {
				onSweep(n)
			}
		}
	}
}
