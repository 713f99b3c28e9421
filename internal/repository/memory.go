package repository

import (
	"context"
	"sync"
	"time"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/session"
)

type memoryEntry struct {
	state     session.State
	expiresAt time.Time
}

type memorySession struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemorySessionRepository keeps sessions in process memory. Expired entries
// are dropped lazily on access.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return newMemorySessionRepository(ttl, time.Now)
}

func newMemorySessionRepository(ttl time.Duration, now func() time.Time) *memorySession {
	return &memorySession{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     now,
	}
}

func (that *memorySession) expired(entry memoryEntry) bool {
	return !entry.expiresAt.IsZero() && !that.now().Before(entry.expiresAt)
}

func (that *memorySession) CreateOrUpdate(_ context.Context, state session.State) error {
	entry := memoryEntry{state: state}
	if that.ttl > 0 {
		entry.expiresAt = that.now().Add(that.ttl)
	}

	that.mu.Lock()
	that.entries[state.ID] = entry
	that.mu.Unlock()

	return nil
}

func (that *memorySession) GetByID(_ context.Context, id string) (session.State, error) {
	that.mu.RLock()
	entry, ok := that.entries[id]
	that.mu.RUnlock()

	if !ok {
		return session.State{}, apperror.ErrSessionNotFound
	}

	if that.expired(entry) {
		that.mu.Lock()
		if current, ok := that.entries[id]; ok && that.expired(current) {
			delete(that.entries, id)
		}
		that.mu.Unlock()

		return session.State{}, apperror.ErrSessionNotFound
	}

	return entry.state, nil
}

func (that *memorySession) DeleteByID(_ context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	entry, ok := that.entries[id]
	if !ok || that.expired(entry) {
		delete(that.entries, id)
		return apperror.ErrSessionNotFound
	}

	delete(that.entries, id)

	return nil
}
