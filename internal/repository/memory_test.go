package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (that *fakeClock) Now() time.Time {
	that.mu.Lock()
	defer that.mu.Unlock()
	return that.now
}

func (that *fakeClock) Advance(d time.Duration) {
	that.mu.Lock()
	that.now = that.now.Add(d)
	that.mu.Unlock()
}

func TestMemorySessionRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Round-trips a session", func(t *testing.T) {
		// Given: an empty repository and a played session
		sessionRepo := NewMemorySessionRepository(time.Hour)
		state := playedSession(t, "abc")

		// When: storing and loading it
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, state))
		retrieved, err := sessionRepo.GetByID(ctx, "abc")

		// Then: it comes back unchanged
		require.NoError(t, err)
		assert.Equal(t, state, retrieved)
	})

	t.Run("Stored state is isolated from later reductions", func(t *testing.T) {
		// Given: a stored session
		sessionRepo := NewMemorySessionRepository(0)
		state := session.New("abc")
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, state))

		// When: the caller keeps reducing its own copy
		_ = playedSession(t, "abc")

		// Then: the stored session is still fresh
		retrieved, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, 1, retrieved.Game.Len())
	})

	t.Run("Missing session returns ErrSessionNotFound", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)

		_, err := sessionRepo.GetByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)

		err = sessionRepo.DeleteByID(ctx, "missing")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Delete removes the session", func(t *testing.T) {
		sessionRepo := NewMemorySessionRepository(time.Hour)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session.New("abc")))

		require.NoError(t, sessionRepo.DeleteByID(ctx, "abc"))

		_, err := sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
	})

	t.Run("Sessions expire after the TTL", func(t *testing.T) {
		// Given: a session stored with a one minute TTL
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		sessionRepo := newMemorySessionRepository(time.Minute, clock.Now)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session.New("abc")))

		// When: 30 seconds pass it is still there
		clock.Advance(30 * time.Second)
		_, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)

		// Then: after the full minute it is gone
		clock.Advance(30 * time.Second)
		_, err = sessionRepo.GetByID(ctx, "abc")
		require.ErrorIs(t, err, apperror.ErrSessionNotFound)
		assert.Empty(t, sessionRepo.entries)
	})

	t.Run("Writes refresh the TTL", func(t *testing.T) {
		clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
		sessionRepo := newMemorySessionRepository(time.Minute, clock.Now)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session.New("abc")))

		clock.Advance(50 * time.Second)
		require.NoError(t, sessionRepo.CreateOrUpdate(ctx, session.New("abc")))
		clock.Advance(50 * time.Second)

		_, err := sessionRepo.GetByID(ctx, "abc")
		require.NoError(t, err)
	})
}
