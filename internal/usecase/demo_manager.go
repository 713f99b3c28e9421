package usecase

import (
	"context"
	"errors"
	"fmt"
	"hash/fnv"
	"log/slog"
	"sync"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/entity"
	"github.com/rocketscienceinc/playground/internal/pkg"
	"github.com/rocketscienceinc/playground/internal/session"
	"github.com/rocketscienceinc/playground/internal/view"
)

const lockShards = 64

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, state session.State) error
	GetByID(ctx context.Context, id string) (session.State, error)
	DeleteByID(ctx context.Context, id string) error
}

// DemoManager loads a session, reduces events into it, stores the result and
// renders a snapshot. Events of one session are applied one at a time.
type DemoManager struct {
	logger      *slog.Logger
	sessionRepo sessionRepo
	catalog     []entity.Product
	options     view.Options

	locks [lockShards]sync.Mutex
}

func NewDemoManager(logger *slog.Logger, sessionRepo sessionRepo, catalog []entity.Product, options view.Options) *DemoManager {
	return &DemoManager{
		logger:      logger.With("component", "demo_manager"),
		sessionRepo: sessionRepo,
		catalog:     catalog,
		options:     options,
	}
}

func (that *DemoManager) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))

	return &that.locks[h.Sum32()%lockShards]
}

// GetOrCreateSession returns the stored session for id. An empty or malformed
// id gets a fresh ID; an unknown or unreadable one starts a fresh session
// under that ID.
func (that *DemoManager) GetOrCreateSession(ctx context.Context, id string) (session.State, error) {
	if !pkg.IsValidSessionID(id) {
		id = pkg.GenerateNewSessionID()
	}

	mu := that.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	return that.loadOrCreate(ctx, id)
}

func (that *DemoManager) loadOrCreate(ctx context.Context, id string) (session.State, error) {
	log := that.logger.With("method", "loadOrCreate", "sessionID", id)

	state, err := that.sessionRepo.GetByID(ctx, id)
	if err == nil {
		return state, nil
	}

	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
	case errors.Is(err, apperror.ErrCorruptState):
		log.Warn("stored session is corrupt, starting over", "error", err)
	default:
		return session.State{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	state = session.New(id)
	if err = that.sessionRepo.CreateOrUpdate(ctx, state); err != nil {
		return session.State{}, fmt.Errorf("failed to create session: %w", err)
	}

	log.Info("new session created")

	return state, nil
}

// Snapshot renders the current state of the session without changing it.
func (that *DemoManager) Snapshot(ctx context.Context, id string) (view.Snapshot, error) {
	state, err := that.GetOrCreateSession(ctx, id)
	if err != nil {
		return view.Snapshot{}, err
	}

	return view.Render(state, that.catalog, that.options), nil
}

// Dispatch applies events to the session in order and stores the result. If
// any event is rejected nothing is stored and the error wraps
// apperror.ErrUnknownEvent.
func (that *DemoManager) Dispatch(ctx context.Context, id string, events ...entity.Event) (view.Snapshot, error) {
	log := that.logger.With("method", "Dispatch")

	if !pkg.IsValidSessionID(id) {
		return view.Snapshot{}, fmt.Errorf("%w: %q", apperror.ErrSessionNotFound, id)
	}

	mu := that.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	state, err := that.loadOrCreate(ctx, id)
	if err != nil {
		return view.Snapshot{}, err
	}

	next := state
	for _, event := range events {
		if event.Kind == entity.EventMove {
			if moveErr := next.Game.CheckMove(event.Cell); moveErr != nil {
				log.Debug("move ignored", "sessionID", id, "cell", event.Cell, "reason", moveErr)
			}
		}

		next, err = session.Reduce(next, event)
		if err != nil {
			return view.Render(state, that.catalog, that.options), fmt.Errorf("failed to reduce event: %w", err)
		}
	}

	if err = that.sessionRepo.CreateOrUpdate(ctx, next); err != nil {
		return view.Snapshot{}, fmt.Errorf("failed to update session: %w", err)
	}

	return view.Render(next, that.catalog, that.options), nil
}

// EndSession forgets the session.
func (that *DemoManager) EndSession(ctx context.Context, id string) error {
	mu := that.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}
