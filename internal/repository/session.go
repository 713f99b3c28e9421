package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/playground/internal/apperror"
	"github.com/rocketscienceinc/playground/internal/session"
)

const sessionKeyPrefix = "session:"

type SessionRepository interface {
	CreateOrUpdate(ctx context.Context, state session.State) error
	GetByID(ctx context.Context, id string) (session.State, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository stores sessions in Redis. Every write refreshes the
// key's TTL; a ttl of 0 keeps keys forever.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (that *dbSession) CreateOrUpdate(ctx context.Context, state session.State) error {
	sessionJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(state.ID), sessionJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (session.State, error) {
	response, err := that.client.Get(ctx, sessionKey(id)).Result()
	if errors.Is(err, redis.Nil) {
		return session.State{}, apperror.ErrSessionNotFound
	}

	if err != nil {
		return session.State{}, fmt.Errorf("failed to get session by ID: %w", err)
	}

	var existing session.State
	if err = json.Unmarshal([]byte(response), &existing); err != nil {
		return session.State{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return existing, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by ID: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}
