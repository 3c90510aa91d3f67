package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each session as one JSON value with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisStore) Load(ctx context.Context, sessionID string) (domain.SessionState, error) {
	if sessionID == "" {
		return domain.SessionState{}, ErrInvalidSessionID
	}
	key := sessionKey(sessionID)

	state, err := r.get(ctx, key)
	if err == nil {
		if errExpire := r.client.Expire(ctx, key, r.ttl).Err(); errExpire != nil {
			return domain.SessionState{}, fmt.Errorf("redis expire failed: %w", errExpire)
		}
		return state, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return domain.SessionState{}, err
	}

	empty := domain.NewSessionState()
	data, err := domain.EncodeSessionState(empty)
	if err != nil {
		return domain.SessionState{}, err
	}
	created, err := r.client.SetNX(ctx, key, data, r.ttl).Result()
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("redis setnx failed: %w", err)
	}
	if created {
		return empty, nil
	}

	// lost the creation race; read the winner's value
	return r.get(ctx, key)
}

func (r *RedisStore) get(ctx context.Context, key string) (domain.SessionState, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SessionState{}, ErrSessionNotFound
	}
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("redis get failed: %w", err)
	}
	return domain.DecodeSessionState(data)
}

func (r *RedisStore) Save(ctx context.Context, sessionID string, state domain.SessionState) error {
	if sessionID == "" {
		return ErrInvalidSessionID
	}
	data, err := domain.EncodeSessionState(state)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, sessionKey(sessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}
