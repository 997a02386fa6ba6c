package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
)

type redisRepo struct {
	client redis.UniversalClient
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client redis.UniversalClient
}

// NewRedisRepository creates a new Redis-backed event repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}
	return &redisRepo{client: cfg.Client}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("event:%s", id)
}

func (r *redisRepo) indexKey() string {
	return "events"
}

// Put stores or replaces an event modifier
func (r *redisRepo) Put(ctx context.Context, event *entities.EventModifier) error {
	if event == nil {
		return apperr.InvalidArgument("event cannot be nil")
	}
	if event.ID == "" {
		return apperr.InvalidArgument("event ID is required")
	}

	jsonData, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(event.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.indexKey(), event.ID)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}
	return nil
}

// Get retrieves an event modifier by id
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.EventModifier, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("event ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("event with ID '%s' not found", id).
			WithMeta("event_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var event entities.EventModifier
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &event); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", unmarshalErr)
	}
	return &event, nil
}

// List retrieves every stored event modifier
func (r *redisRepo) List(ctx context.Context) ([]*entities.EventModifier, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list event IDs: %w", err)
	}

	result := make([]*entities.EventModifier, 0, len(ids))
	for _, id := range ids {
		event, getErr := r.Get(ctx, id)
		if getErr != nil {
			if apperr.IsNotFound(getErr) {
				continue
			}
			return nil, getErr
		}
		result = append(result, event)
	}
	return result, nil
}

// Delete removes an event modifier
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("event ID is required")
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.SRem(ctx, r.indexKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}
