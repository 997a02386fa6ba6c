package players

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/rulebook"
)

// listFanout bounds concurrent per-player reads in ListAll
const listFanout = 8

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider clock.TimeProvider // optional, defaults to system clock
}

// NewRedisRepository creates a new Redis-backed player repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil {
		panic("RedisRepoConfig cannot be nil")
	}
	if cfg.Client == nil {
		panic("Redis client cannot be nil")
	}

	tp := cfg.TimeProvider
	if tp == nil {
		tp = clock.New()
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: tp,
	}
}

func (r *redisRepo) key(id string) string {
	return fmt.Sprintf("player:%s", id)
}

func (r *redisRepo) indexKey() string {
	return "players"
}

// Get retrieves a player by id
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Player, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("player ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("player with ID '%s' not found", id).
			WithMeta("player_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	var player entities.Player
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &player); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal player: %w", unmarshalErr)
	}

	normalize(&player)
	return &player, nil
}

// GetOrCreate retrieves a player, initializing a default record when absent
func (r *redisRepo) GetOrCreate(ctx context.Context, id string) (*entities.Player, error) {
	player, err := r.Get(ctx, id)
	if err == nil {
		return player, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	player = entities.NewPlayer(id, rulebook.DefaultClass)
	player.CreatedAt = r.timeProvider.Now()
	player.UpdatedAt = player.CreatedAt

	if saveErr := r.Save(ctx, player); saveErr != nil {
		return nil, saveErr
	}
	return player, nil
}

// Save persists the player and maintains the id index
func (r *redisRepo) Save(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return apperr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return apperr.InvalidArgument("player ID is required")
	}

	player.UpdatedAt = r.timeProvider.Now()
	if player.CreatedAt.IsZero() {
		player.CreatedAt = player.UpdatedAt
	}

	jsonData, err := json.Marshal(player)
	if err != nil {
		return fmt.Errorf("failed to marshal player: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, r.key(player.ID), string(jsonData), 0)
	pipe.SAdd(ctx, r.indexKey(), player.ID)
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}

	return nil
}

// ListAll fans out reads over the id index with a bounded errgroup
func (r *redisRepo) ListAll(ctx context.Context) ([]*entities.Player, error) {
	ids, err := r.client.SMembers(ctx, r.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list player IDs: %w", err)
	}

	result := make([]*entities.Player, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(listFanout)

	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			player, getErr := r.Get(ctx, id)
			if getErr != nil {
				if apperr.IsNotFound(getErr) {
					return nil // index entry without a record, skip
				}
				return getErr
			}
			result[i] = player
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	players := make([]*entities.Player, 0, len(result))
	for _, p := range result {
		if p != nil {
			players = append(players, p)
		}
	}
	return players, nil
}

// normalize re-initializes collections that may be nil after JSON decoding
// of records written by older versions.
func normalize(p *entities.Player) {
	if p.AllocatedStats == nil {
		p.AllocatedStats = entities.Stats{}
	}
	if p.EquippedItems == nil {
		p.EquippedItems = make(map[entities.Slot]string)
	}
	if p.Inventory == nil {
		p.Inventory = []*entities.InventoryItem{}
	}
	if p.Achievements == nil {
		p.Achievements = make(map[string]time.Time)
	}
	if p.DailyQuests == nil {
		p.DailyQuests = make(map[string][]*entities.QuestInstance)
	}
	if p.WeeklyQuests == nil {
		p.WeeklyQuests = make(map[string][]*entities.QuestInstance)
	}
	if p.LongTermQuests == nil {
		p.LongTermQuests = []*entities.QuestInstance{}
	}
}
