package guilds

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
)

type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient
	TimeProvider clock.TimeProvider // optional, defaults to system clock
}

// NewRedisRepository creates a new Redis-backed guild repository
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
	return fmt.Sprintf("guild:%s", id)
}

func (r *redisRepo) nameKey(name string) string {
	return fmt.Sprintf("guild:name:%s", strings.ToLower(name))
}

// Create stores a new guild and claims its name with SETNX
func (r *redisRepo) Create(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if guild.ID == "" {
		return apperr.InvalidArgument("guild ID is required")
	}
	if guild.Name == "" {
		return apperr.InvalidArgument("guild name is required")
	}

	claimed, err := r.client.SetNX(ctx, r.nameKey(guild.Name), guild.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim guild name: %w", err)
	}
	if !claimed {
		return apperr.AlreadyExistsf("guild name '%s' is already taken", guild.Name).
			WithMeta("guild_name", guild.Name)
	}

	guild.CreatedAt = r.timeProvider.Now()
	guild.UpdatedAt = guild.CreatedAt

	if err := r.set(ctx, guild); err != nil {
		// release the claimed name so a retry can succeed
		r.client.Del(ctx, r.nameKey(guild.Name))
		return err
	}
	return nil
}

// Get retrieves a guild by id
func (r *redisRepo) Get(ctx context.Context, id string) (*entities.Guild, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	jsonData, err := r.client.Get(ctx, r.key(id)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("guild with ID '%s' not found", id).
			WithMeta("guild_id", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guild: %w", err)
	}

	var guild entities.Guild
	if unmarshalErr := json.Unmarshal([]byte(jsonData), &guild); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal guild: %w", unmarshalErr)
	}

	normalizeGuild(&guild)
	return &guild, nil
}

// GetByName resolves the name index then loads the guild
func (r *redisRepo) GetByName(ctx context.Context, name string) (*entities.Guild, error) {
	if name == "" {
		return nil, apperr.InvalidArgument("guild name is required")
	}

	id, err := r.client.Get(ctx, r.nameKey(name)).Result()
	if err == redis.Nil {
		return nil, apperr.NotFoundf("guild named '%s' not found", name).
			WithMeta("guild_name", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve guild name: %w", err)
	}

	return r.Get(ctx, id)
}

// Update updates an existing guild
func (r *redisRepo) Update(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if guild.ID == "" {
		return apperr.InvalidArgument("guild ID is required")
	}

	exists, err := r.client.Exists(ctx, r.key(guild.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check guild existence: %w", err)
	}
	if exists == 0 {
		return apperr.NotFoundf("guild with ID '%s' not found", guild.ID).
			WithMeta("guild_id", guild.ID)
	}

	guild.UpdatedAt = r.timeProvider.Now()
	return r.set(ctx, guild)
}

// Rename claims the new name, rewrites the guild, then releases the old name
func (r *redisRepo) Rename(ctx context.Context, guild *entities.Guild, newName string) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if newName == "" {
		return apperr.InvalidArgument("new guild name is required")
	}

	claimed, err := r.client.SetNX(ctx, r.nameKey(newName), guild.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim guild name: %w", err)
	}
	if !claimed {
		return apperr.AlreadyExistsf("guild name '%s' is already taken", newName).
			WithMeta("guild_name", newName)
	}

	oldName := guild.Name
	guild.Name = newName
	guild.UpdatedAt = r.timeProvider.Now()

	if err := r.set(ctx, guild); err != nil {
		guild.Name = oldName
		r.client.Del(ctx, r.nameKey(newName))
		return err
	}

	if !strings.EqualFold(oldName, newName) {
		r.client.Del(ctx, r.nameKey(oldName))
	}
	return nil
}

// Delete removes a guild and releases its name
func (r *redisRepo) Delete(ctx context.Context, id string) error {
	guild, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, r.key(id))
	pipe.Del(ctx, r.nameKey(guild.Name))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete guild: %w", err)
	}
	return nil
}

func (r *redisRepo) set(ctx context.Context, guild *entities.Guild) error {
	jsonData, err := json.Marshal(guild)
	if err != nil {
		return fmt.Errorf("failed to marshal guild: %w", err)
	}

	if err := r.client.Set(ctx, r.key(guild.ID), string(jsonData), 0).Err(); err != nil {
		return fmt.Errorf("failed to store guild: %w", err)
	}
	return nil
}

func normalizeGuild(g *entities.Guild) {
	if g.OfficerIDs == nil {
		g.OfficerIDs = []string{}
	}
	if g.MemberIDs == nil {
		g.MemberIDs = []string{}
	}
	if g.Upgrades == nil {
		g.Upgrades = make(map[string]int)
	}
	if g.Contributions == nil {
		g.Contributions = make(map[string]map[string]int)
	}
}
