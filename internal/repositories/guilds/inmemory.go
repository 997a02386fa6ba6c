package guilds

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the guild repository.
// Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	guilds map[string]*entities.Guild
	names  map[string]string // lowercased name -> guild id
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		guilds: make(map[string]*entities.Guild),
		names:  make(map[string]string),
	}
}

// Create stores a new guild, claiming its name
func (r *InMemoryRepository) Create(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if guild.ID == "" {
		return apperr.InvalidArgument("guild ID is required")
	}
	if guild.Name == "" {
		return apperr.InvalidArgument("guild name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	lower := strings.ToLower(guild.Name)
	if _, taken := r.names[lower]; taken {
		return apperr.AlreadyExistsf("guild name '%s' is already taken", guild.Name).
			WithMeta("guild_name", guild.Name)
	}
	if _, exists := r.guilds[guild.ID]; exists {
		return apperr.AlreadyExistsf("guild with ID '%s' already exists", guild.ID).
			WithMeta("guild_id", guild.ID)
	}

	cp, err := copyGuild(guild)
	if err != nil {
		return err
	}
	r.guilds[guild.ID] = cp
	r.names[lower] = guild.ID
	return nil
}

// Get retrieves a guild by id
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Guild, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("guild ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	guild, exists := r.guilds[id]
	if !exists {
		return nil, apperr.NotFoundf("guild with ID '%s' not found", id).
			WithMeta("guild_id", id)
	}
	return copyGuild(guild)
}

// GetByName retrieves a guild by its case-insensitive name
func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (*entities.Guild, error) {
	if name == "" {
		return nil, apperr.InvalidArgument("guild name is required")
	}

	r.mu.RLock()
	id, ok := r.names[strings.ToLower(name)]
	r.mu.RUnlock()

	if !ok {
		return nil, apperr.NotFoundf("guild named '%s' not found", name).
			WithMeta("guild_name", name)
	}
	return r.Get(ctx, id)
}

// Update updates an existing guild
func (r *InMemoryRepository) Update(ctx context.Context, guild *entities.Guild) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if guild.ID == "" {
		return apperr.InvalidArgument("guild ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.guilds[guild.ID]; !exists {
		return apperr.NotFoundf("guild with ID '%s' not found", guild.ID).
			WithMeta("guild_id", guild.ID)
	}

	cp, err := copyGuild(guild)
	if err != nil {
		return err
	}
	r.guilds[guild.ID] = cp
	return nil
}

// Rename atomically releases the old name and claims the new one
func (r *InMemoryRepository) Rename(ctx context.Context, guild *entities.Guild, newName string) error {
	if guild == nil {
		return apperr.InvalidArgument("guild cannot be nil")
	}
	if newName == "" {
		return apperr.InvalidArgument("new guild name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stored, exists := r.guilds[guild.ID]
	if !exists {
		return apperr.NotFoundf("guild with ID '%s' not found", guild.ID).
			WithMeta("guild_id", guild.ID)
	}

	lower := strings.ToLower(newName)
	if ownerID, taken := r.names[lower]; taken && ownerID != guild.ID {
		return apperr.AlreadyExistsf("guild name '%s' is already taken", newName).
			WithMeta("guild_name", newName)
	}

	delete(r.names, strings.ToLower(stored.Name))
	guild.Name = newName

	cp, err := copyGuild(guild)
	if err != nil {
		return err
	}
	r.guilds[guild.ID] = cp
	r.names[lower] = guild.ID
	return nil
}

// Delete removes a guild and releases its name
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("guild ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	guild, exists := r.guilds[id]
	if !exists {
		return apperr.NotFoundf("guild with ID '%s' not found", id).
			WithMeta("guild_id", id)
	}

	delete(r.names, strings.ToLower(guild.Name))
	delete(r.guilds, id)
	return nil
}

func copyGuild(g *entities.Guild) (*entities.Guild, error) {
	data, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	var cp entities.Guild
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	normalizeGuild(&cp)
	return &cp, nil
}
