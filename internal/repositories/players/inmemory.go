package players

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/rulebook"
)

// InMemoryRepository is an in-memory implementation of the player
// repository. Useful for testing and development.
type InMemoryRepository struct {
	mu      sync.RWMutex
	players map[string]*entities.Player
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		players: make(map[string]*entities.Player),
	}
}

// Get retrieves a player by id
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.Player, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("player ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	player, exists := r.players[id]
	if !exists {
		return nil, apperr.NotFoundf("player with ID '%s' not found", id).
			WithMeta("player_id", id)
	}

	return copyPlayer(player)
}

// GetOrCreate retrieves a player, initializing a default record when absent
func (r *InMemoryRepository) GetOrCreate(ctx context.Context, id string) (*entities.Player, error) {
	player, err := r.Get(ctx, id)
	if err == nil {
		return player, nil
	}
	if !apperr.IsNotFound(err) {
		return nil, err
	}

	player = entities.NewPlayer(id, rulebook.DefaultClass)
	if saveErr := r.Save(ctx, player); saveErr != nil {
		return nil, saveErr
	}
	return player, nil
}

// Save persists the player's current state
func (r *InMemoryRepository) Save(ctx context.Context, player *entities.Player) error {
	if player == nil {
		return apperr.InvalidArgument("player cannot be nil")
	}
	if player.ID == "" {
		return apperr.InvalidArgument("player ID is required")
	}

	stored, err := copyPlayer(player)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[player.ID] = stored

	return nil
}

// ListAll retrieves every known player
func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*entities.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Player, 0, len(r.players))
	for _, player := range r.players {
		cp, err := copyPlayer(player)
		if err != nil {
			return nil, err
		}
		result = append(result, cp)
	}
	return result, nil
}

// copyPlayer deep-copies through JSON so stored state cannot be mutated
// behind the repository's back.
func copyPlayer(p *entities.Player) (*entities.Player, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	var cp entities.Player
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	normalize(&cp)
	return &cp, nil
}
