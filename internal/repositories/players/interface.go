package players

//go:generate mockgen -destination=mock/mock.go -package=mockplayers -source=interface.go

import (
	"context"

	"github.com/fablebound/rpg-bot/internal/entities"
)

// Repository defines the interface for player persistence. GetOrCreate is
// the normal entry point: a missing player is initialized with defaults
// rather than reported as an error.
type Repository interface {
	// Get retrieves a player by id
	Get(ctx context.Context, id string) (*entities.Player, error)

	// GetOrCreate retrieves a player, creating a default record if absent
	GetOrCreate(ctx context.Context, id string) (*entities.Player, error)

	// Save persists the player's current state
	Save(ctx context.Context, player *entities.Player) error

	// ListAll retrieves every known player
	ListAll(ctx context.Context) ([]*entities.Player, error)
}
