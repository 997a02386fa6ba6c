package guilds

//go:generate mockgen -destination=mock/mock.go -package=mockguilds -source=interface.go

import (
	"context"

	"github.com/fablebound/rpg-bot/internal/entities"
)

// Repository defines the interface for guild persistence. Guild names are
// unique; Create and Rename enforce the constraint.
type Repository interface {
	// Create stores a new guild, claiming its name
	Create(ctx context.Context, guild *entities.Guild) error

	// Get retrieves a guild by id
	Get(ctx context.Context, id string) (*entities.Guild, error)

	// GetByName retrieves a guild by its (case-insensitive) name
	GetByName(ctx context.Context, name string) (*entities.Guild, error)

	// Update updates an existing guild
	Update(ctx context.Context, guild *entities.Guild) error

	// Rename atomically releases the old name and claims the new one
	Rename(ctx context.Context, guild *entities.Guild, newName string) error

	// Delete removes a guild and releases its name
	Delete(ctx context.Context, id string) error
}
