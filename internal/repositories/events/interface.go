package events

//go:generate mockgen -destination=mock/mock.go -package=mockevents -source=interface.go

import (
	"context"

	"github.com/fablebound/rpg-bot/internal/entities"
)

// Repository defines the interface for event modifier persistence. Expired
// entries are not removed here; the registry purges them lazily on read.
type Repository interface {
	// Put stores or replaces an event modifier
	Put(ctx context.Context, event *entities.EventModifier) error

	// Get retrieves an event modifier by id
	Get(ctx context.Context, id string) (*entities.EventModifier, error)

	// List retrieves every stored event modifier
	List(ctx context.Context) ([]*entities.EventModifier, error)

	// Delete removes an event modifier
	Delete(ctx context.Context, id string) error
}
