package events

import (
	"context"
	"sync"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the event repository.
// Useful for testing and development.
type InMemoryRepository struct {
	mu     sync.RWMutex
	events map[string]*entities.EventModifier
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		events: make(map[string]*entities.EventModifier),
	}
}

// Put stores or replaces an event modifier
func (r *InMemoryRepository) Put(ctx context.Context, event *entities.EventModifier) error {
	if event == nil {
		return apperr.InvalidArgument("event cannot be nil")
	}
	if event.ID == "" {
		return apperr.InvalidArgument("event ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *event
	r.events[event.ID] = &cp
	return nil
}

// Get retrieves an event modifier by id
func (r *InMemoryRepository) Get(ctx context.Context, id string) (*entities.EventModifier, error) {
	if id == "" {
		return nil, apperr.InvalidArgument("event ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	event, exists := r.events[id]
	if !exists {
		return nil, apperr.NotFoundf("event with ID '%s' not found", id).
			WithMeta("event_id", id)
	}

	cp := *event
	return &cp, nil
}

// List retrieves every stored event modifier
func (r *InMemoryRepository) List(ctx context.Context) ([]*entities.EventModifier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.EventModifier, 0, len(r.events))
	for _, event := range r.events {
		cp := *event
		result = append(result, &cp)
	}
	return result, nil
}

// Delete removes an event modifier
func (r *InMemoryRepository) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperr.InvalidArgument("event ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.events, id)
	return nil
}
