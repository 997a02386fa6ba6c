// Package event tracks time-bounded global modifiers (double experience,
// gold rush, world bosses). Expired modifiers are purged lazily on read.
package event

import (
	"context"
	"sort"
	"time"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/events"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/rng"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/uuid"
)

// Registry manages event modifier instances
type Registry struct {
	repo         events.Repository
	players      players.Repository
	timeProvider clock.TimeProvider
	roller       rng.Roller
	uuidGen      uuid.Generator
}

// RegistryConfig holds configuration for the registry
type RegistryConfig struct {
	Repository       events.Repository
	PlayerRepository players.Repository // required for world-boss scaling
	TimeProvider     clock.TimeProvider // optional, defaults to system clock
	Roller           rng.Roller         // optional, defaults to seeded source
	UUIDGenerator    uuid.Generator     // optional
}

// NewRegistry creates a new event registry
func NewRegistry(cfg *RegistryConfig) *Registry {
	if cfg.Repository == nil {
		panic("event repository is required")
	}

	r := &Registry{
		repo:         cfg.Repository,
		players:      cfg.PlayerRepository,
		timeProvider: cfg.TimeProvider,
		roller:       cfg.Roller,
		uuidGen:      cfg.UUIDGenerator,
	}
	if r.timeProvider == nil {
		r.timeProvider = clock.New()
	}
	if r.roller == nil {
		r.roller = rng.New()
	}
	if r.uuidGen == nil {
		r.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return r
}

// StartEvent instantiates the definition. A zero durationOverride uses the
// definition's default duration. World-boss events fix their boss name and
// level here; neither is re-rolled for the lifetime of the instance.
func (r *Registry) StartEvent(ctx context.Context, definitionID string, durationOverride time.Duration) (*entities.EventModifier, error) {
	def, ok := rulebook.GetEventDefinition(definitionID)
	if !ok {
		return nil, apperr.NotFoundf("event definition '%s' not found", definitionID).
			WithMeta("definition_id", definitionID)
	}

	duration := def.Duration
	if durationOverride > 0 {
		duration = durationOverride
	}

	now := r.timeProvider.Now()
	event := &entities.EventModifier{
		ID:           r.uuidGen.New(),
		DefinitionID: def.ID,
		Name:         def.Name,
		Effect:       def.Effect,
		Value:        def.Value,
		StartsAt:     now,
		EndsAt:       now.Add(duration),
	}

	if def.Effect == entities.EffectWorldBoss {
		avgLevel, err := r.averagePlayerLevel(ctx)
		if err != nil {
			return nil, err
		}
		event.BossLevel = avgLevel + def.BossLevelOffset
		names := rulebook.BossNames()
		event.BossName = names[r.roller.Intn(len(names))]
	}

	if err := r.repo.Put(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// ActiveEvents lists live modifiers, deleting expired ones first. The
// result is ordered by start time then id so "first active" lookups are
// deterministic.
func (r *Registry) ActiveEvents(ctx context.Context) ([]*entities.EventModifier, error) {
	all, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	now := r.timeProvider.Now()
	active := make([]*entities.EventModifier, 0, len(all))
	for _, event := range all {
		if event.Expired(now) {
			if delErr := r.repo.Delete(ctx, event.ID); delErr != nil {
				return nil, delErr
			}
			continue
		}
		if event.Active(now) {
			active = append(active, event)
		}
	}

	sort.Slice(active, func(i, j int) bool {
		if !active[i].StartsAt.Equal(active[j].StartsAt) {
			return active[i].StartsAt.Before(active[j].StartsAt)
		}
		return active[i].ID < active[j].ID
	})
	return active, nil
}

// EndEvent removes a modifier unconditionally
func (r *Registry) EndEvent(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

// ActiveMultiplier returns the value and name of the first active modifier
// of the effect type, or 1.0 when none is live.
//
/// Concurrent modifiers of the same effect type do not stack: only the
// earliest-started one is consulted. This mirrors the product's
// one-event-at-a-time policy rather than multiplying overlapping windows.
func (r *Registry) ActiveMultiplier(ctx context.Context, effect entities.EffectType) (float64, string, error) {
	active, err := r.ActiveEvents(ctx)
	if err != nil {
		return 1.0, "", err
	}

	for _, event := range active {
		if event.Effect == effect {
			return event.Value, event.Name, nil
		}
	}
	return 1.0, "", nil
}

// averagePlayerLevel computes the mean class level across all known
// players, defaulting to 1 for an empty roster.
func (r *Registry) averagePlayerLevel(ctx context.Context) (int, error) {
	if r.players == nil {
		return 1, nil
	}

	all, err := r.players.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 1, nil
	}

	total := 0
	for _, p := range all {
		total += p.ClassLevel
	}
	return total / len(all), nil
}
