// Package progression converts raw reward amounts into leveling state.
// Experience, gold and energy all follow the same shape: scale by any
// active event multiplier, then apply to the player.
package progression

import (
	"context"
	"math"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
)

const (
	// SkillPointsPerLevel is granted on every level-up
	SkillPointsPerLevel = 3

	// EnergyPerLevel raises max energy on every level-up, separate from
	// skill points
	EnergyPerLevel = 5
)

// ModifierSource looks up the active global multiplier for an effect.
// Implemented by the event registry; a nil source means no events run.
type ModifierSource interface {
	ActiveMultiplier(ctx context.Context, effect entities.EffectType) (value float64, name string, err error)
}

// Engine applies experience, gold and energy awards
type Engine struct {
	modifiers ModifierSource
}

// EngineConfig holds configuration for the engine
type EngineConfig struct {
	Modifiers ModifierSource // optional
}

// NewEngine creates a new progression engine
func NewEngine(cfg *EngineConfig) *Engine {
	if cfg == nil {
		cfg = &EngineConfig{}
	}
	return &Engine{modifiers: cfg.Modifiers}
}

// RequiredExp returns the experience needed to advance past the level
func RequiredExp(level int) int {
	return int(100 * math.Pow(float64(level), 1.5))
}

// AddExperienceResult reports what an experience award did
type AddExperienceResult struct {
	LeveledUp      bool
	LevelsGained   int
	AdjustedAmount int
	NewLevel       int
	EventName      string // active exp event consulted, if any
}

// AddExperience applies a raw experience award to the player. The amount is
// scaled by any active exp_multiplier event, then leftover experience
// carries forward across as many level-ups as it covers.
func (e *Engine) AddExperience(ctx context.Context, p *entities.Player, raw int) (*AddExperienceResult, error) {
	if raw < 0 {
		return nil, apperr.InvalidArgumentf("experience award cannot be negative: %d", raw)
	}

	multiplier, eventName, err := e.multiplier(ctx, entities.EffectExpMultiplier)
	if err != nil {
		return nil, err
	}

	adjusted := int(float64(raw) * multiplier)
	p.ClassExp += adjusted

	levels := 0
	for required := RequiredExp(p.ClassLevel); p.ClassExp >= required; required = RequiredExp(p.ClassLevel) {
		p.ClassExp -= required
		p.ClassLevel++
		p.SkillPoints += SkillPointsPerLevel
		p.MaxEnergy += EnergyPerLevel
		levels++
	}

	return &AddExperienceResult{
		LeveledUp:      levels > 0,
		LevelsGained:   levels,
		AdjustedAmount: adjusted,
		NewLevel:       p.ClassLevel,
		EventName:      eventName,
	}, nil
}

// AddGoldResult reports what a gold award did
type AddGoldResult struct {
	AdjustedAmount int
	EventName      string
}

// AddGold applies a raw gold award scaled by any active gold_multiplier
// event and advances the lifetime earned counter.
func (e *Engine) AddGold(ctx context.Context, p *entities.Player, raw int) (*AddGoldResult, error) {
	if raw < 0 {
		return nil, apperr.InvalidArgumentf("gold award cannot be negative: %d", raw)
	}

	multiplier, eventName, err := e.multiplier(ctx, entities.EffectGoldMultiplier)
	if err != nil {
		return nil, err
	}

	adjusted := int(float64(raw) * multiplier)
	p.Gold += adjusted
	p.Counters.GoldEarned += adjusted

	return &AddGoldResult{
		AdjustedAmount: adjusted,
		EventName:      eventName,
	}, nil
}

// SpendGold debits the player, failing without mutation when the balance is
// short.
func (e *Engine) SpendGold(p *entities.Player, amount int) error {
	if amount < 0 {
		return apperr.InvalidArgumentf("gold amount cannot be negative: %d", amount)
	}
	if p.Gold < amount {
		return apperr.Validation("not enough gold")
	}
	p.Gold -= amount
	p.Counters.GoldSpent += amount
	return nil
}

// AddEnergy restores energy, clamped to the player's capacity. Returns the
// amount actually added.
func (e *Engine) AddEnergy(p *entities.Player, amount int) int {
	if amount < 0 {
		return 0
	}
	before := p.Energy
	p.Energy += amount
	if p.Energy > p.MaxEnergy {
		p.Energy = p.MaxEnergy
	}
	return p.Energy - before
}

// SpendEnergy debits energy, failing without mutation when short
func (e *Engine) SpendEnergy(p *entities.Player, amount int) error {
	if amount < 0 {
		return apperr.InvalidArgumentf("energy amount cannot be negative: %d", amount)
	}
	if p.Energy < amount {
		return apperr.Validation("not enough energy")
	}
	p.Energy -= amount
	return nil
}

// RaiseMaxEnergy grows capacity from training actions
func (e *Engine) RaiseMaxEnergy(p *entities.Player, amount int) {
	if amount > 0 {
		p.MaxEnergy += amount
	}
}

// TrainingMultiplier exposes the active training event scale for callers
// computing training awards.
func (e *Engine) TrainingMultiplier(ctx context.Context) (float64, string, error) {
	return e.multiplier(ctx, entities.EffectTrainingMultiplier)
}

// AllocateStat converts unallocated skill points into a permanent stat
// assignment.
func (e *Engine) AllocateStat(p *entities.Player, stat entities.Stat, points int) error {
	if points <= 0 {
		return apperr.InvalidArgumentf("points must be positive: %d", points)
	}

	valid := false
	for _, s := range entities.AllStats {
		if s == stat {
			valid = true
			break
		}
	}
	if !valid {
		return apperr.InvalidArgumentf("unknown stat '%s'", stat)
	}

	if p.SkillPoints < points {
		return apperr.Validation("not enough skill points")
	}

	p.SkillPoints -= points
	p.AllocatedStats[stat] += points
	return nil
}

func (e *Engine) multiplier(ctx context.Context, effect entities.EffectType) (float64, string, error) {
	if e.modifiers == nil {
		return 1.0, "", nil
	}
	return e.modifiers.ActiveMultiplier(ctx, effect)
}
