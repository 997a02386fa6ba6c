package entities

import "time"

// EffectType is the closed set of global event effects
type EffectType string

const (
	EffectExpMultiplier      EffectType = "exp_multiplier"
	EffectGoldMultiplier     EffectType = "gold_multiplier"
	EffectItemRarityBoost    EffectType = "item_rarity_boost"
	EffectTrainingMultiplier EffectType = "training_multiplier"
	EffectWorldBoss          EffectType = "world_boss"
)

// EventModifier is a time-bounded global modifier instance. World boss
// events fix their boss name and level at creation; neither is re-rolled.
type EventModifier struct {
	ID           string     `json:"id"`
	DefinitionID string     `json:"definition_id"`
	Name         string     `json:"name"`
	Effect       EffectType `json:"effect"`
	Value        float64    `json:"value"`
	BossName     string     `json:"boss_name,omitempty"`
	BossLevel    int        `json:"boss_level,omitempty"`
	StartsAt     time.Time  `json:"starts_at"`
	EndsAt       time.Time  `json:"ends_at"`
}

// Active reports whether the modifier is live at the given instant
func (e *EventModifier) Active(now time.Time) bool {
	return !now.Before(e.StartsAt) && now.Before(e.EndsAt)
}

// Expired reports whether the modifier's window has passed
func (e *EventModifier) Expired(now time.Time) bool {
	return !now.Before(e.EndsAt)
}
