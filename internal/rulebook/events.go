package rulebook

import (
	"time"

	"github.com/fablebound/rpg-bot/internal/entities"
)

// EventDefinition is a startable global event template. World-boss flavors
// carry a level offset added to the average player level at start time.
type EventDefinition struct {
	ID        string
	Name      string
	Effect    entities.EffectType
	Value     float64
	Duration  time.Duration
	BossLevelOffset int
}

var eventDefinitions = map[string]*EventDefinition{
	"double_exp": {
		ID: "double_exp", Name: "Double Experience Weekend",
		Effect: entities.EffectExpMultiplier, Value: 2.0, Duration: 48 * time.Hour,
	},
	"triple_exp": {
		ID: "triple_exp", Name: "Festival of Insight",
		Effect: entities.EffectExpMultiplier, Value: 3.0, Duration: 12 * time.Hour,
	},
	"gold_rush": {
		ID: "gold_rush", Name: "Gold Rush",
		Effect: entities.EffectGoldMultiplier, Value: 2.0, Duration: 24 * time.Hour,
	},
	"lucky_stars": {
		ID: "lucky_stars", Name: "Lucky Stars",
		Effect: entities.EffectItemRarityBoost, Value: 1.5, Duration: 24 * time.Hour,
	},
	"training_frenzy": {
		ID: "training_frenzy", Name: "Training Frenzy",
		Effect: entities.EffectTrainingMultiplier, Value: 2.0, Duration: 24 * time.Hour,
	},
	"world_boss_wyrm": {
		ID: "world_boss_wyrm", Name: "Wyrm Incursion",
		Effect: entities.EffectWorldBoss, Value: 1.0, Duration: 6 * time.Hour,
		BossLevelOffset: 10,
	},
	"world_boss_titan": {
		ID: "world_boss_titan", Name: "Titan Awakening",
		Effect: entities.EffectWorldBoss, Value: 1.0, Duration: 6 * time.Hour,
		BossLevelOffset: 20,
	},
}

// bossNames is the curated world-boss name pool; a name is fixed for the
// lifetime of the event instance it was drawn for.
var bossNames = []string{
	"Vorthak the Unending",
	"Maelgrim, Eater of Suns",
	"Szaravox the Hollow",
	"Kharon of the Black Gate",
	"Ullrath Stormfather",
	"Nycteris the Veiled",
}

// GetEventDefinition looks up an event definition by id
func GetEventDefinition(id string) (*EventDefinition, bool) {
	d, ok := eventDefinitions[id]
	return d, ok
}

// BossNames returns the world-boss name pool in declaration order
func BossNames() []string {
	return bossNames
}
