// Package rulebook holds the static game content tables. Catalogs are
// package-level read-only values built once at init; nothing mutates them at
// runtime.
package rulebook

import (
	"github.com/fablebound/rpg-bot/internal/entities"
)

// DefaultClass is assigned to newly created players
const DefaultClass = "warrior"

// UnlockRequirement gates an advanced class
type UnlockRequirement struct {
	Level         int
	BaseClass     string
	DungeonClears int
}

// Class is a player archetype. Base stats are fixed; leveling grants skill
// points rather than automatic stat growth.
type Class struct {
	Key       string
	Name      string
	BaseStats entities.Stats
	DualWield bool
	Abilities []string
	Unlock    *UnlockRequirement // nil for base classes
}

var classes = map[string]*Class{
	"warrior": {
		Key:       "warrior",
		Name:      "Warrior",
		BaseStats: entities.Stats{entities.StatPower: 12, entities.StatDefense: 10, entities.StatSpeed: 6, entities.StatHP: 120},
		Abilities: []string{"slash", "shield_bash", "war_cry"},
	},
	"mage": {
		Key:       "mage",
		Name:      "Mage",
		BaseStats: entities.Stats{entities.StatPower: 14, entities.StatDefense: 5, entities.StatSpeed: 7, entities.StatHP: 90},
		Abilities: []string{"fireball", "frost_nova", "arcane_shield"},
	},
	"rogue": {
		Key:       "rogue",
		Name:      "Rogue",
		BaseStats: entities.Stats{entities.StatPower: 10, entities.StatDefense: 6, entities.StatSpeed: 12, entities.StatHP: 100},
		DualWield: true,
		Abilities: []string{"backstab", "evade", "poison_blade"},
	},
	"cleric": {
		Key:       "cleric",
		Name:      "Cleric",
		BaseStats: entities.Stats{entities.StatPower: 8, entities.StatDefense: 9, entities.StatSpeed: 6, entities.StatHP: 110},
		Abilities: []string{"smite", "heal", "blessing"},
	},
	"ranger": {
		Key:       "ranger",
		Name:      "Ranger",
		BaseStats: entities.Stats{entities.StatPower: 11, entities.StatDefense: 7, entities.StatSpeed: 10, entities.StatHP: 105},
		DualWield: true,
		Abilities: []string{"aimed_shot", "trap", "companion"},
	},
	"berserker": {
		Key:       "berserker",
		Name:      "Berserker",
		BaseStats: entities.Stats{entities.StatPower: 16, entities.StatDefense: 8, entities.StatSpeed: 8, entities.StatHP: 140},
		DualWield: true,
		Abilities: []string{"rampage", "blood_rage", "cleave"},
		Unlock:    &UnlockRequirement{Level: 20, BaseClass: "warrior", DungeonClears: 10},
	},
	"archmage": {
		Key:       "archmage",
		Name:      "Archmage",
		BaseStats: entities.Stats{entities.StatPower: 18, entities.StatDefense: 6, entities.StatSpeed: 8, entities.StatHP: 100},
		Abilities: []string{"meteor", "time_warp", "mana_surge"},
		Unlock:    &UnlockRequirement{Level: 20, BaseClass: "mage", DungeonClears: 10},
	},
	"assassin": {
		Key:       "assassin",
		Name:      "Assassin",
		BaseStats: entities.Stats{entities.StatPower: 13, entities.StatDefense: 6, entities.StatSpeed: 15, entities.StatHP: 105},
		DualWield: true,
		Abilities: []string{"shadow_step", "execute", "smoke_bomb"},
		Unlock:    &UnlockRequirement{Level: 20, BaseClass: "rogue", DungeonClears: 10},
	},
}

// GetClass looks up a class by key
func GetClass(key string) (*Class, bool) {
	c, ok := classes[key]
	return c, ok
}

// ClassKeys returns every class key (unordered)
func ClassKeys() []string {
	keys := make([]string, 0, len(classes))
	for k := range classes {
		keys = append(keys, k)
	}
	return keys
}

// CanDualWield reports whether the class may occupy the off-hand weapon slot
func CanDualWield(classKey string) bool {
	c, ok := classes[classKey]
	return ok && c.DualWield
}
