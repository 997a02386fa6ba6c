package rulebook

import (
	"github.com/fablebound/rpg-bot/internal/entities"
)

var items = map[string]*entities.Item{
	"rusty_sword": {
		ID: "rusty_sword", Name: "Rusty Sword", Type: entities.ItemTypeWeapon,
		Rarity: entities.RarityCommon, StatBonuses: entities.Stats{entities.StatPower: 3},
		LevelRequirement: 1, Value: 25,
	},
	"iron_sword": {
		ID: "iron_sword", Name: "Iron Sword", Type: entities.ItemTypeWeapon,
		Rarity: entities.RarityUncommon, StatBonuses: entities.Stats{entities.StatPower: 8},
		LevelRequirement: 5, Value: 150,
	},
	"steel_dagger": {
		ID: "steel_dagger", Name: "Steel Dagger", Type: entities.ItemTypeWeapon,
		Rarity: entities.RarityUncommon, StatBonuses: entities.Stats{entities.StatPower: 6, entities.StatSpeed: 2},
		LevelRequirement: 5, Value: 140,
	},
	"flameblade": {
		ID: "flameblade", Name: "Flameblade", Type: entities.ItemTypeWeapon,
		Rarity: entities.RarityEpic, StatBonuses: entities.Stats{entities.StatPower: 20, entities.StatSpeed: 4},
		LevelRequirement: 20, Value: 2500,
	},
	"leather_armor": {
		ID: "leather_armor", Name: "Leather Armor", Type: entities.ItemTypeArmor,
		Rarity: entities.RarityCommon, StatBonuses: entities.Stats{entities.StatDefense: 4, entities.StatHP: 10},
		LevelRequirement: 1, Value: 40,
	},
	"plate_armor": {
		ID: "plate_armor", Name: "Plate Armor", Type: entities.ItemTypeArmor,
		Rarity: entities.RarityRare, StatBonuses: entities.Stats{entities.StatDefense: 14, entities.StatHP: 30, entities.StatSpeed: -2},
		LevelRequirement: 12, Value: 900,
	},
	"swift_ring": {
		ID: "swift_ring", Name: "Swift Ring", Type: entities.ItemTypeAccessory,
		Rarity: entities.RarityRare, StatBonuses: entities.Stats{entities.StatSpeed: 6},
		LevelRequirement: 8, Value: 600,
	},
	"amulet_of_vigor": {
		ID: "amulet_of_vigor", Name: "Amulet of Vigor", Type: entities.ItemTypeAccessory,
		Rarity: entities.RarityEpic, StatBonuses: entities.Stats{entities.StatHP: 50, entities.StatDefense: 3},
		LevelRequirement: 15, Value: 1800,
	},
	"healing_potion": {
		ID: "healing_potion", Name: "Healing Potion", Type: entities.ItemTypeConsumable,
		Rarity: entities.RarityCommon, LevelRequirement: 1, Value: 20,
	},
	"energy_tonic": {
		ID: "energy_tonic", Name: "Energy Tonic", Type: entities.ItemTypeConsumable,
		Rarity: entities.RarityUncommon, LevelRequirement: 1, Value: 45,
	},
	"champions_crest": {
		ID: "champions_crest", Name: "Champion's Crest", Type: entities.ItemTypeSpecial,
		Rarity: entities.RarityLegendary, LevelRequirement: 1, Value: 0,
	},
	"dungeon_masters_key": {
		ID: "dungeon_masters_key", Name: "Dungeon Master's Key", Type: entities.ItemTypeSpecial,
		Rarity: entities.RarityMythic, LevelRequirement: 1, Value: 0,
	},
	"crown_of_legends": {
		ID: "crown_of_legends", Name: "Crown of Legends", Type: entities.ItemTypeSpecial,
		Rarity: entities.RarityDivine, LevelRequirement: 1, Value: 0,
	},
}

// GetItem looks up an item template by id
func GetItem(id string) (*entities.Item, bool) {
	it, ok := items[id]
	return it, ok
}
