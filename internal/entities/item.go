package entities

// ItemType classifies an item template
type ItemType string

const (
	ItemTypeWeapon     ItemType = "weapon"
	ItemTypeArmor      ItemType = "armor"
	ItemTypeAccessory  ItemType = "accessory"
	ItemTypeConsumable ItemType = "consumable"
	ItemTypeSpecial    ItemType = "special"
)

// Rarity is an ordered item quality tier
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
	RarityMythic    Rarity = "mythic"
	RarityArtifact  Rarity = "artifact"
	RarityDivine    Rarity = "divine"
)

var rarityRank = map[Rarity]int{
	RarityCommon:    0,
	RarityUncommon:  1,
	RarityRare:      2,
	RarityEpic:      3,
	RarityLegendary: 4,
	RarityMythic:    5,
	RarityArtifact:  6,
	RarityDivine:    7,
}

// Rank returns the rarity's position in the quality ordering
func (r Rarity) Rank() int {
	return rarityRank[r]
}

// AtLeast reports whether r is the same tier as other or higher
func (r Rarity) AtLeast(other Rarity) bool {
	return r.Rank() >= other.Rank()
}

// Item is an immutable template instance
type Item struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Type             ItemType `json:"type"`
	Rarity           Rarity   `json:"rarity"`
	StatBonuses      Stats    `json:"stat_bonuses,omitempty"`
	LevelRequirement int      `json:"level_requirement"`
	Value            int      `json:"value"`
}

// InventoryItem wraps an Item with ownership state. Consumables stack;
// everything else holds quantity 1 per entry.
type InventoryItem struct {
	Item     *Item `json:"item"`
	Quantity int   `json:"quantity"`
	Equipped bool  `json:"equipped"`
}

// Slot names an equipment slot on a player
type Slot string

const (
	SlotWeapon    Slot = "weapon"
	SlotWeapon2   Slot = "weapon2" // off-hand, dual-wield classes only
	SlotArmor     Slot = "armor"
	SlotAccessory Slot = "accessory"
)

// EquipSlots lists every equippable slot
var EquipSlots = []Slot{SlotWeapon, SlotWeapon2, SlotArmor, SlotAccessory}

// SlotFor returns the natural slot for an item type, and false for item
// types that cannot be equipped.
func SlotFor(t ItemType) (Slot, bool) {
	switch t {
	case ItemTypeWeapon:
		return SlotWeapon, true
	case ItemTypeArmor:
		return SlotArmor, true
	case ItemTypeAccessory:
		return SlotAccessory, true
	default:
		return "", false
	}
}
