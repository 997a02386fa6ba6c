package testutils

import (
	"time"

	"github.com/fablebound/rpg-bot/internal/entities"
)

// CreateTestPlayer creates a level 1 warrior with a predictable gold and
// energy balance.
func CreateTestPlayer(id string) *entities.Player {
	p := entities.NewPlayer(id, "warrior")
	p.Gold = 500
	p.CreatedAt = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	p.UpdatedAt = p.CreatedAt
	return p
}

// CreateTestPlayerAtLevel creates a player at the given level with no
// leftover experience.
func CreateTestPlayerAtLevel(id string, level int) *entities.Player {
	p := CreateTestPlayer(id)
	p.ClassLevel = level
	return p
}

// CreateTestGuild creates a level 1 guild with the leader as sole member
func CreateTestGuild(id, name, leaderID string) *entities.Guild {
	g := entities.NewGuild(id, name, leaderID)
	g.CreatedAt = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	g.UpdatedAt = g.CreatedAt
	return g
}

// CreateTestItem creates a weapon with a single power bonus
func CreateTestItem(id, name string, power int) *entities.Item {
	return &entities.Item{
		ID:     id,
		Name:   name,
		Type:   entities.ItemTypeWeapon,
		Rarity: entities.RarityCommon,
		StatBonuses: entities.Stats{
			entities.StatPower: power,
		},
		Value: 100,
	}
}

// GiveItem appends an unequipped inventory entry to the player
func GiveItem(p *entities.Player, item *entities.Item) *entities.InventoryItem {
	inv := &entities.InventoryItem{Item: item, Quantity: 1}
	p.Inventory = append(p.Inventory, inv)
	return inv
}
