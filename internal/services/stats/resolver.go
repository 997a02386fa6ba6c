// Package stats computes a player's effective combat stats. The resolution
// is a pure read: class base stats, plus allocated points, plus equipped
// item bonuses. Validity of the equipped state (slot rules, level
// requirements) is the equip operation's responsibility, not ours.
package stats

import (
	"github.com/fablebound/rpg-bot/internal/entities"
	"github.com/fablebound/rpg-bot/internal/rulebook"
)

// OffhandPenalty is the fixed ratio applied to every stat bonus of an
// off-hand weapon when a dual-wield class has both weapon slots populated.
// Two full weapons would overcount, so the off-hand contributes half.
const OffhandPenalty = 0.5

// Resolve computes the effective stats mapping for the player
func Resolve(p *entities.Player) entities.Stats {
	result := entities.Stats{
		entities.StatPower:   0,
		entities.StatDefense: 0,
		entities.StatSpeed:   0,
		entities.StatHP:      0,
	}

	class, ok := rulebook.GetClass(p.ClassName)
	if ok {
		result.Add(class.BaseStats)
	}

	result.Add(p.AllocatedStats)

	dualWielding := ok && class.DualWield &&
		p.EquippedItems[entities.SlotWeapon] != "" &&
		p.EquippedItems[entities.SlotWeapon2] != ""

	for _, slot := range entities.EquipSlots {
		itemID := p.EquippedItems[slot]
		if itemID == "" {
			continue
		}
		inv := p.FindInventoryItem(itemID)
		if inv == nil || inv.Item == nil {
			continue
		}

		if slot == entities.SlotWeapon2 && dualWielding {
			result.AddScaled(inv.Item.StatBonuses, OffhandPenalty)
			continue
		}
		result.Add(inv.Item.StatBonuses)
	}

	return result
}
