// Package inventory is the item factory and equip-rule collaborator. It
// materializes items from the template catalog, stacks consumables, and
// enforces the slot rules the stat resolver assumes.
package inventory

import (
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/rulebook"
)

// Service creates items and maintains inventory/equipment state
type Service struct{}

// NewService creates a new inventory service
func NewService() *Service {
	return &Service{}
}

// CreateItem materializes an independent copy of a catalog template
func (s *Service) CreateItem(templateID string) (*entities.Item, error) {
	template, ok := rulebook.GetItem(templateID)
	if !ok {
		return nil, apperr.NotFoundf("item template '%s' not found", templateID).
			WithMeta("template_id", templateID)
	}

	item := *template
	if template.StatBonuses != nil {
		item.StatBonuses = template.StatBonuses.Clone()
	}
	return &item, nil
}

// AddToInventory adds the item to the player. Consumables stack onto an
// existing entry of the same name; everything else appends a new entry with
// quantity 1.
func (s *Service) AddToInventory(p *entities.Player, item *entities.Item) {
	if item == nil {
		return
	}

	if item.Type == entities.ItemTypeConsumable {
		if existing := p.FindInventoryItemByName(item.Name); existing != nil {
			existing.Quantity++
			return
		}
	}

	p.Inventory = append(p.Inventory, &entities.InventoryItem{
		Item:     item,
		Quantity: 1,
	})
}

// EquipItem places an owned item into the slot, enforcing level
// requirements, slot/type compatibility and the dual-wield rule. A
// previously equipped item in the slot is unequipped first, so the
// equipped-flag invariant holds throughout.
func (s *Service) EquipItem(p *entities.Player, itemID string, slot entities.Slot) error {
	inv := p.FindInventoryItem(itemID)
	if inv == nil || inv.Item == nil {
		return apperr.Validation("you do not own that item")
	}
	item := inv.Item

	if p.ClassLevel < item.LevelRequirement {
		return apperr.Validationf("requires level %d", item.LevelRequirement)
	}
	if inv.Equipped {
		return apperr.Validation("item is already equipped")
	}

	switch slot {
	case entities.SlotWeapon:
		if item.Type != entities.ItemTypeWeapon {
			return apperr.Validation("only weapons fit the weapon slot")
		}
	case entities.SlotWeapon2:
		if item.Type != entities.ItemTypeWeapon {
			return apperr.Validation("only weapons fit the off-hand slot")
		}
		if !rulebook.CanDualWield(p.ClassName) {
			return apperr.Validation("your class cannot dual-wield")
		}
	case entities.SlotArmor:
		if item.Type != entities.ItemTypeArmor {
			return apperr.Validation("only armor fits the armor slot")
		}
	case entities.SlotAccessory:
		if item.Type != entities.ItemTypeAccessory {
			return apperr.Validation("only accessories fit the accessory slot")
		}
	default:
		return apperr.InvalidArgumentf("unknown slot '%s'", slot)
	}

	s.UnequipSlot(p, slot)
	p.EquippedItems[slot] = itemID
	inv.Equipped = true
	return nil
}

// UnequipSlot clears the slot and the owning entry's equipped flag
func (s *Service) UnequipSlot(p *entities.Player, slot entities.Slot) {
	itemID := p.EquippedItems[slot]
	if itemID == "" {
		return
	}
	delete(p.EquippedItems, slot)
	if inv := p.FindInventoryItem(itemID); inv != nil {
		inv.Equipped = false
	}
}

// ConsumeItem decrements a consumable stack, removing the entry at zero
func (s *Service) ConsumeItem(p *entities.Player, itemID string) error {
	inv := p.FindInventoryItem(itemID)
	if inv == nil || inv.Item == nil {
		return apperr.Validation("you do not own that item")
	}
	if inv.Item.Type != entities.ItemTypeConsumable {
		return apperr.Validation("that item cannot be consumed")
	}

	inv.Quantity--
	if inv.Quantity <= 0 {
		for i, entry := range p.Inventory {
			if entry == inv {
				p.Inventory = append(p.Inventory[:i], p.Inventory[i+1:]...)
				break
			}
		}
	}
	return nil
}
