package entities

import "time"

// Counters are the monotonically non-decreasing action tallies consumed by
// achievements and quests.
type Counters struct {
	Wins                      int `json:"wins"`
	PvPWins                   int `json:"pvp_wins"`
	DungeonsCompleted         int `json:"dungeons_completed"`
	BossesDefeated            int `json:"bosses_defeated"`
	GoldEarned                int `json:"gold_earned"`
	GoldSpent                 int `json:"gold_spent"`
	TrainingCompleted         int `json:"training_completed"`
	AdvancedTrainingCompleted int `json:"advanced_training_completed"`
	GuildContributions        int `json:"guild_contributions"`
	GuildDungeons             int `json:"guild_dungeons"`
	ClassChanges              int `json:"class_changes"`
	DailyClaims               int `json:"daily_claims"`
	QuestsCompleted           int `json:"quests_completed"`
}

// Player is the persistent per-account record. Every optional collection is
// initialized at construction so callers never branch on absence.
type Player struct {
	ID                     string                      `json:"id"`
	ClassName              string                      `json:"class_name"`
	ClassLevel             int                         `json:"class_level"`
	ClassExp               int                         `json:"class_exp"`
	SkillPoints            int                         `json:"skill_points"`
	AllocatedStats         Stats                       `json:"allocated_stats"`
	EquippedItems          map[Slot]string             `json:"equipped_items"`
	Inventory              []*InventoryItem            `json:"inventory"`
	Gold                   int                         `json:"gold"`
	Energy                 int                         `json:"energy"`
	MaxEnergy              int                         `json:"max_energy"`
	Counters               Counters                    `json:"counters"`
	Achievements           map[string]time.Time        `json:"achievements"`
	SpentAchievementPoints int                         `json:"spent_achievement_points"`
	LastDailyClaim         string                      `json:"last_daily_claim,omitempty"`
	DailyQuests            map[string][]*QuestInstance `json:"daily_quests"`
	WeeklyQuests           map[string][]*QuestInstance `json:"weekly_quests"`
	LongTermQuests         []*QuestInstance            `json:"long_term_quests"`
	GuildID                string                      `json:"guild_id,omitempty"`
	CreatedAt              time.Time                   `json:"created_at"`
	UpdatedAt              time.Time                   `json:"updated_at"`
}

// NewPlayer creates a level 1 player with every collection initialized
func NewPlayer(id, className string) *Player {
	return &Player{
		ID:             id,
		ClassName:      className,
		ClassLevel:     1,
		ClassExp:       0,
		Energy:         100,
		MaxEnergy:      100,
		AllocatedStats: Stats{},
		EquippedItems:  make(map[Slot]string),
		Inventory:      []*InventoryItem{},
		Achievements:   make(map[string]time.Time),
		DailyQuests:    make(map[string][]*QuestInstance),
		WeeklyQuests:   make(map[string][]*QuestInstance),
		LongTermQuests: []*QuestInstance{},
	}
}

// HasAchievement reports whether the player already holds the grant
func (p *Player) HasAchievement(id string) bool {
	_, ok := p.Achievements[id]
	return ok
}

// GrantAchievement records a grant; it is a no-op when already held so
// re-invocation can never double-grant.
func (p *Player) GrantAchievement(id string, at time.Time) bool {
	if p.HasAchievement(id) {
		return false
	}
	p.Achievements[id] = at
	return true
}

// FindInventoryItem returns the first inventory entry holding the item id
func (p *Player) FindInventoryItem(itemID string) *InventoryItem {
	for _, inv := range p.Inventory {
		if inv.Item != nil && inv.Item.ID == itemID {
			return inv
		}
	}
	return nil
}

// FindInventoryItemByName returns the first inventory entry whose item has
// the given name.
func (p *Player) FindInventoryItemByName(name string) *InventoryItem {
	for _, inv := range p.Inventory {
		if inv.Item != nil && inv.Item.Name == name {
			return inv
		}
	}
	return nil
}

// UniqueItemNames counts distinct item names across the inventory
func (p *Player) UniqueItemNames() int {
	seen := make(map[string]struct{})
	for _, inv := range p.Inventory {
		if inv.Item != nil {
			seen[inv.Item.Name] = struct{}{}
		}
	}
	return len(seen)
}

// OwnsRarityAtLeast reports whether any inventory item meets the rarity tier
func (p *Player) OwnsRarityAtLeast(r Rarity) bool {
	for _, inv := range p.Inventory {
		if inv.Item != nil && inv.Item.Rarity.AtLeast(r) {
			return true
		}
	}
	return false
}

// ActiveQuests iterates every live quest instance across daily, weekly and
// long-term collections for the given period keys.
func (p *Player) ActiveQuests(dailyKey, weeklyKey string) []*QuestInstance {
	var out []*QuestInstance
	out = append(out, p.DailyQuests[dailyKey]...)
	out = append(out, p.WeeklyQuests[weeklyKey]...)
	out = append(out, p.LongTermQuests...)
	return out
}
