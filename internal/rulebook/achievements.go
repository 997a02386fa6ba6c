package rulebook

import (
	"github.com/fablebound/rpg-bot/internal/entities"
)

// RequirementKind is the closed enum of achievement requirement reads.
// Every kind maps to one specific player or guild lookup; the evaluator
// fails fast on anything outside this set.
type RequirementKind string

const (
	RequirementLevel              RequirementKind = "level"
	RequirementWins               RequirementKind = "wins"
	RequirementPvPWins            RequirementKind = "pvp_wins"
	RequirementDungeons           RequirementKind = "dungeons_completed"
	RequirementBosses             RequirementKind = "bosses_defeated"
	RequirementGoldEarned         RequirementKind = "gold_earned"
	RequirementGoldSpent          RequirementKind = "gold_spent"
	RequirementTraining           RequirementKind = "training_completed"
	RequirementAdvancedTraining   RequirementKind = "advanced_training_completed"
	RequirementUniqueItems        RequirementKind = "unique_items"
	RequirementRarityOwned        RequirementKind = "rarity_owned"
	RequirementGuildMember        RequirementKind = "guild_member"
	RequirementGuildOfficer       RequirementKind = "guild_officer"
	RequirementGuildLeader        RequirementKind = "guild_leader"
	RequirementGuildContributions RequirementKind = "guild_contributions"
	RequirementGuildDungeons      RequirementKind = "guild_dungeons"
	RequirementClassChanges       RequirementKind = "class_changes"
	RequirementDailyClaims        RequirementKind = "daily_claims"
	RequirementQuestsCompleted    RequirementKind = "quests_completed"
	RequirementAchievementCount   RequirementKind = "achievement_count"
	RequirementAchievementPoints  RequirementKind = "achievement_points"
)

// Requirement pairs a kind with its threshold. Rarity is only read for
// RequirementRarityOwned.
type Requirement struct {
	Kind      RequirementKind
	Threshold int
	Rarity    entities.Rarity
}

// AchievementReward is paid out once when the definition is granted
type AchievementReward struct {
	Exp    int
	Gold   int
	ItemID string
	Title  string // role-grant flag for the UI layer
}

// Category groups achievements for display; CategoryMeta entries depend on
// already-granted achievements and drive the evaluator's re-scan.
type Category string

const (
	CategoryCombat      Category = "combat"
	CategoryProgression Category = "progression"
	CategoryWealth      Category = "wealth"
	CategoryCollection  Category = "collection"
	CategorySocial      Category = "social"
	CategoryDedication  Category = "dedication"
	CategoryMeta        Category = "meta"
)

// AchievementDefinition is a static catalog entry
type AchievementDefinition struct {
	ID          string
	Name        string
	Category    Category
	Requirement Requirement
	Reward      AchievementReward
	Points      int
}

// IsMeta reports whether the definition depends on other grants
func (d *AchievementDefinition) IsMeta() bool {
	return d.Category == CategoryMeta
}

var achievements = []*AchievementDefinition{
	// combat
	{ID: "first_blood", Name: "First Blood", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementWins, Threshold: 1},
		Reward:      AchievementReward{Exp: 50, Gold: 25}, Points: 5},
	{ID: "battle_hardened", Name: "Battle Hardened", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementWins, Threshold: 50},
		Reward:      AchievementReward{Exp: 500, Gold: 250}, Points: 10},
	{ID: "warlord", Name: "Warlord", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementWins, Threshold: 500},
		Reward:      AchievementReward{Exp: 5000, Gold: 2500, ItemID: "champions_crest"}, Points: 25},
	{ID: "duelist", Name: "Duelist", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementPvPWins, Threshold: 10},
		Reward:      AchievementReward{Exp: 300, Gold: 150}, Points: 10},
	{ID: "gladiator", Name: "Gladiator", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementPvPWins, Threshold: 100},
		Reward:      AchievementReward{Exp: 3000, Gold: 1500, Title: "Gladiator"}, Points: 25},
	{ID: "boss_slayer", Name: "Boss Slayer", Category: CategoryCombat,
		Requirement: Requirement{Kind: RequirementBosses, Threshold: 10},
		Reward:      AchievementReward{Exp: 1000, Gold: 500}, Points: 15},

	// progression
	{ID: "apprentice", Name: "Apprentice", Category: CategoryProgression,
		Requirement: Requirement{Kind: RequirementLevel, Threshold: 10},
		Reward:      AchievementReward{Exp: 0, Gold: 200}, Points: 5},
	{ID: "veteran", Name: "Veteran", Category: CategoryProgression,
		Requirement: Requirement{Kind: RequirementLevel, Threshold: 25},
		Reward:      AchievementReward{Exp: 0, Gold: 1000}, Points: 10},
	{ID: "living_legend", Name: "Living Legend", Category: CategoryProgression,
		Requirement: Requirement{Kind: RequirementLevel, Threshold: 50},
		Reward:      AchievementReward{Exp: 0, Gold: 5000, ItemID: "crown_of_legends", Title: "Legend"}, Points: 50},
	{ID: "shapeshifter", Name: "Shapeshifter", Category: CategoryProgression,
		Requirement: Requirement{Kind: RequirementClassChanges, Threshold: 3},
		Reward:      AchievementReward{Exp: 200, Gold: 100}, Points: 10},

	// wealth
	{ID: "first_fortune", Name: "First Fortune", Category: CategoryWealth,
		Requirement: Requirement{Kind: RequirementGoldEarned, Threshold: 1000},
		Reward:      AchievementReward{Exp: 100}, Points: 5},
	{ID: "gold_baron", Name: "Gold Baron", Category: CategoryWealth,
		Requirement: Requirement{Kind: RequirementGoldEarned, Threshold: 100000},
		Reward:      AchievementReward{Exp: 2000}, Points: 25},
	{ID: "big_spender", Name: "Big Spender", Category: CategoryWealth,
		Requirement: Requirement{Kind: RequirementGoldSpent, Threshold: 10000},
		Reward:      AchievementReward{Exp: 500, Gold: 500}, Points: 10},

	// collection
	{ID: "pack_rat", Name: "Pack Rat", Category: CategoryCollection,
		Requirement: Requirement{Kind: RequirementUniqueItems, Threshold: 10},
		Reward:      AchievementReward{Exp: 200, Gold: 100}, Points: 5},
	{ID: "curator", Name: "Curator", Category: CategoryCollection,
		Requirement: Requirement{Kind: RequirementUniqueItems, Threshold: 50},
		Reward:      AchievementReward{Exp: 2000, Gold: 1000}, Points: 20},
	{ID: "relic_hunter", Name: "Relic Hunter", Category: CategoryCollection,
		Requirement: Requirement{Kind: RequirementRarityOwned, Threshold: 1, Rarity: entities.RarityLegendary},
		Reward:      AchievementReward{Exp: 1000, Gold: 500}, Points: 20},

	// social
	{ID: "joiner", Name: "Joiner", Category: CategorySocial,
		Requirement: Requirement{Kind: RequirementGuildMember, Threshold: 1},
		Reward:      AchievementReward{Exp: 100, Gold: 50}, Points: 5},
	{ID: "right_hand", Name: "Right Hand", Category: CategorySocial,
		Requirement: Requirement{Kind: RequirementGuildOfficer, Threshold: 1},
		Reward:      AchievementReward{Exp: 300, Gold: 150}, Points: 10},
	{ID: "founder", Name: "Founder", Category: CategorySocial,
		Requirement: Requirement{Kind: RequirementGuildLeader, Threshold: 1},
		Reward:      AchievementReward{Exp: 500, Gold: 250}, Points: 10},
	{ID: "benefactor", Name: "Benefactor", Category: CategorySocial,
		Requirement: Requirement{Kind: RequirementGuildContributions, Threshold: 25},
		Reward:      AchievementReward{Exp: 500, Gold: 0}, Points: 10},
	{ID: "raid_partner", Name: "Raid Partner", Category: CategorySocial,
		Requirement: Requirement{Kind: RequirementGuildDungeons, Threshold: 10},
		Reward:      AchievementReward{Exp: 800, Gold: 400}, Points: 15},

	// dedication
	{ID: "student", Name: "Student", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementTraining, Threshold: 10},
		Reward:      AchievementReward{Exp: 200}, Points: 5},
	{ID: "scholar", Name: "Scholar", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementAdvancedTraining, Threshold: 10},
		Reward:      AchievementReward{Exp: 800}, Points: 15},
	{ID: "regular", Name: "Regular", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementDailyClaims, Threshold: 7},
		Reward:      AchievementReward{Exp: 300, Gold: 150}, Points: 5},
	{ID: "devoted", Name: "Devoted", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementDailyClaims, Threshold: 30},
		Reward:      AchievementReward{Exp: 1500, Gold: 750}, Points: 15},
	{ID: "quest_novice", Name: "Quest Novice", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementQuestsCompleted, Threshold: 10},
		Reward:      AchievementReward{Exp: 400, Gold: 200}, Points: 5},
	{ID: "quest_master", Name: "Quest Master", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementQuestsCompleted, Threshold: 100},
		Reward:      AchievementReward{Exp: 4000, Gold: 2000, ItemID: "dungeon_masters_key"}, Points: 25},
	{ID: "delver", Name: "Delver", Category: CategoryDedication,
		Requirement: Requirement{Kind: RequirementDungeons, Threshold: 25},
		Reward:      AchievementReward{Exp: 1200, Gold: 600}, Points: 15},

	// meta
	{ID: "collector_of_glory", Name: "Collector of Glory", Category: CategoryMeta,
		Requirement: Requirement{Kind: RequirementAchievementCount, Threshold: 10},
		Reward:      AchievementReward{Exp: 1000, Gold: 500}, Points: 10},
	{ID: "completionist", Name: "Completionist", Category: CategoryMeta,
		Requirement: Requirement{Kind: RequirementAchievementCount, Threshold: 20},
		Reward:      AchievementReward{Exp: 3000, Gold: 1500}, Points: 20},
	{ID: "point_hoarder", Name: "Point Hoarder", Category: CategoryMeta,
		Requirement: Requirement{Kind: RequirementAchievementPoints, Threshold: 150},
		Reward:      AchievementReward{Exp: 2000, Gold: 1000, Title: "Decorated"}, Points: 20},
}

// Achievements returns the full catalog in declaration order
func Achievements() []*AchievementDefinition {
	return achievements
}

// GetAchievement looks up a definition by id
func GetAchievement(id string) (*AchievementDefinition, bool) {
	for _, def := range achievements {
		if def.ID == id {
			return def, true
		}
	}
	return nil, false
}
