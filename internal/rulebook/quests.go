package rulebook

import (
	"github.com/fablebound/rpg-bot/internal/entities"
)

// Quest type tags matched against action notifications
const (
	QuestTagBattleWin         = "battle_win"
	QuestTagPvPWin            = "pvp_win"
	QuestTagTraining          = "training_completed"
	QuestTagDungeon           = "dungeon_completed"
	QuestTagBossDefeated      = "boss_defeated"
	QuestTagGoldEarned        = "gold_earned"
	QuestTagGuildContribution = "weekly_guild_contribution"
	QuestTagItemObtained      = "item_obtained"
)

// QuestTemplate defines a sampled quest. The concrete target interpolates
// between MinTarget and MaxTarget by min(1, level/50); rewards derive from
// the chosen target via the per-target rates.
type QuestTemplate struct {
	ID            string
	Name          string
	Kind          entities.QuestKind
	Type          string
	MinTarget     int
	MaxTarget     int
	ExpPerTarget  int
	GoldPerTarget int
}

// TargetForLevel interpolates the concrete target for a player level
func (t *QuestTemplate) TargetForLevel(level int) int {
	scale := float64(level) / 50.0
	if scale > 1.0 {
		scale = 1.0
	}
	return t.MinTarget + int(float64(t.MaxTarget-t.MinTarget)*scale)
}

// RewardFor computes the reward descriptor for a concrete target
func (t *QuestTemplate) RewardFor(target int) entities.QuestReward {
	return entities.QuestReward{
		Exp:  target * t.ExpPerTarget,
		Gold: target * t.GoldPerTarget,
	}
}

// DailyQuestCount quests are sampled per day, WeeklyQuestCount per ISO week
const (
	DailyQuestCount  = 3
	WeeklyQuestCount = 2
)

var dailyQuestPool = []*QuestTemplate{
	{ID: "daily_battles", Name: "Win Battles", Kind: entities.QuestKindDaily,
		Type: QuestTagBattleWin, MinTarget: 3, MaxTarget: 15, ExpPerTarget: 50, GoldPerTarget: 20},
	{ID: "daily_training", Name: "Complete Training", Kind: entities.QuestKindDaily,
		Type: QuestTagTraining, MinTarget: 1, MaxTarget: 5, ExpPerTarget: 80, GoldPerTarget: 30},
	{ID: "daily_dungeon", Name: "Clear Dungeons", Kind: entities.QuestKindDaily,
		Type: QuestTagDungeon, MinTarget: 1, MaxTarget: 3, ExpPerTarget: 150, GoldPerTarget: 75},
	{ID: "daily_gold", Name: "Earn Gold", Kind: entities.QuestKindDaily,
		Type: QuestTagGoldEarned, MinTarget: 100, MaxTarget: 1000, ExpPerTarget: 1, GoldPerTarget: 0},
	{ID: "daily_pvp", Name: "Win Duels", Kind: entities.QuestKindDaily,
		Type: QuestTagPvPWin, MinTarget: 1, MaxTarget: 5, ExpPerTarget: 120, GoldPerTarget: 60},
	{ID: "daily_items", Name: "Obtain Items", Kind: entities.QuestKindDaily,
		Type: QuestTagItemObtained, MinTarget: 1, MaxTarget: 4, ExpPerTarget: 60, GoldPerTarget: 25},
}

var weeklyQuestPool = []*QuestTemplate{
	{ID: "weekly_battles", Name: "Weekly Conqueror", Kind: entities.QuestKindWeekly,
		Type: QuestTagBattleWin, MinTarget: 20, MaxTarget: 80, ExpPerTarget: 40, GoldPerTarget: 15},
	{ID: "weekly_bosses", Name: "Boss Hunter", Kind: entities.QuestKindWeekly,
		Type: QuestTagBossDefeated, MinTarget: 2, MaxTarget: 8, ExpPerTarget: 300, GoldPerTarget: 150},
	{ID: "weekly_dungeons", Name: "Deep Delver", Kind: entities.QuestKindWeekly,
		Type: QuestTagDungeon, MinTarget: 3, MaxTarget: 12, ExpPerTarget: 200, GoldPerTarget: 100},
	{ID: "weekly_contribution", Name: "Guild Patron", Kind: entities.QuestKindWeekly,
		Type: QuestTagGuildContribution, MinTarget: 500, MaxTarget: 5000, ExpPerTarget: 1, GoldPerTarget: 0},
}

// longTermQuests are generated once per player with fixed targets and
// rewards; they never resample.
var longTermQuests = []*QuestTemplate{
	{ID: "lt_hundred_battles", Name: "Path of the Hundred Battles", Kind: entities.QuestKindLongTerm,
		Type: QuestTagBattleWin, MinTarget: 100, MaxTarget: 100, ExpPerTarget: 25, GoldPerTarget: 10},
	{ID: "lt_dungeon_conqueror", Name: "Dungeon Conqueror", Kind: entities.QuestKindLongTerm,
		Type: QuestTagDungeon, MinTarget: 50, MaxTarget: 50, ExpPerTarget: 100, GoldPerTarget: 50},
	{ID: "lt_boss_bane", Name: "Bane of Titans", Kind: entities.QuestKindLongTerm,
		Type: QuestTagBossDefeated, MinTarget: 25, MaxTarget: 25, ExpPerTarget: 400, GoldPerTarget: 200},
	{ID: "lt_golden_road", Name: "The Golden Road", Kind: entities.QuestKindLongTerm,
		Type: QuestTagGoldEarned, MinTarget: 50000, MaxTarget: 50000, ExpPerTarget: 0, GoldPerTarget: 0},
}

// DailyQuestPool returns the daily sampling pool in declaration order
func DailyQuestPool() []*QuestTemplate {
	return dailyQuestPool
}

// WeeklyQuestPool returns the weekly sampling pool in declaration order
func WeeklyQuestPool() []*QuestTemplate {
	return weeklyQuestPool
}

// LongTermQuests returns the fixed long-term quest list
func LongTermQuests() []*QuestTemplate {
	return longTermQuests
}
