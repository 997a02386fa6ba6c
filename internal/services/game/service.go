// Package game orchestrates player actions end to end. Each operation loads
// the player once, runs the full cascade (counters, exp/gold awards, quest
// progress, quest rewards, achievement check) and saves once, so partial
// flushes never happen mid-cascade.
package game

import (
	"context"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/services/achievement"
	"github.com/fablebound/rpg-bot/internal/services/guild"
	"github.com/fablebound/rpg-bot/internal/services/inventory"
	"github.com/fablebound/rpg-bot/internal/services/progression"
	"github.com/fablebound/rpg-bot/internal/services/quest"
	"github.com/fablebound/rpg-bot/internal/services/stats"
)

const (
	// BattleEnergyCost is spent per battle attempt
	BattleEnergyCost = 10

	// TrainingEnergyCost and AdvancedTrainingEnergyCost gate the two
	// training tiers
	TrainingEnergyCost         = 20
	AdvancedTrainingEnergyCost = 40

	// TrainingCapacityGain is the base max-energy gain per session, before
	// the training event multiplier
	TrainingCapacityGain         = 2
	AdvancedTrainingCapacityGain = 5

	// DailyClaimGoldBase scales the daily stipend with level
	DailyClaimGoldBase     = 100
	DailyClaimGoldPerLevel = 10
	DailyClaimEnergy       = 50

	// GuildDungeonExpShare is the portion of dungeon exp forwarded to the
	// guild on a guild run
	GuildDungeonExpShare = 2 // divisor: guild gets exp/2
)

// Service drives player action cascades
type Service struct {
	players      players.Repository
	engine       *progression.Engine
	quests       *quest.Tracker
	achievements *achievement.Evaluator
	inventory    *inventory.Service
	guilds       *guild.Service
	timeProvider clock.TimeProvider
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	PlayerRepository players.Repository
	Engine           *progression.Engine
	QuestTracker     *quest.Tracker
	Achievements     *achievement.Evaluator
	Inventory        *inventory.Service
	Guilds           *guild.Service      // optional; guild actions fail without it
	TimeProvider     clock.TimeProvider  // optional, defaults to system clock
}

// NewService creates a new game service
func NewService(cfg *ServiceConfig) *Service {
	if cfg.PlayerRepository == nil {
		panic("player repository is required")
	}
	if cfg.Engine == nil {
		panic("progression engine is required")
	}
	if cfg.QuestTracker == nil {
		panic("quest tracker is required")
	}
	if cfg.Achievements == nil {
		panic("achievement evaluator is required")
	}
	if cfg.Inventory == nil {
		panic("inventory service is required")
	}

	s := &Service{
		players:      cfg.PlayerRepository,
		engine:       cfg.Engine,
		quests:       cfg.QuestTracker,
		achievements: cfg.Achievements,
		inventory:    cfg.Inventory,
		guilds:       cfg.Guilds,
		timeProvider: cfg.TimeProvider,
	}
	if s.timeProvider == nil {
		s.timeProvider = clock.New()
	}
	return s
}

// ActionResult reports everything a cascade did, for the caller to render
type ActionResult struct {
	Player          *entities.Player
	Experience      *progression.AddExperienceResult
	Gold            *progression.AddGoldResult
	CompletedQuests []*entities.QuestInstance
	NewAchievements []*rulebook.AchievementDefinition
}

// BattleOutcome describes a won fight reported by the battle surface
type BattleOutcome struct {
	PvP          bool
	BossDefeated bool
	Exp          int
	Gold         int
}

// RecordBattleWin applies a won battle: energy cost, counters, scaled
// exp/gold, quest progress and rewards, then an achievement sweep.
func (s *Service) RecordBattleWin(ctx context.Context, playerID string, outcome BattleOutcome) (*ActionResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if err := s.engine.SpendEnergy(p, BattleEnergyCost); err != nil {
		return nil, err
	}

	p.Counters.Wins++
	if outcome.PvP {
		p.Counters.PvPWins++
	}
	if outcome.BossDefeated {
		p.Counters.BossesDefeated++
	}

	result := &ActionResult{Player: p}
	result.Experience, err = s.engine.AddExperience(ctx, p, outcome.Exp)
	if err != nil {
		return nil, err
	}
	result.Gold, err = s.engine.AddGold(ctx, p, outcome.Gold)
	if err != nil {
		return nil, err
	}

	completed := s.quests.UpdateProgress(p, rulebook.QuestTagBattleWin, 1)
	if outcome.PvP {
		completed = append(completed, s.quests.UpdateProgress(p, rulebook.QuestTagPvPWin, 1)...)
	}
	if outcome.BossDefeated {
		completed = append(completed, s.quests.UpdateProgress(p, rulebook.QuestTagBossDefeated, 1)...)
	}
	if result.Gold.AdjustedAmount > 0 {
		completed = append(completed, s.quests.UpdateProgress(p, rulebook.QuestTagGoldEarned, result.Gold.AdjustedAmount)...)
	}
	result.CompletedQuests = completed

	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// TrainingResult extends ActionResult with the capacity change
type TrainingResult struct {
	ActionResult
	CapacityGained int
	EventName      string
}

// CompleteTraining spends energy to permanently raise max energy, scaled by
// any active training event.
func (s *Service) CompleteTraining(ctx context.Context, playerID string, advanced bool) (*TrainingResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	cost := TrainingEnergyCost
	gain := TrainingCapacityGain
	if advanced {
		cost = AdvancedTrainingEnergyCost
		gain = AdvancedTrainingCapacityGain
	}

	if err := s.engine.SpendEnergy(p, cost); err != nil {
		return nil, err
	}

	multiplier, eventName, err := s.engine.TrainingMultiplier(ctx)
	if err != nil {
		return nil, err
	}
	gained := int(float64(gain) * multiplier)
	s.engine.RaiseMaxEnergy(p, gained)

	p.Counters.TrainingCompleted++
	if advanced {
		p.Counters.AdvancedTrainingCompleted++
	}

	result := &TrainingResult{
		ActionResult:   ActionResult{Player: p},
		CapacityGained: gained,
		EventName:      eventName,
	}
	result.CompletedQuests = s.quests.UpdateProgress(p, rulebook.QuestTagTraining, 1)

	if err := s.finishCascade(ctx, p, &result.ActionResult); err != nil {
		return nil, err
	}
	return result, nil
}

// CompleteDungeon applies a dungeon clear. A guild run additionally credits
// the player's guild-dungeon counter and forwards a share of the exp to the
// guild's own leveling.
func (s *Service) CompleteDungeon(ctx context.Context, playerID string, guildRun bool, exp, gold int) (*ActionResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	p.Counters.DungeonsCompleted++

	result := &ActionResult{Player: p}
	result.Experience, err = s.engine.AddExperience(ctx, p, exp)
	if err != nil {
		return nil, err
	}
	result.Gold, err = s.engine.AddGold(ctx, p, gold)
	if err != nil {
		return nil, err
	}

	completed := s.quests.UpdateProgress(p, rulebook.QuestTagDungeon, 1)
	if result.Gold.AdjustedAmount > 0 {
		completed = append(completed, s.quests.UpdateProgress(p, rulebook.QuestTagGoldEarned, result.Gold.AdjustedAmount)...)
	}
	result.CompletedQuests = completed

	if guildRun && p.GuildID != "" && s.guilds != nil {
		p.Counters.GuildDungeons++
		if _, err := s.guilds.AddExperience(ctx, p.GuildID, exp/GuildDungeonExpShare); err != nil {
			return nil, err
		}
	}

	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ClaimDaily pays the once-per-calendar-day stipend
func (s *Service) ClaimDaily(ctx context.Context, playerID string) (*ActionResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	key := quest.DailyKey(s.timeProvider.Now())
	if p.LastDailyClaim == key {
		return nil, apperr.Validation("daily reward already claimed today")
	}
	p.LastDailyClaim = key
	p.Counters.DailyClaims++

	result := &ActionResult{Player: p}
	result.Gold, err = s.engine.AddGold(ctx, p, DailyClaimGoldBase+DailyClaimGoldPerLevel*p.ClassLevel)
	if err != nil {
		return nil, err
	}
	s.engine.AddEnergy(p, DailyClaimEnergy)

	if result.Gold.AdjustedAmount > 0 {
		result.CompletedQuests = s.quests.UpdateProgress(p, rulebook.QuestTagGoldEarned, result.Gold.AdjustedAmount)
	}

	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// ChangeClass switches the player's class. Advanced classes check their
// unlock gate against the player's current class, level and dungeon record.
// Level and experience carry over; a class that cannot dual-wield has its
// off-hand weapon unequipped so the equip invariant holds.
func (s *Service) ChangeClass(ctx context.Context, playerID, classKey string) (*ActionResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	class, ok := rulebook.GetClass(classKey)
	if !ok {
		return nil, apperr.NotFoundf("class '%s' not found", classKey).
			WithMeta("class_key", classKey)
	}
	if p.ClassName == classKey {
		return nil, apperr.Validation("you are already that class")
	}

	if unlock := class.Unlock; unlock != nil {
		if p.ClassName != unlock.BaseClass {
			return nil, apperr.Validationf("%s requires the %s class", class.Name, unlock.BaseClass)
		}
		if p.ClassLevel < unlock.Level {
			return nil, apperr.Validationf("%s requires level %d", class.Name, unlock.Level)
		}
		if p.Counters.DungeonsCompleted < unlock.DungeonClears {
			return nil, apperr.Validationf("%s requires %d dungeon clears", class.Name, unlock.DungeonClears)
		}
	}

	p.ClassName = classKey
	p.Counters.ClassChanges++
	if !class.DualWield {
		s.inventory.UnequipSlot(p, entities.SlotWeapon2)
	}

	result := &ActionResult{Player: p}
	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AllocateStat spends skill points on a stat and persists
func (s *Service) AllocateStat(ctx context.Context, playerID string, stat entities.Stat, points int) (*entities.Player, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.AllocateStat(p, stat, points); err != nil {
		return nil, err
	}
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// EquipItem equips an owned item and persists
func (s *Service) EquipItem(ctx context.Context, playerID, itemID string, slot entities.Slot) (*entities.Player, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if err := s.inventory.EquipItem(p, itemID, slot); err != nil {
		return nil, err
	}
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// UnequipSlot clears an equipment slot and persists
func (s *Service) UnequipSlot(ctx context.Context, playerID string, slot entities.Slot) (*entities.Player, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	s.inventory.UnequipSlot(p, slot)
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GrantItem materializes a catalog item into the player's inventory,
// advancing the item-obtained quest tag.
func (s *Service) GrantItem(ctx context.Context, playerID, templateID string) (*ActionResult, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	item, err := s.inventory.CreateItem(templateID)
	if err != nil {
		return nil, err
	}
	s.inventory.AddToInventory(p, item)

	result := &ActionResult{Player: p}
	result.CompletedQuests = s.quests.UpdateProgress(p, rulebook.QuestTagItemObtained, 1)

	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// UseItem consumes a consumable and applies its effect
func (s *Service) UseItem(ctx context.Context, playerID, itemID string) (*entities.Player, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	inv := p.FindInventoryItem(itemID)
	if inv == nil || inv.Item == nil {
		return nil, apperr.Validation("you do not own that item")
	}
	templateID := inv.Item.ID

	if err := s.inventory.ConsumeItem(p, itemID); err != nil {
		return nil, err
	}

	switch templateID {
	case "healing_potion":
		s.engine.AddEnergy(p, 50)
	case "energy_tonic":
		s.engine.RaiseMaxEnergy(p, 5)
	}

	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ContributeToGuild debits the player's gold and banks it with their guild,
// then runs the reward cascade for any completed contribution quests.
func (s *Service) ContributeToGuild(ctx context.Context, playerID string, amount int) (*ActionResult, error) {
	if s.guilds == nil {
		return nil, apperr.Internal("guild service is not configured")
	}

	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.GuildID == "" {
		return nil, apperr.Validation("you are not in a guild")
	}

	if err := s.engine.SpendGold(p, amount); err != nil {
		return nil, err
	}

	contrib, err := s.guilds.Contribute(ctx, p.GuildID, p, amount)
	if err != nil {
		return nil, err
	}

	result := &ActionResult{Player: p, CompletedQuests: contrib.CompletedQuests}
	if err := s.finishCascade(ctx, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// CreateGuild founds a guild with the player as leader
func (s *Service) CreateGuild(ctx context.Context, playerID, name string) (*entities.Guild, error) {
	if s.guilds == nil {
		return nil, apperr.Internal("guild service is not configured")
	}

	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.GuildID != "" {
		return nil, apperr.Validation("you are already in a guild")
	}

	g, err := s.guilds.Create(ctx, name, playerID)
	if err != nil {
		return nil, err
	}

	p.GuildID = g.ID
	if _, err := s.achievements.Check(ctx, p); err != nil {
		return nil, err
	}
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return g, nil
}

// JoinGuild adds the player to an existing guild by name
func (s *Service) JoinGuild(ctx context.Context, playerID, guildName string) (*entities.Guild, error) {
	if s.guilds == nil {
		return nil, apperr.Internal("guild service is not configured")
	}

	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}
	if p.GuildID != "" {
		return nil, apperr.Validation("you are already in a guild")
	}

	g, err := s.guilds.GetByName(ctx, guildName)
	if err != nil {
		return nil, err
	}
	if err := s.guilds.AddMember(ctx, g.ID, playerID); err != nil {
		return nil, err
	}

	p.GuildID = g.ID
	if _, err := s.achievements.Check(ctx, p); err != nil {
		return nil, err
	}
	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}
	return g, nil
}

// LeaveGuild removes the player from their guild
func (s *Service) LeaveGuild(ctx context.Context, playerID string) error {
	if s.guilds == nil {
		return apperr.Internal("guild service is not configured")
	}

	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return err
	}
	if p.GuildID == "" {
		return apperr.Validation("you are not in a guild")
	}

	if err := s.guilds.RemoveMember(ctx, p.GuildID, playerID); err != nil {
		return err
	}

	p.GuildID = ""
	return s.players.Save(ctx, p)
}

// Profile is the read-model for the profile surface
type Profile struct {
	Player          *entities.Player
	EffectiveStats  entities.Stats
	RequiredExp     int
	EarnedPoints    int
	AvailablePoints int
	ActiveQuests    []*entities.QuestInstance
}

// GetProfile assembles the player's display snapshot. Reading the profile
// can lazily generate quest sets, so it saves before returning.
func (s *Service) GetProfile(ctx context.Context, playerID string) (*Profile, error) {
	p, err := s.players.GetOrCreate(ctx, playerID)
	if err != nil {
		return nil, err
	}

	s.quests.DailyQuests(p)
	s.quests.WeeklyQuests(p)
	s.quests.LongTermQuests(p)

	if err := s.players.Save(ctx, p); err != nil {
		return nil, err
	}

	now := s.timeProvider.Now()
	return &Profile{
		Player:          p,
		EffectiveStats:  stats.Resolve(p),
		RequiredExp:     progression.RequiredExp(p.ClassLevel),
		EarnedPoints:    achievement.EarnedPoints(p),
		AvailablePoints: achievement.AvailablePoints(p),
		ActiveQuests:    p.ActiveQuests(quest.DailyKey(now), quest.WeeklyKey(now)),
	}, nil
}

// finishCascade pays quest rewards, sweeps achievements and saves once
func (s *Service) finishCascade(ctx context.Context, p *entities.Player, result *ActionResult) error {
	for _, q := range result.CompletedQuests {
		if err := s.quests.GrantReward(ctx, p, q); err != nil {
			return err
		}
	}

	granted, err := s.achievements.Check(ctx, p)
	if err != nil {
		return err
	}
	result.NewAchievements = granted

	return s.players.Save(ctx, p)
}
