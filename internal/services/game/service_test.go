package game_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockclock "github.com/fablebound/rpg-bot/internal/clock/mocks"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/guilds"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/services/achievement"
	"github.com/fablebound/rpg-bot/internal/services/game"
	guildService "github.com/fablebound/rpg-bot/internal/services/guild"
	"github.com/fablebound/rpg-bot/internal/services/inventory"
	"github.com/fablebound/rpg-bot/internal/services/progression"
	"github.com/fablebound/rpg-bot/internal/services/quest"
)

type GameServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	playerRepo   players.Repository
	guildRepo    guilds.Repository
	timeProvider *mockclock.MockTimeProvider
	service      *game.Service
	guilds       *guildService.Service
	now          time.Time
	ctx          context.Context
}

func (s *GameServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.playerRepo = players.NewInMemoryRepository()
	s.guildRepo = guilds.NewInMemoryRepository()
	s.timeProvider = mockclock.NewMockTimeProvider(s.ctrl)
	s.ctx = context.Background()

	s.now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.timeProvider.EXPECT().Now().DoAndReturn(func() time.Time { return s.now }).AnyTimes()

	engine := progression.NewEngine(nil)
	inv := inventory.NewService()
	tracker := quest.NewTracker(&quest.TrackerConfig{
		Engine:       engine,
		TimeProvider: s.timeProvider,
	})
	evaluator := achievement.NewEvaluator(&achievement.EvaluatorConfig{
		Engine:          engine,
		ItemFactory:     inv,
		GuildRepository: s.guildRepo,
		TimeProvider:    s.timeProvider,
	})
	s.guilds = guildService.NewService(&guildService.ServiceConfig{
		Repository:   s.guildRepo,
		QuestTracker: tracker,
		TimeProvider: s.timeProvider,
	})

	s.service = game.NewService(&game.ServiceConfig{
		PlayerRepository: s.playerRepo,
		Engine:           engine,
		QuestTracker:     tracker,
		Achievements:     evaluator,
		Inventory:        inv,
		Guilds:           s.guilds,
		TimeProvider:     s.timeProvider,
	})
}

func (s *GameServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGameServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GameServiceTestSuite))
}

func (s *GameServiceTestSuite) TestRecordBattleWin_FullCascade() {
	result, err := s.service.RecordBattleWin(s.ctx, "player-1", game.BattleOutcome{Exp: 50, Gold: 20})
	s.Require().NoError(err)

	p := result.Player
	s.Equal(1, p.Counters.Wins)
	s.Equal(50, result.Experience.AdjustedAmount)
	s.Equal(20, result.Gold.AdjustedAmount)
	s.Equal(100-game.BattleEnergyCost, p.Energy)

	// the first win grants First Blood within the same action
	grantedIDs := make([]string, 0, len(result.NewAchievements))
	for _, def := range result.NewAchievements {
		grantedIDs = append(grantedIDs, def.ID)
	}
	s.Contains(grantedIDs, "first_blood")

	// state is persisted after the cascade
	saved, err := s.playerRepo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1, saved.Counters.Wins)
	s.True(saved.HasAchievement("first_blood"))
}

func (s *GameServiceTestSuite) TestRecordBattleWin_BossAndPvPCounters() {
	result, err := s.service.RecordBattleWin(s.ctx, "player-1", game.BattleOutcome{
		PvP: true, BossDefeated: true, Exp: 10, Gold: 5,
	})
	s.Require().NoError(err)

	s.Equal(1, result.Player.Counters.PvPWins)
	s.Equal(1, result.Player.Counters.BossesDefeated)
}

func (s *GameServiceTestSuite) TestRecordBattleWin_WithoutEnergyFails() {
	p, err := s.playerRepo.GetOrCreate(s.ctx, "player-1")
	s.Require().NoError(err)
	p.Energy = game.BattleEnergyCost - 1
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	_, err = s.service.RecordBattleWin(s.ctx, "player-1", game.BattleOutcome{Exp: 10})
	s.True(apperr.IsValidation(err))
}

func (s *GameServiceTestSuite) TestCompleteTraining() {
	result, err := s.service.CompleteTraining(s.ctx, "player-1", false)
	s.Require().NoError(err)

	s.Equal(game.TrainingCapacityGain, result.CapacityGained)
	s.Equal(100+game.TrainingCapacityGain, result.Player.MaxEnergy)
	s.Equal(100-game.TrainingEnergyCost, result.Player.Energy)
	s.Equal(1, result.Player.Counters.TrainingCompleted)
	s.Zero(result.Player.Counters.AdvancedTrainingCompleted)

	advanced, err := s.service.CompleteTraining(s.ctx, "player-1", true)
	s.Require().NoError(err)
	s.Equal(game.AdvancedTrainingCapacityGain, advanced.CapacityGained)
	s.Equal(1, advanced.Player.Counters.AdvancedTrainingCompleted)
}

func (s *GameServiceTestSuite) TestCompleteDungeon_GuildRunSharesExp() {
	g, err := s.guilds.Create(s.ctx, "Iron Pact", "player-1")
	s.Require().NoError(err)

	p, err := s.playerRepo.GetOrCreate(s.ctx, "player-1")
	s.Require().NoError(err)
	p.GuildID = g.ID
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	result, err := s.service.CompleteDungeon(s.ctx, "player-1", true, 200, 100)
	s.Require().NoError(err)

	s.Equal(1, result.Player.Counters.DungeonsCompleted)
	s.Equal(1, result.Player.Counters.GuildDungeons)

	savedGuild, err := s.guildRepo.Get(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(200/game.GuildDungeonExpShare, savedGuild.Experience)
}

func (s *GameServiceTestSuite) TestClaimDaily_OncePerDay() {
	result, err := s.service.ClaimDaily(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(1, result.Player.Counters.DailyClaims)
	s.Equal(game.DailyClaimGoldBase+game.DailyClaimGoldPerLevel, result.Gold.AdjustedAmount)

	_, err = s.service.ClaimDaily(s.ctx, "player-1")
	s.True(apperr.IsValidation(err), "second claim on the same day is rejected")

	// the next day unlocks a fresh claim
	s.now = s.now.Add(24 * time.Hour)
	result, err = s.service.ClaimDaily(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(2, result.Player.Counters.DailyClaims)
}

func (s *GameServiceTestSuite) TestChangeClass() {
	_, err := s.service.ChangeClass(s.ctx, "player-1", "mage")
	s.Require().NoError(err)

	p, err := s.playerRepo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal("mage", p.ClassName)
	s.Equal(1, p.Counters.ClassChanges)
	s.Equal(1, p.ClassLevel, "level carries over")

	// same class again
	_, err = s.service.ChangeClass(s.ctx, "player-1", "mage")
	s.True(apperr.IsValidation(err))

	// unknown class
	_, err = s.service.ChangeClass(s.ctx, "player-1", "necromancer")
	s.True(apperr.IsNotFound(err))
}

func (s *GameServiceTestSuite) TestChangeClass_AdvancedUnlockGates() {
	// archmage requires mage at level 20 with 10 dungeon clears
	_, err := s.service.ChangeClass(s.ctx, "player-1", "archmage")
	s.True(apperr.IsValidation(err), "wrong base class")

	p, getErr := s.playerRepo.Get(s.ctx, "player-1")
	s.Require().NoError(getErr)
	p.ClassName = "mage"
	p.ClassLevel = 20
	p.Counters.DungeonsCompleted = 9
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	_, err = s.service.ChangeClass(s.ctx, "player-1", "archmage")
	s.True(apperr.IsValidation(err), "dungeon clears short by one")

	p.Counters.DungeonsCompleted = 10
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	result, err := s.service.ChangeClass(s.ctx, "player-1", "archmage")
	s.Require().NoError(err)
	s.Equal("archmage", result.Player.ClassName)
}

func (s *GameServiceTestSuite) TestChangeClass_ClearsOffhandForSingleWielders() {
	p, err := s.playerRepo.GetOrCreate(s.ctx, "player-1")
	s.Require().NoError(err)
	p.ClassName = "rogue"
	p.Inventory = append(p.Inventory, &entities.InventoryItem{
		Item:     &entities.Item{ID: "rusty_sword", Name: "Rusty Sword", Type: entities.ItemTypeWeapon},
		Quantity: 1, Equipped: true,
	})
	p.EquippedItems[entities.SlotWeapon2] = "rusty_sword"
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	result, err := s.service.ChangeClass(s.ctx, "player-1", "mage")
	s.Require().NoError(err)

	s.Empty(result.Player.EquippedItems[entities.SlotWeapon2])
	s.False(result.Player.FindInventoryItem("rusty_sword").Equipped)
}

func (s *GameServiceTestSuite) TestGrantItem_AdvancesObtainedQuests() {
	result, err := s.service.GrantItem(s.ctx, "player-1", "healing_potion")
	s.Require().NoError(err)
	s.NotNil(result.Player.FindInventoryItem("healing_potion"))
}

func (s *GameServiceTestSuite) TestUseItem() {
	_, err := s.service.GrantItem(s.ctx, "player-1", "healing_potion")
	s.Require().NoError(err)

	p, err := s.playerRepo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	p.Energy = 30
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	p, err = s.service.UseItem(s.ctx, "player-1", "healing_potion")
	s.Require().NoError(err)
	s.Equal(80, p.Energy)
	s.Nil(p.FindInventoryItem("healing_potion"))
}

func (s *GameServiceTestSuite) TestContributeToGuild_DebitsPlayer() {
	g, err := s.service.CreateGuild(s.ctx, "player-1", "Iron Pact")
	s.Require().NoError(err)

	p, err := s.playerRepo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	p.Gold = 1000
	s.Require().NoError(s.playerRepo.Save(s.ctx, p))

	result, err := s.service.ContributeToGuild(s.ctx, "player-1", 400)
	s.Require().NoError(err)

	s.Equal(600, result.Player.Gold)
	savedGuild, err := s.guildRepo.Get(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Equal(400, savedGuild.Bank)

	// short balance rejects before any guild mutation
	_, err = s.service.ContributeToGuild(s.ctx, "player-1", 10000)
	s.True(apperr.IsValidation(err))
	savedGuild, _ = s.guildRepo.Get(s.ctx, g.ID)
	s.Equal(400, savedGuild.Bank)
}

func (s *GameServiceTestSuite) TestGuildMembership() {
	_, err := s.service.CreateGuild(s.ctx, "player-1", "Iron Pact")
	s.Require().NoError(err)

	// the founder cannot found twice
	_, err = s.service.CreateGuild(s.ctx, "player-1", "Second Pact")
	s.True(apperr.IsValidation(err))

	g, err := s.service.JoinGuild(s.ctx, "player-2", "Iron Pact")
	s.Require().NoError(err)

	p2, err := s.playerRepo.Get(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Equal(g.ID, p2.GuildID)

	s.Require().NoError(s.service.LeaveGuild(s.ctx, "player-2"))
	p2, err = s.playerRepo.Get(s.ctx, "player-2")
	s.Require().NoError(err)
	s.Empty(p2.GuildID)
}

func (s *GameServiceTestSuite) TestGetProfile() {
	profile, err := s.service.GetProfile(s.ctx, "player-1")
	s.Require().NoError(err)

	s.Equal(1, profile.Player.ClassLevel)
	s.Equal(100, profile.RequiredExp)
	s.Equal(12, profile.EffectiveStats[entities.StatPower], "warrior base power")
	s.NotEmpty(profile.ActiveQuests, "reading the profile generates quest sets")
}
