package guild_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockclock "github.com/fablebound/rpg-bot/internal/clock/mocks"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/guilds"
	"github.com/fablebound/rpg-bot/internal/rng"
	"github.com/fablebound/rpg-bot/internal/services/guild"
	"github.com/fablebound/rpg-bot/internal/services/progression"
	"github.com/fablebound/rpg-bot/internal/services/quest"
	"github.com/fablebound/rpg-bot/internal/testutils"
)

type GuildServiceTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	repo         guilds.Repository
	timeProvider *mockclock.MockTimeProvider
	roller       *rng.MockRoller
	service      *guild.Service
	ctx          context.Context
}

func (s *GuildServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = guilds.NewInMemoryRepository()
	s.timeProvider = mockclock.NewMockTimeProvider(s.ctrl)
	s.timeProvider.EXPECT().Now().
		Return(time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)).AnyTimes()
	s.roller = rng.NewMockRoller()
	s.ctx = context.Background()

	tracker := quest.NewTracker(&quest.TrackerConfig{
		Engine:       progression.NewEngine(nil),
		TimeProvider: s.timeProvider,
		Roller:       s.roller,
	})

	s.service = guild.NewService(&guild.ServiceConfig{
		Repository:   s.repo,
		QuestTracker: tracker,
		TimeProvider: s.timeProvider,
	})
}

func (s *GuildServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestGuildServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GuildServiceTestSuite))
}

func (s *GuildServiceTestSuite) TestRequiredExp() {
	s.Equal(1000, guild.RequiredExp(1))
	s.Equal(4000, guild.RequiredExp(2))
	s.Equal(9000, guild.RequiredExp(3))
}

func (s *GuildServiceTestSuite) TestCreate() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Equal("Iron Pact", g.Name)
	s.True(g.IsLeader("leader-1"))

	// name length bounds
	_, err = s.service.Create(s.ctx, "ab", "leader-2")
	s.True(apperr.IsValidation(err))

	// uniqueness
	_, err = s.service.Create(s.ctx, "Iron Pact", "leader-3")
	s.True(apperr.IsValidation(err))
}

func (s *GuildServiceTestSuite) TestAddMember_CapacityEnforced() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	// fill to the level 1 capacity of 20
	for i := 1; i < 20; i++ {
		s.Require().NoError(s.service.AddMember(s.ctx, g.ID, fmt.Sprintf("player-%d", i)))
	}

	err = s.service.AddMember(s.ctx, g.ID, "player-21")
	s.True(apperr.IsValidation(err))
	s.Equal("guild is full", apperr.Reason(err))

	got, err := s.repo.Get(s.ctx, g.ID)
	s.Require().NoError(err)
	s.Len(got.MemberIDs, 20)
}

func (s *GuildServiceTestSuite) TestAddMember_AlreadyMember() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	err = s.service.AddMember(s.ctx, g.ID, "leader-1")
	s.True(apperr.IsValidation(err))
}

func (s *GuildServiceTestSuite) TestRemoveMember() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Require().NoError(s.service.AddMember(s.ctx, g.ID, "player-2"))

	// the leader cannot walk out on a populated guild
	err = s.service.RemoveMember(s.ctx, g.ID, "leader-1")
	s.True(apperr.IsValidation(err))

	s.Require().NoError(s.service.RemoveMember(s.ctx, g.ID, "player-2"))

	// the last leaving leader disbands the guild
	s.Require().NoError(s.service.RemoveMember(s.ctx, g.ID, "leader-1"))
	_, err = s.repo.Get(s.ctx, g.ID)
	s.True(apperr.IsNotFound(err))
}

func (s *GuildServiceTestSuite) TestRoleOperations() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Require().NoError(s.service.AddMember(s.ctx, g.ID, "player-2"))

	// only the leader promotes
	err = s.service.Promote(s.ctx, g.ID, "player-2", "player-2")
	s.True(apperr.IsValidation(err))

	s.Require().NoError(s.service.Promote(s.ctx, g.ID, "leader-1", "player-2"))
	got, _ := s.repo.Get(s.ctx, g.ID)
	s.True(got.IsOfficer("player-2"))

	// promoting twice fails
	err = s.service.Promote(s.ctx, g.ID, "leader-1", "player-2")
	s.True(apperr.IsValidation(err))

	s.Require().NoError(s.service.Demote(s.ctx, g.ID, "leader-1", "player-2"))
	got, _ = s.repo.Get(s.ctx, g.ID)
	s.False(got.IsOfficer("player-2"))
}

func (s *GuildServiceTestSuite) TestTransferLeadership() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Require().NoError(s.service.AddMember(s.ctx, g.ID, "player-2"))
	s.Require().NoError(s.service.Promote(s.ctx, g.ID, "leader-1", "player-2"))

	s.Require().NoError(s.service.TransferLeadership(s.ctx, g.ID, "leader-1", "player-2"))

	got, _ := s.repo.Get(s.ctx, g.ID)
	s.True(got.IsLeader("player-2"))
	s.False(got.IsOfficer("player-2"), "the new leader sheds the officer role")
	s.True(got.IsMember("leader-1"), "the old leader stays as a member")
}

func (s *GuildServiceTestSuite) TestRename() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	_, err = s.service.Create(s.ctx, "Silver Oath", "leader-2")
	s.Require().NoError(err)

	err = s.service.Rename(s.ctx, g.ID, "player-2", "New Name")
	s.True(apperr.IsValidation(err), "only the leader renames")

	err = s.service.Rename(s.ctx, g.ID, "leader-1", "Silver Oath")
	s.True(apperr.IsValidation(err), "taken names are rejected")

	s.Require().NoError(s.service.Rename(s.ctx, g.ID, "leader-1", "Iron Oath"))
	got, err := s.repo.GetByName(s.ctx, "Iron Oath")
	s.Require().NoError(err)
	s.Equal(g.ID, got.ID)
}

func (s *GuildServiceTestSuite) TestBank() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	s.Require().NoError(s.service.Deposit(s.ctx, g.ID, 300))

	err = s.service.Withdraw(s.ctx, g.ID, 301)
	s.True(apperr.IsValidation(err))
	got, _ := s.repo.Get(s.ctx, g.ID)
	s.Equal(300, got.Bank, "failed withdraw does not mutate")

	s.Require().NoError(s.service.Withdraw(s.ctx, g.ID, 100))
	got, _ = s.repo.Get(s.ctx, g.ID)
	s.Equal(200, got.Bank)
}

func (s *GuildServiceTestSuite) TestContribute() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	p := testutils.CreateTestPlayer("leader-1")
	// 3 daily samples then weekly: index 3 is the contribution template
	s.roller.SetRolls([]int{0, 0, 0, 3, 0})

	result, err := s.service.Contribute(s.ctx, g.ID, p, 6000)
	s.Require().NoError(err)

	s.Equal(600, result.Points)
	got, _ := s.repo.Get(s.ctx, g.ID)
	s.Equal(6000, got.Bank)
	s.Equal(600, got.Contributions["2024-01-15"]["leader-1"])
	s.Equal(1, p.Counters.GuildContributions)

	// 6000 clears the weekly contribution target in one donation
	s.Require().Len(result.CompletedQuests, 1)
	s.Equal("weekly_contribution", result.CompletedQuests[0].TemplateID)
}

func (s *GuildServiceTestSuite) TestContribute_NonMemberRejected() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	p := testutils.CreateTestPlayer("outsider")
	_, err = s.service.Contribute(s.ctx, g.ID, p, 100)
	s.True(apperr.IsValidation(err))

	got, _ := s.repo.Get(s.ctx, g.ID)
	s.Zero(got.Bank)
	s.Zero(p.Counters.GuildContributions)
}

func (s *GuildServiceTestSuite) TestPurchaseUpgrade() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Deposit(s.ctx, g.ID, 10000))

	// expansion permit: 5000 gold, 1000 exp, exactly one level
	result, err := s.service.PurchaseUpgrade(s.ctx, g.ID, "leader-1", "expansion_permit")
	s.Require().NoError(err)
	s.True(result.LeveledUp)
	s.Equal(2, result.NewLevel)
	s.Equal(1, result.UpgradeLevel)

	// banner: 2500 gold, 500 exp, no level at the steeper level 2 curve
	result, err = s.service.PurchaseUpgrade(s.ctx, g.ID, "leader-1", "banner")
	s.Require().NoError(err)
	s.False(result.LeveledUp)

	got, _ := s.repo.Get(s.ctx, g.ID)
	s.Equal(2500, got.Bank)
	s.Equal(2, got.Level)
	s.Equal(500, got.Experience)

	// banner is single-purchase
	_, err = s.service.PurchaseUpgrade(s.ctx, g.ID, "leader-1", "banner")
	s.True(apperr.IsValidation(err))

	// war room costs more than the remaining bank; nothing mutates
	_, err = s.service.PurchaseUpgrade(s.ctx, g.ID, "leader-1", "war_room")
	s.True(apperr.IsValidation(err))
	got, _ = s.repo.Get(s.ctx, g.ID)
	s.Equal(2500, got.Bank)

	// members without a role cannot buy
	s.Require().NoError(s.service.AddMember(s.ctx, g.ID, "player-2"))
	_, err = s.service.PurchaseUpgrade(s.ctx, g.ID, "player-2", "vault")
	s.True(apperr.IsValidation(err))
}

func (s *GuildServiceTestSuite) TestUpgradeSeatsRaiseCapacity() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)
	s.Require().NoError(s.service.Deposit(s.ctx, g.ID, 5000))

	_, err = s.service.PurchaseUpgrade(s.ctx, g.ID, "leader-1", "expansion_permit")
	s.Require().NoError(err)

	got, _ := s.repo.Get(s.ctx, g.ID)
	// level 2 after the exp grant: 20 + 5 + 5 bonus seats
	s.Equal(30, got.MaxMembers(guild.BonusSeats(got)))
}

func (s *GuildServiceTestSuite) TestAddExperience_MultiLevel() {
	g, err := s.service.Create(s.ctx, "Iron Pact", "leader-1")
	s.Require().NoError(err)

	leveled, err := s.service.AddExperience(s.ctx, g.ID, 5000)
	s.Require().NoError(err)
	s.True(leveled)

	got, _ := s.repo.Get(s.ctx, g.ID)
	s.Equal(3, got.Level, "1000 + 4000 exp jumps two levels")
	s.Zero(got.Experience)

	_, err = s.service.AddExperience(s.ctx, g.ID, -1)
	s.True(apperr.IsInvalidArgument(err))
}

func TestContribute_ConcurrentDonationsDoNotLoseUpdates(t *testing.T) {
	repo := guilds.NewInMemoryRepository()
	tracker := quest.NewTracker(&quest.TrackerConfig{
		Engine: progression.NewEngine(nil),
	})
	service := guild.NewService(&guild.ServiceConfig{
		Repository:   repo,
		QuestTracker: tracker,
	})
	ctx := context.Background()

	g, err := service.Create(ctx, "Iron Pact", "leader-1")
	if err != nil {
		t.Fatal(err)
	}

	const donors = 10
	for i := 0; i < donors; i++ {
		if err := service.AddMember(ctx, g.ID, fmt.Sprintf("donor-%d", i)); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < donors; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := testutils.CreateTestPlayer(fmt.Sprintf("donor-%d", i))
			if _, err := service.Contribute(ctx, g.ID, p, 100); err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	got, err := repo.Get(ctx, g.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Bank != donors*100 {
		t.Fatalf("expected bank %d, got %d", donors*100, got.Bank)
	}
}
