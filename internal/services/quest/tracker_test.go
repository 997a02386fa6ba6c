package quest_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockclock "github.com/fablebound/rpg-bot/internal/clock/mocks"
	"github.com/fablebound/rpg-bot/internal/entities"
	"github.com/fablebound/rpg-bot/internal/rng"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/services/progression"
	"github.com/fablebound/rpg-bot/internal/services/quest"
	"github.com/fablebound/rpg-bot/internal/testutils"
	mockuuid "github.com/fablebound/rpg-bot/internal/uuid/mocks"
)

// fakeFactory records item grants without a real catalog lookup
type fakeFactory struct {
	created []string
}

func (f *fakeFactory) CreateItem(templateID string) (*entities.Item, error) {
	f.created = append(f.created, templateID)
	return &entities.Item{ID: templateID, Name: templateID}, nil
}

func (f *fakeFactory) AddToInventory(p *entities.Player, item *entities.Item) {
	p.Inventory = append(p.Inventory, &entities.InventoryItem{Item: item, Quantity: 1})
}

type TrackerTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	timeProvider *mockclock.MockTimeProvider
	uuidGen      *mockuuid.MockGenerator
	roller       *rng.MockRoller
	factory      *fakeFactory
	tracker      *quest.Tracker
	now          time.Time
}

func (s *TrackerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.timeProvider = mockclock.NewMockTimeProvider(s.ctrl)
	s.uuidGen = mockuuid.NewMockGenerator(s.ctrl)
	s.roller = rng.NewMockRoller()
	s.factory = &fakeFactory{}

	// Monday 2024-01-15, ISO week 2024-W03
	s.now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	s.timeProvider.EXPECT().Now().Return(s.now).AnyTimes()
	s.uuidGen.EXPECT().New().Return("quest-id").AnyTimes()

	s.tracker = quest.NewTracker(&quest.TrackerConfig{
		Engine:        progression.NewEngine(nil),
		TimeProvider:  s.timeProvider,
		Roller:        s.roller,
		UUIDGenerator: s.uuidGen,
		ItemFactory:   s.factory,
	})
}

func (s *TrackerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestTrackerTestSuite(t *testing.T) {
	suite.Run(t, new(TrackerTestSuite))
}

func (s *TrackerTestSuite) TestPeriodKeys() {
	s.Equal("2024-01-15", quest.DailyKey(s.now))
	s.Equal("2024-W03", quest.WeeklyKey(s.now))
}

func (s *TrackerTestSuite) TestDailyQuests_GeneratesOncePerDay() {
	p := testutils.CreateTestPlayer("player-1")
	s.roller.SetRolls([]int{0, 0, 0})

	quests := s.tracker.DailyQuests(p)
	s.Len(quests, rulebook.DailyQuestCount)

	// sampling is without replacement
	seen := make(map[string]bool)
	for _, q := range quests {
		s.False(seen[q.TemplateID], "template %s sampled twice", q.TemplateID)
		seen[q.TemplateID] = true
		s.Equal(entities.QuestKindDaily, q.Kind)
	}

	// a second call must not resample; the exhausted roller would panic
	again := s.tracker.DailyQuests(p)
	s.Equal(quests, again)
}

func (s *TrackerTestSuite) TestDailyQuests_DropsStaleDates() {
	p := testutils.CreateTestPlayer("player-1")
	p.DailyQuests["2024-01-14"] = []*entities.QuestInstance{{ID: "stale"}}
	s.roller.SetRolls([]int{0, 0, 0})

	s.tracker.DailyQuests(p)

	s.Len(p.DailyQuests, 1, "only today's key survives")
	s.Contains(p.DailyQuests, "2024-01-15")
}

func (s *TrackerTestSuite) TestWeeklyQuests_Generates() {
	p := testutils.CreateTestPlayer("player-1")
	s.roller.SetRolls([]int{0, 0})

	quests := s.tracker.WeeklyQuests(p)
	s.Len(quests, rulebook.WeeklyQuestCount)
	s.Contains(p.WeeklyQuests, "2024-W03")
}

func (s *TrackerTestSuite) TestLongTermQuests_GeneratedOnceAtFixedTargets() {
	p := testutils.CreateTestPlayer("player-1")

	quests := s.tracker.LongTermQuests(p)
	s.Len(quests, len(rulebook.LongTermQuests()))
	for i, q := range quests {
		s.Equal(rulebook.LongTermQuests()[i].MinTarget, q.Target)
	}

	again := s.tracker.LongTermQuests(p)
	s.Equal(quests, again)
}

func (s *TrackerTestSuite) TestTargetScalesWithLevel() {
	template := &rulebook.QuestTemplate{MinTarget: 3, MaxTarget: 15}

	s.Equal(3, template.TargetForLevel(1), "near-min at level 1")
	s.Equal(9, template.TargetForLevel(25), "midpoint at level 25")
	s.Equal(15, template.TargetForLevel(50), "max at level 50")
	s.Equal(15, template.TargetForLevel(120), "scale caps at 1.0")
}

func (s *TrackerTestSuite) TestUpdateProgress_CompletionFiresOnce() {
	p := testutils.CreateTestPlayer("player-1")
	// 3 daily + 2 weekly samples
	s.roller.SetRolls([]int{0, 0, 0, 0, 0})

	// find the battle-win daily (daily_battles, target 3 at level 1) and
	// drive it to completion
	completed := s.tracker.UpdateProgress(p, rulebook.QuestTagBattleWin, 2)
	s.Empty(completed)

	completed = s.tracker.UpdateProgress(p, rulebook.QuestTagBattleWin, 1)
	s.NotEmpty(completed, "crossing call reports the instance")
	firstCount := p.Counters.QuestsCompleted
	s.Equal(len(completed), firstCount)

	completed = s.tracker.UpdateProgress(p, rulebook.QuestTagBattleWin, 5)
	for _, q := range completed {
		s.NotEqual("daily_battles", q.TemplateID, "completed instances never re-fire")
	}
}

func (s *TrackerTestSuite) TestUpdateProgress_NoMatchIsNoOp() {
	p := testutils.CreateTestPlayer("player-1")
	s.roller.SetRolls([]int{0, 0, 0, 0, 0})

	completed := s.tracker.UpdateProgress(p, "no_such_tag", 100)
	s.Empty(completed)
	s.Zero(p.Counters.QuestsCompleted)
}

func (s *TrackerTestSuite) TestGrantReward_ExactlyOnce() {
	p := testutils.CreateTestPlayer("player-1")
	q := &entities.QuestInstance{
		ID:        "q-1",
		Completed: true,
		Reward:    entities.QuestReward{Exp: 40, Gold: 25, ItemID: "champions_crest"},
	}

	s.Require().NoError(s.tracker.GrantReward(context.Background(), p, q))
	s.Equal(40, p.ClassExp)
	s.Equal(525, p.Gold)
	s.Equal([]string{"champions_crest"}, s.factory.created)
	s.True(q.RewardClaimed)

	// repeat call is a no-op
	s.Require().NoError(s.tracker.GrantReward(context.Background(), p, q))
	s.Equal(40, p.ClassExp)
	s.Equal(525, p.Gold)
	s.Len(s.factory.created, 1)
}

func (s *TrackerTestSuite) TestGrantReward_IncompleteIsNoOp() {
	p := testutils.CreateTestPlayer("player-1")
	q := &entities.QuestInstance{ID: "q-1", Reward: entities.QuestReward{Exp: 40}}

	s.Require().NoError(s.tracker.GrantReward(context.Background(), p, q))
	s.Zero(p.ClassExp)
	s.False(q.RewardClaimed)
}
