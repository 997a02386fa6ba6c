package players

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockclock "github.com/fablebound/rpg-bot/internal/clock/mocks"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/rulebook"
)

type RedisRepoTestSuite struct {
	suite.Suite
	mockClient   *redis.Client
	mock         redismock.ClientMock
	mockCtrl     *gomock.Controller
	timeProvider *mockclock.MockTimeProvider
	repo         Repository
	ctx          context.Context
	now          time.Time
}

func (s *RedisRepoTestSuite) SetupTest() {
	s.mockClient, s.mock = redismock.NewClientMock()
	s.mockCtrl = gomock.NewController(s.T())
	s.timeProvider = mockclock.NewMockTimeProvider(s.mockCtrl)
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:       s.mockClient,
		TimeProvider: s.timeProvider,
	})
	s.ctx = context.Background()
	s.now = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
	s.NoError(s.mock.ExpectationsWereMet())
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) storedPlayer(id string) (*entities.Player, string) {
	p := entities.NewPlayer(id, rulebook.DefaultClass)
	p.CreatedAt = s.now
	p.UpdatedAt = s.now
	data, err := json.Marshal(p)
	s.Require().NoError(err)
	return p, string(data)
}

func (s *RedisRepoTestSuite) TestGet() {
	_, jsonData := s.storedPlayer("player-1")

	// Happy path
	s.mock.ExpectGet("player:player-1").SetVal(jsonData)

	p, err := s.repo.Get(s.ctx, "player-1")
	s.NoError(err)
	s.Equal("player-1", p.ID)
	s.Equal(1, p.ClassLevel)

	// Missing record
	s.mock.ExpectGet("player:player-1").RedisNil()

	_, err = s.repo.Get(s.ctx, "player-1")
	s.True(apperr.IsNotFound(err))

	// Dependency error
	s.mock.ExpectGet("player:player-1").SetErr(errors.New("redis error"))

	_, err = s.repo.Get(s.ctx, "player-1")
	s.Error(err)
	s.False(apperr.IsNotFound(err))

	// Input validation
	_, err = s.repo.Get(s.ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestGet_NormalizesOldRecords() {
	// records written before some collections existed decode with nil maps
	s.mock.ExpectGet("player:player-1").SetVal(`{"id":"player-1","class_name":"warrior","class_level":3}`)

	p, err := s.repo.Get(s.ctx, "player-1")
	s.Require().NoError(err)
	s.NotNil(p.AllocatedStats)
	s.NotNil(p.EquippedItems)
	s.NotNil(p.Achievements)
	s.NotNil(p.DailyQuests)
	s.NotNil(p.WeeklyQuests)
}

func (s *RedisRepoTestSuite) TestGetOrCreate_Existing() {
	_, jsonData := s.storedPlayer("player-1")
	s.mock.ExpectGet("player:player-1").SetVal(jsonData)

	p, err := s.repo.GetOrCreate(s.ctx, "player-1")
	s.NoError(err)
	s.Equal("player-1", p.ID)
}

func (s *RedisRepoTestSuite) TestGetOrCreate_CreatesDefault() {
	// Now is read once for CreatedAt and once again inside Save
	s.timeProvider.EXPECT().Now().Return(s.now).Times(2)

	_, jsonData := s.storedPlayer("player-1")

	s.mock.ExpectGet("player:player-1").RedisNil()
	s.mock.ExpectSet("player:player-1", jsonData, 0).SetVal("OK")
	s.mock.ExpectSAdd("players", "player-1").SetVal(1)

	p, err := s.repo.GetOrCreate(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Equal(rulebook.DefaultClass, p.ClassName)
	s.Equal(100, p.Energy)
	s.Equal(s.now, p.CreatedAt)
}

func (s *RedisRepoTestSuite) TestSave() {
	s.timeProvider.EXPECT().Now().Return(s.now).Times(2)

	player, jsonData := s.storedPlayer("player-1")

	// Happy path
	s.mock.ExpectSet("player:player-1", jsonData, 0).SetVal("OK")
	s.mock.ExpectSAdd("players", "player-1").SetVal(1)

	s.NoError(s.repo.Save(s.ctx, player))

	// Dependency error
	s.mock.ExpectSet("player:player-1", jsonData, 0).SetErr(errors.New("redis error"))

	s.Error(s.repo.Save(s.ctx, player))

	// Input validation
	s.Error(s.repo.Save(s.ctx, nil))
	s.Error(s.repo.Save(s.ctx, &entities.Player{}))
}

func (s *RedisRepoTestSuite) TestListAll() {
	// reads behind the index fan out, so match expectations in any order
	s.mock.MatchExpectationsInOrder(false)

	_, jsonData := s.storedPlayer("player-1")

	s.mock.ExpectSMembers("players").SetVal([]string{"player-1", "player-gone"})
	s.mock.ExpectGet("player:player-1").SetVal(jsonData)
	s.mock.ExpectGet("player:player-gone").RedisNil()

	players, err := s.repo.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1, "index entries without a record are skipped")
	s.Equal("player-1", players[0].ID)
}
