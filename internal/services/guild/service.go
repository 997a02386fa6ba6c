// Package guild owns the guild economy and leveling state machine: bank,
// contributions, roster roles and shop upgrades. Every mutation of an
// existing guild runs under that guild's lock so concurrent member actions
// cannot lose updates.
package guild

import (
	"context"
	"strings"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/guilds"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/services/quest"
	"github.com/fablebound/rpg-bot/internal/uuid"
)

// GuildExpBase sets the leveling curve: required = base × level²
const GuildExpBase = 1000

// ContributionPointDivisor converts contributed gold to ledger points
const ContributionPointDivisor = 10

// Service manages guild state
type Service struct {
	repo         guilds.Repository
	quests       *quest.Tracker
	timeProvider clock.TimeProvider
	uuidGen      uuid.Generator
	locks        *guildLocks
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    guilds.Repository
	QuestTracker  *quest.Tracker
	TimeProvider  clock.TimeProvider // optional, defaults to system clock
	UUIDGenerator uuid.Generator     // optional
}

// NewService creates a new guild service
func NewService(cfg *ServiceConfig) *Service {
	if cfg.Repository == nil {
		panic("guild repository is required")
	}
	if cfg.QuestTracker == nil {
		panic("quest tracker is required")
	}

	s := &Service{
		repo:         cfg.Repository,
		quests:       cfg.QuestTracker,
		timeProvider: cfg.TimeProvider,
		uuidGen:      cfg.UUIDGenerator,
		locks:        newGuildLocks(),
	}
	if s.timeProvider == nil {
		s.timeProvider = clock.New()
	}
	if s.uuidGen == nil {
		s.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return s
}

// RequiredExp returns the experience needed to advance past the guild level
func RequiredExp(level int) int {
	return GuildExpBase * level * level
}

// Create founds a new guild with the player as leader
func (s *Service) Create(ctx context.Context, name, leaderID string) (*entities.Guild, error) {
	name = strings.TrimSpace(name)
	if len(name) < entities.GuildNameMinLen || len(name) > entities.GuildNameMaxLen {
		return nil, apperr.Validationf("guild name must be %d-%d characters",
			entities.GuildNameMinLen, entities.GuildNameMaxLen)
	}

	guild := entities.NewGuild(s.uuidGen.New(), name, leaderID)
	if err := s.repo.Create(ctx, guild); err != nil {
		if apperr.Is(err, apperr.CodeAlreadyExists) {
			return nil, apperr.Validationf("guild name '%s' is already taken", name)
		}
		return nil, err
	}
	return guild, nil
}

// Get retrieves a guild by id
func (s *Service) Get(ctx context.Context, id string) (*entities.Guild, error) {
	return s.repo.Get(ctx, id)
}

// GetByName retrieves a guild by name
func (s *Service) GetByName(ctx context.Context, name string) (*entities.Guild, error) {
	return s.repo.GetByName(ctx, name)
}

// BonusSeats sums the extra member capacity from purchased upgrades
func BonusSeats(g *entities.Guild) int {
	seats := 0
	for id, level := range g.Upgrades {
		if def, ok := rulebook.GetGuildUpgrade(id); ok {
			seats += def.BonusSeats * level
		}
	}
	return seats
}

// AddMember admits the player, rejecting when the guild is at capacity
func (s *Service) AddMember(ctx context.Context, guildID, playerID string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if guild.IsMember(playerID) {
		return apperr.Validation("already a member of this guild")
	}
	if len(guild.MemberIDs) >= guild.MaxMembers(BonusSeats(guild)) {
		return apperr.Validation("guild is full")
	}

	guild.AddMember(playerID)
	return s.repo.Update(ctx, guild)
}

// RemoveMember handles both voluntary leaving and the disband-on-last-leave
// rule: the guild dissolves only when its final member, the leader, leaves.
func (s *Service) RemoveMember(ctx context.Context, guildID, playerID string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if !guild.IsMember(playerID) {
		return apperr.Validation("not a member of this guild")
	}

	if guild.IsLeader(playerID) {
		if len(guild.MemberIDs) > 1 {
			return apperr.Validation("transfer leadership before leaving")
		}
		return s.repo.Delete(ctx, guildID)
	}

	guild.RemoveMember(playerID)
	return s.repo.Update(ctx, guild)
}

// Promote elevates a member to officer; only the leader may promote
func (s *Service) Promote(ctx context.Context, guildID, actorID, targetID string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if !guild.IsLeader(actorID) {
		return apperr.Validation("only the leader can promote members")
	}
	if !guild.IsMember(targetID) {
		return apperr.Validation("target is not a member of this guild")
	}
	if guild.IsLeader(targetID) {
		return apperr.Validation("the leader cannot be promoted")
	}
	if guild.IsOfficer(targetID) {
		return apperr.Validation("target is already an officer")
	}

	guild.OfficerIDs = append(guild.OfficerIDs, targetID)
	return s.repo.Update(ctx, guild)
}

// Demote strips a member of the officer role; only the leader may demote
func (s *Service) Demote(ctx context.Context, guildID, actorID, targetID string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if !guild.IsLeader(actorID) {
		return apperr.Validation("only the leader can demote officers")
	}
	if !guild.IsOfficer(targetID) {
		return apperr.Validation("target is not an officer")
	}

	for i, id := range guild.OfficerIDs {
		if id == targetID {
			guild.OfficerIDs = append(guild.OfficerIDs[:i], guild.OfficerIDs[i+1:]...)
			break
		}
	}
	return s.repo.Update(ctx, guild)
}

// TransferLeadership hands the guild to another member. The old leader
// stays on as a regular member; an officer target loses the officer role.
func (s *Service) TransferLeadership(ctx context.Context, guildID, actorID, targetID string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if !guild.IsLeader(actorID) {
		return apperr.Validation("only the leader can transfer leadership")
	}
	if !guild.IsMember(targetID) {
		return apperr.Validation("target is not a member of this guild")
	}
	if guild.IsLeader(targetID) {
		return apperr.Validation("target is already the leader")
	}

	for i, id := range guild.OfficerIDs {
		if id == targetID {
			guild.OfficerIDs = append(guild.OfficerIDs[:i], guild.OfficerIDs[i+1:]...)
			break
		}
	}
	guild.LeaderID = targetID
	return s.repo.Update(ctx, guild)
}

// Rename changes the guild's unique name; only the leader may rename
func (s *Service) Rename(ctx context.Context, guildID, actorID, newName string) error {
	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if !guild.IsLeader(actorID) {
		return apperr.Validation("only the leader can rename the guild")
	}

	newName = strings.TrimSpace(newName)
	if len(newName) < entities.GuildNameMinLen || len(newName) > entities.GuildNameMaxLen {
		return apperr.Validationf("guild name must be %d-%d characters",
			entities.GuildNameMinLen, entities.GuildNameMaxLen)
	}

	if err := s.repo.Rename(ctx, guild, newName); err != nil {
		if apperr.Is(err, apperr.CodeAlreadyExists) {
			return apperr.Validationf("guild name '%s' is already taken", newName)
		}
		return err
	}
	return nil
}

// Deposit adds currency to the guild bank; it always succeeds
func (s *Service) Deposit(ctx context.Context, guildID string, amount int) error {
	if amount <= 0 {
		return apperr.InvalidArgumentf("deposit amount must be positive: %d", amount)
	}

	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	guild.Bank += amount
	return s.repo.Update(ctx, guild)
}

// Withdraw removes currency from the bank, failing without mutation when
// the balance is short.
func (s *Service) Withdraw(ctx context.Context, guildID string, amount int) error {
	if amount <= 0 {
		return apperr.InvalidArgumentf("withdraw amount must be positive: %d", amount)
	}

	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return err
	}

	if amount > guild.Bank {
		return apperr.Validation("insufficient guild funds")
	}

	guild.Bank -= amount
	return s.repo.Update(ctx, guild)
}

// ContributeResult reports what a contribution did
type ContributeResult struct {
	Points          int
	CompletedQuests []*entities.QuestInstance
}

// Contribute banks a member's donation and credits the daily contribution
// ledger. Deducting the gold from the player is the caller's job; this
// operation touches guild state, the player's contribution counter and the
// weekly guild-contribution quest progress.
func (s *Service) Contribute(ctx context.Context, guildID string, p *entities.Player, amount int) (*ContributeResult, error) {
	if amount <= 0 {
		return nil, apperr.InvalidArgumentf("contribution amount must be positive: %d", amount)
	}

	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if !guild.IsMember(p.ID) {
		return nil, apperr.Validation("not a member of this guild")
	}

	points := amount / ContributionPointDivisor
	guild.Bank += amount
	guild.CreditContribution(quest.DailyKey(s.timeProvider.Now()), p.ID, points)

	if err := s.repo.Update(ctx, guild); err != nil {
		return nil, err
	}

	p.Counters.GuildContributions++
	completed := s.quests.UpdateProgress(p, rulebook.QuestTagGuildContribution, amount)

	return &ContributeResult{
		Points:          points,
		CompletedQuests: completed,
	}, nil
}

// PurchaseResult reports what an upgrade purchase did
type PurchaseResult struct {
	Upgrade      *rulebook.GuildUpgrade
	UpgradeLevel int
	LeveledUp    bool
	NewLevel     int
}

// PurchaseUpgrade buys a shop upgrade with guild funds: the bank is
// debited, the upgrade level raised and the fixed experience grant applied,
// all-or-nothing. Officers and the leader may purchase.
func (s *Service) PurchaseUpgrade(ctx context.Context, guildID, actorID, upgradeID string) (*PurchaseResult, error) {
	def, ok := rulebook.GetGuildUpgrade(upgradeID)
	if !ok {
		return nil, apperr.NotFoundf("guild upgrade '%s' not found", upgradeID).
			WithMeta("upgrade_id", upgradeID)
	}

	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return nil, err
	}

	if !guild.IsOfficerOrLeader(actorID) {
		return nil, apperr.Validation("only officers and the leader can buy upgrades")
	}
	if guild.Upgrades[upgradeID] >= def.MaxLevel {
		return nil, apperr.Validationf("%s is already at max level", def.Name)
	}
	if guild.Bank < def.Cost {
		return nil, apperr.Validation("insufficient guild funds")
	}

	guild.Bank -= def.Cost
	guild.Upgrades[upgradeID]++
	leveledUp := applyExperience(guild, def.ExpGrant)

	if err := s.repo.Update(ctx, guild); err != nil {
		return nil, err
	}

	return &PurchaseResult{
		Upgrade:      def,
		UpgradeLevel: guild.Upgrades[upgradeID],
		LeveledUp:    leveledUp,
		NewLevel:     guild.Level,
	}, nil
}

// AddExperience awards guild experience directly (guild dungeon clears and
// similar), reporting whether at least one level-up occurred.
func (s *Service) AddExperience(ctx context.Context, guildID string, amount int) (bool, error) {
	if amount < 0 {
		return false, apperr.InvalidArgumentf("experience award cannot be negative: %d", amount)
	}

	unlock := s.locks.acquire(guildID)
	defer unlock()

	guild, err := s.repo.Get(ctx, guildID)
	if err != nil {
		return false, err
	}

	leveledUp := applyExperience(guild, amount)
	if err := s.repo.Update(ctx, guild); err != nil {
		return false, err
	}
	return leveledUp, nil
}

// applyExperience adds exp and loops level-ups with carry-over, the same
// subtract-and-continue shape as player leveling.
func applyExperience(g *entities.Guild, amount int) bool {
	g.Experience += amount

	leveled := false
	for required := RequiredExp(g.Level); g.Experience >= required; required = RequiredExp(g.Level) {
		g.Experience -= required
		g.Level++
		leveled = true
	}
	return leveled
}
