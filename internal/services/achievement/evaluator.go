// Package achievement scans the static catalog against live player state
// and grants newly satisfied definitions exactly once.
package achievement

import (
	"context"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/repositories/guilds"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/services/progression"
)

// ItemFactory materializes special-item rewards
type ItemFactory interface {
	CreateItem(templateID string) (*entities.Item, error)
	AddToInventory(p *entities.Player, item *entities.Item)
}

// Evaluator checks and grants achievements
type Evaluator struct {
	engine       *progression.Engine
	factory      ItemFactory
	guilds       guilds.Repository
	timeProvider clock.TimeProvider
}

// EvaluatorConfig holds configuration for the evaluator
type EvaluatorConfig struct {
	Engine          *progression.Engine
	ItemFactory     ItemFactory
	GuildRepository guilds.Repository  // optional; guild requirements are
	                                   // unsatisfiable without it
	TimeProvider    clock.TimeProvider // optional, defaults to system clock
}

// NewEvaluator creates a new achievement evaluator
func NewEvaluator(cfg *EvaluatorConfig) *Evaluator {
	if cfg.Engine == nil {
		panic("progression engine is required")
	}
	if cfg.ItemFactory == nil {
		panic("item factory is required")
	}

	e := &Evaluator{
		engine:       cfg.Engine,
		factory:      cfg.ItemFactory,
		guilds:       cfg.GuildRepository,
		timeProvider: cfg.TimeProvider,
	}
	if e.timeProvider == nil {
		e.timeProvider = clock.New()
	}
	return e
}

// Check grants every definition the player now satisfies and returns the
// newly granted list. Because meta definitions read the count and points of
// grants made in the same invocation, the catalog is re-scanned until a
// pass grants nothing, bounded by the catalog size so termination is
// structural rather than assumed.
func (e *Evaluator) Check(ctx context.Context, p *entities.Player) ([]*rulebook.AchievementDefinition, error) {
	catalog := rulebook.Achievements()
	var granted []*rulebook.AchievementDefinition

	for pass := 0; pass < len(catalog); pass++ {
		grantedThisPass := 0

		for _, def := range catalog {
			if p.HasAchievement(def.ID) {
				continue
			}

			ok, err := e.satisfied(ctx, p, def)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}

			// record the grant before paying out so a reward failure can
			// never double-grant on retry
			p.GrantAchievement(def.ID, e.timeProvider.Now())
			if err := e.payReward(ctx, p, def); err != nil {
				return granted, err
			}

			granted = append(granted, def)
			grantedThisPass++
		}

		if grantedThisPass == 0 {
			break
		}
	}

	return granted, nil
}

// EarnedPoints sums the point values of every granted definition
func EarnedPoints(p *entities.Player) int {
	total := 0
	for id := range p.Achievements {
		if def, ok := rulebook.GetAchievement(id); ok {
			total += def.Points
		}
	}
	return total
}

// AvailablePoints is earned points minus the spent ledger. Overspending
// elsewhere can push this negative; that is a display fact, not an error.
func AvailablePoints(p *entities.Player) int {
	return EarnedPoints(p) - p.SpentAchievementPoints
}

func (e *Evaluator) payReward(ctx context.Context, p *entities.Player, def *rulebook.AchievementDefinition) error {
	if def.Reward.Exp > 0 {
		if _, err := e.engine.AddExperience(ctx, p, def.Reward.Exp); err != nil {
			return err
		}
	}
	if def.Reward.Gold > 0 {
		if _, err := e.engine.AddGold(ctx, p, def.Reward.Gold); err != nil {
			return err
		}
	}
	if def.Reward.ItemID != "" {
		item, err := e.factory.CreateItem(def.Reward.ItemID)
		if err != nil {
			return err
		}
		e.factory.AddToInventory(p, item)
	}
	return nil
}

// satisfied evaluates a requirement against current state. Missing related
// state (no guild, guild record gone) reads as not-yet-satisfied. An
// unknown requirement kind is a programming error and fails fast.
func (e *Evaluator) satisfied(ctx context.Context, p *entities.Player, def *rulebook.AchievementDefinition) (bool, error) {
	req := def.Requirement

	switch req.Kind {
	case rulebook.RequirementLevel:
		return p.ClassLevel >= req.Threshold, nil
	case rulebook.RequirementWins:
		return p.Counters.Wins >= req.Threshold, nil
	case rulebook.RequirementPvPWins:
		return p.Counters.PvPWins >= req.Threshold, nil
	case rulebook.RequirementDungeons:
		return p.Counters.DungeonsCompleted >= req.Threshold, nil
	case rulebook.RequirementBosses:
		return p.Counters.BossesDefeated >= req.Threshold, nil
	case rulebook.RequirementGoldEarned:
		return p.Counters.GoldEarned >= req.Threshold, nil
	case rulebook.RequirementGoldSpent:
		return p.Counters.GoldSpent >= req.Threshold, nil
	case rulebook.RequirementTraining:
		return p.Counters.TrainingCompleted >= req.Threshold, nil
	case rulebook.RequirementAdvancedTraining:
		return p.Counters.AdvancedTrainingCompleted >= req.Threshold, nil
	case rulebook.RequirementUniqueItems:
		return p.UniqueItemNames() >= req.Threshold, nil
	case rulebook.RequirementRarityOwned:
		return p.OwnsRarityAtLeast(req.Rarity), nil
	case rulebook.RequirementGuildMember:
		guild := e.playerGuild(ctx, p)
		return guild != nil && guild.IsMember(p.ID), nil
	case rulebook.RequirementGuildOfficer:
		guild := e.playerGuild(ctx, p)
		return guild != nil && guild.IsOfficerOrLeader(p.ID), nil
	case rulebook.RequirementGuildLeader:
		guild := e.playerGuild(ctx, p)
		return guild != nil && guild.IsLeader(p.ID), nil
	case rulebook.RequirementGuildContributions:
		return p.Counters.GuildContributions >= req.Threshold, nil
	case rulebook.RequirementGuildDungeons:
		return p.Counters.GuildDungeons >= req.Threshold, nil
	case rulebook.RequirementClassChanges:
		return p.Counters.ClassChanges >= req.Threshold, nil
	case rulebook.RequirementDailyClaims:
		return p.Counters.DailyClaims >= req.Threshold, nil
	case rulebook.RequirementQuestsCompleted:
		return p.Counters.QuestsCompleted >= req.Threshold, nil
	case rulebook.RequirementAchievementCount:
		return len(p.Achievements) >= req.Threshold, nil
	case rulebook.RequirementAchievementPoints:
		return EarnedPoints(p) >= req.Threshold, nil
	default:
		return false, apperr.InvalidArgumentf("unknown achievement requirement kind '%s'", req.Kind).
			WithMeta("achievement_id", def.ID)
	}
}

func (e *Evaluator) playerGuild(ctx context.Context, p *entities.Player) *entities.Guild {
	if e.guilds == nil || p.GuildID == "" {
		return nil
	}
	guild, err := e.guilds.Get(ctx, p.GuildID)
	if err != nil {
		return nil
	}
	return guild
}
