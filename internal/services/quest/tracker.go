// Package quest maintains daily, weekly and long-term quest instances.
// Daily and weekly sets are sampled lazily the first time they are
// requested in a new period; long-term quests are generated exactly once.
package quest

import (
	"context"
	"fmt"
	"time"

	"github.com/fablebound/rpg-bot/internal/clock"
	"github.com/fablebound/rpg-bot/internal/entities"
	"github.com/fablebound/rpg-bot/internal/rng"
	"github.com/fablebound/rpg-bot/internal/rulebook"
	"github.com/fablebound/rpg-bot/internal/services/progression"
	"github.com/fablebound/rpg-bot/internal/uuid"
)

// ItemFactory materializes item rewards
type ItemFactory interface {
	CreateItem(templateID string) (*entities.Item, error)
	AddToInventory(p *entities.Player, item *entities.Item)
}

// Tracker manages quest generation, progress and reward payout
type Tracker struct {
	timeProvider clock.TimeProvider
	roller       rng.Roller
	uuidGen      uuid.Generator
	engine       *progression.Engine
	factory      ItemFactory
}

// TrackerConfig holds configuration for the tracker
type TrackerConfig struct {
	Engine       *progression.Engine
	TimeProvider clock.TimeProvider // optional, defaults to system clock
	Roller       rng.Roller         // optional, defaults to seeded source
	UUIDGenerator uuid.Generator    // optional
	ItemFactory  ItemFactory        // optional, only needed for item rewards
}

// NewTracker creates a new quest tracker
func NewTracker(cfg *TrackerConfig) *Tracker {
	if cfg.Engine == nil {
		panic("progression engine is required")
	}

	t := &Tracker{
		timeProvider: cfg.TimeProvider,
		roller:       cfg.Roller,
		uuidGen:      cfg.UUIDGenerator,
		engine:       cfg.Engine,
		factory:      cfg.ItemFactory,
	}
	if t.timeProvider == nil {
		t.timeProvider = clock.New()
	}
	if t.roller == nil {
		t.roller = rng.New()
	}
	if t.uuidGen == nil {
		t.uuidGen = uuid.NewGoogleUUIDGenerator()
	}
	return t
}

// DailyKey formats the calendar-date key for daily quests
func DailyKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// WeeklyKey formats the ISO year-week key for weekly quests
func WeeklyKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// DailyQuests returns today's instances, sampling a fresh set the first
// time today's key is requested. Stale dates are dropped.
func (t *Tracker) DailyQuests(p *entities.Player) []*entities.QuestInstance {
	key := DailyKey(t.timeProvider.Now())
	if quests, ok := p.DailyQuests[key]; ok {
		return quests
	}

	quests := t.sample(p, rulebook.DailyQuestPool(), rulebook.DailyQuestCount)
	p.DailyQuests = map[string][]*entities.QuestInstance{key: quests}
	return quests
}

// WeeklyQuests returns this ISO week's instances, sampling on first request
func (t *Tracker) WeeklyQuests(p *entities.Player) []*entities.QuestInstance {
	key := WeeklyKey(t.timeProvider.Now())
	if quests, ok := p.WeeklyQuests[key]; ok {
		return quests
	}

	quests := t.sample(p, rulebook.WeeklyQuestPool(), rulebook.WeeklyQuestCount)
	p.WeeklyQuests = map[string][]*entities.QuestInstance{key: quests}
	return quests
}

// LongTermQuests returns the permanent instances, generating them once
func (t *Tracker) LongTermQuests(p *entities.Player) []*entities.QuestInstance {
	if len(p.LongTermQuests) > 0 {
		return p.LongTermQuests
	}

	quests := make([]*entities.QuestInstance, 0, len(rulebook.LongTermQuests()))
	for _, template := range rulebook.LongTermQuests() {
		quests = append(quests, t.instantiate(template, template.MinTarget))
	}
	p.LongTermQuests = quests
	return quests
}

// UpdateProgress advances every active matching instance by amount and
// returns the instances that completed on this call. Completion is one-way;
// instances already completed never fire again. The player's lifetime
// quests-completed counter advances by the number returned.
//
// Reward payout is deliberately separate: the caller reports the completed
// list, then invokes GrantReward once per instance.
func (t *Tracker) UpdateProgress(p *entities.Player, typeTag string, amount int) []*entities.QuestInstance {
	// make sure current-period instances exist before matching
	t.DailyQuests(p)
	t.WeeklyQuests(p)
	t.LongTermQuests(p)

	now := t.timeProvider.Now()
	var completed []*entities.QuestInstance
	for _, q := range p.ActiveQuests(DailyKey(now), WeeklyKey(now)) {
		if q.Type != typeTag {
			continue
		}
		if q.Advance(amount) {
			completed = append(completed, q)
		}
	}

	p.Counters.QuestsCompleted += len(completed)
	return completed
}

// GrantReward pays out a completed quest exactly once. Repeat calls for the
// same instance are no-ops.
func (t *Tracker) GrantReward(ctx context.Context, p *entities.Player, q *entities.QuestInstance) error {
	if !q.Completed || q.RewardClaimed {
		return nil
	}
	q.RewardClaimed = true

	if q.Reward.Exp > 0 {
		if _, err := t.engine.AddExperience(ctx, p, q.Reward.Exp); err != nil {
			return err
		}
	}
	if q.Reward.Gold > 0 {
		if _, err := t.engine.AddGold(ctx, p, q.Reward.Gold); err != nil {
			return err
		}
	}
	if q.Reward.ItemID != "" && t.factory != nil {
		item, err := t.factory.CreateItem(q.Reward.ItemID)
		if err != nil {
			return err
		}
		t.factory.AddToInventory(p, item)
	}
	return nil
}

// sample draws count distinct templates from the pool and instantiates
// them scaled to the player's level.
func (t *Tracker) sample(p *entities.Player, pool []*rulebook.QuestTemplate, count int) []*entities.QuestInstance {
	indexes := rng.SampleIndexes(t.roller, len(pool), count)
	quests := make([]*entities.QuestInstance, 0, len(indexes))
	for _, i := range indexes {
		template := pool[i]
		quests = append(quests, t.instantiate(template, template.TargetForLevel(p.ClassLevel)))
	}
	return quests
}

func (t *Tracker) instantiate(template *rulebook.QuestTemplate, target int) *entities.QuestInstance {
	return &entities.QuestInstance{
		ID:         t.uuidGen.New(),
		TemplateID: template.ID,
		Name:       template.Name,
		Kind:       template.Kind,
		Type:       template.Type,
		Target:     target,
		Reward:     template.RewardFor(target),
	}
}
