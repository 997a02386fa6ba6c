package entities

import "strings"

// QuestKind distinguishes how long a quest instance lives
type QuestKind string

const (
	QuestKindDaily    QuestKind = "daily"
	QuestKindWeekly   QuestKind = "weekly"
	QuestKindLongTerm QuestKind = "long_term"
)

// QuestReward describes what a completed quest pays out
type QuestReward struct {
	Exp    int    `json:"exp"`
	Gold   int    `json:"gold"`
	ItemID string `json:"item_id,omitempty"`
}

// QuestInstance is a concrete objective held by a player. Progress may
// overshoot the target internally; DisplayProgress clamps for rendering.
// Completed is monotonic: once true it never resets.
type QuestInstance struct {
	ID            string      `json:"id"`
	TemplateID    string      `json:"template_id"`
	Name          string      `json:"name"`
	Kind          QuestKind   `json:"kind"`
	Type          string      `json:"type"` // tag matched against action notifications
	Target        int         `json:"target"`
	Progress      int         `json:"progress"`
	Completed     bool        `json:"completed"`
	RewardClaimed bool        `json:"reward_claimed"`
	Reward        QuestReward `json:"reward"`
}

// Advance adds amount to progress and reports whether this call crossed the
// completion threshold. Already-completed instances never fire again.
func (q *QuestInstance) Advance(amount int) bool {
	if q.Completed {
		return false
	}
	q.Progress += amount
	if q.Progress >= q.Target {
		q.Completed = true
		return true
	}
	return false
}

// DisplayProgress returns progress clamped to the target
func (q *QuestInstance) DisplayProgress() int {
	if q.Progress > q.Target {
		return q.Target
	}
	return q.Progress
}

// ProgressPercent returns completion as a whole percentage capped at 100
func ProgressPercent(current, required int) int {
	if required <= 0 {
		return 100
	}
	pct := 100 * current / required
	if pct > 100 {
		return 100
	}
	return pct
}

// ProgressBarLength is the glyph count of a rendered progress bar
const ProgressBarLength = 10

// ProgressBar renders a fixed-length filled/empty bar for the UI layer
func ProgressBar(current, required int) string {
	filled := ProgressPercent(current, required) * ProgressBarLength / 100
	var b strings.Builder
	for i := 0; i < ProgressBarLength; i++ {
		if i < filled {
			b.WriteRune('█')
		} else {
			b.WriteRune('░')
		}
	}
	return b.String()
}
