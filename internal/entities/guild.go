package entities

import "time"

// Guild name length bounds enforced on create and rename
const (
	GuildNameMinLen = 3
	GuildNameMaxLen = 32
)

// Guild is a shared aggregate. The leader is always present in MemberIDs and
// never in OfficerIDs. All mutation goes through the guild service, which
// serializes writers per guild.
type Guild struct {
	ID            string                    `json:"id"`
	Name          string                    `json:"name"`
	LeaderID      string                    `json:"leader_id"`
	OfficerIDs    []string                  `json:"officer_ids"`
	MemberIDs     []string                  `json:"member_ids"`
	Level         int                       `json:"level"`
	Experience    int                       `json:"experience"`
	Bank          int                       `json:"bank"`
	Upgrades      map[string]int            `json:"upgrades"`
	Contributions map[string]map[string]int `json:"contributions"` // date -> member id -> points
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

// NewGuild creates a level 1 guild with the leader as sole member
func NewGuild(id, name, leaderID string) *Guild {
	return &Guild{
		ID:            id,
		Name:          name,
		LeaderID:      leaderID,
		OfficerIDs:    []string{},
		MemberIDs:     []string{leaderID},
		Level:         1,
		Upgrades:      make(map[string]int),
		Contributions: make(map[string]map[string]int),
	}
}

// IsMember reports whether the player belongs to the guild
func (g *Guild) IsMember(playerID string) bool {
	for _, id := range g.MemberIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// IsOfficer reports whether the player holds the officer role
func (g *Guild) IsOfficer(playerID string) bool {
	for _, id := range g.OfficerIDs {
		if id == playerID {
			return true
		}
	}
	return false
}

// IsLeader reports whether the player leads the guild
func (g *Guild) IsLeader(playerID string) bool {
	return g.LeaderID == playerID
}

// IsOfficerOrLeader reports whether the player holds either elevated role
func (g *Guild) IsOfficerOrLeader(playerID string) bool {
	return g.IsLeader(playerID) || g.IsOfficer(playerID)
}

// MaxMembers derives capacity from level plus any upgrade bonus seats
func (g *Guild) MaxMembers(bonusSeats int) int {
	return 20 + 5*(g.Level-1) + bonusSeats
}

// AddMember appends the player; the caller checks capacity first
func (g *Guild) AddMember(playerID string) {
	if !g.IsMember(playerID) {
		g.MemberIDs = append(g.MemberIDs, playerID)
	}
}

// RemoveMember drops the player from member and officer lists
func (g *Guild) RemoveMember(playerID string) {
	g.MemberIDs = removeID(g.MemberIDs, playerID)
	g.OfficerIDs = removeID(g.OfficerIDs, playerID)
}

// CreditContribution records contribution points for the member on a date
func (g *Guild) CreditContribution(date, playerID string, points int) {
	if g.Contributions == nil {
		g.Contributions = make(map[string]map[string]int)
	}
	day := g.Contributions[date]
	if day == nil {
		day = make(map[string]int)
		g.Contributions[date] = day
	}
	day[playerID] += points
}

func removeID(ids []string, target string) []string {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}
