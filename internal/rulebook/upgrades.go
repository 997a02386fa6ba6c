package rulebook

// GuildUpgrade is a purchasable guild shop entry. Buying one debits the
// guild bank, raises the upgrade level (capped at MaxLevel) and grants the
// guild a fixed amount of experience.
type GuildUpgrade struct {
	ID         string
	Name       string
	Cost       int
	MaxLevel   int
	ExpGrant   int
	BonusSeats int // extra member capacity per purchased level
}

var guildUpgrades = map[string]*GuildUpgrade{
	"expansion_permit": {
		ID: "expansion_permit", Name: "Guild Expansion Permit",
		Cost: 5000, MaxLevel: 10, ExpGrant: 1000, BonusSeats: 5,
	},
	"banner": {
		ID: "banner", Name: "Guild Banner",
		Cost: 2500, MaxLevel: 1, ExpGrant: 500,
	},
	"training_hall": {
		ID: "training_hall", Name: "Training Hall",
		Cost: 10000, MaxLevel: 5, ExpGrant: 2000,
	},
	"vault": {
		ID: "vault", Name: "Reinforced Vault",
		Cost: 7500, MaxLevel: 3, ExpGrant: 1500,
	},
	"war_room": {
		ID: "war_room", Name: "War Room",
		Cost: 20000, MaxLevel: 3, ExpGrant: 4000,
	},
}

// GetGuildUpgrade looks up an upgrade by id
func GetGuildUpgrade(id string) (*GuildUpgrade, bool) {
	u, ok := guildUpgrades[id]
	return u, ok
}

// GuildUpgrades returns every purchasable upgrade (unordered)
func GuildUpgrades() []*GuildUpgrade {
	out := make([]*GuildUpgrade, 0, len(guildUpgrades))
	for _, u := range guildUpgrades {
		out = append(out, u)
	}
	return out
}
