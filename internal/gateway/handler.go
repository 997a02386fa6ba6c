// Package gateway is the thin Discord surface over the game services. It
// registers the slash commands, routes interactions to the orchestrator and
// renders plain-text replies. No game rule lives here.
package gateway

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/fablebound/rpg-bot/internal/entities"
	apperr "github.com/fablebound/rpg-bot/internal/errors"
	"github.com/fablebound/rpg-bot/internal/services"
	"github.com/fablebound/rpg-bot/internal/services/game"
	"github.com/fablebound/rpg-bot/internal/services/guild"
)

// Handler handles all Discord interactions
type Handler struct {
	provider *services.Provider
}

// HandlerConfig holds configuration for the Discord handler
type HandlerConfig struct {
	ServiceProvider *services.Provider
}

// NewHandler creates a new Discord handler
func NewHandler(cfg *HandlerConfig) *Handler {
	if cfg.ServiceProvider == nil {
		panic("service provider is required")
	}
	return &Handler{provider: cfg.ServiceProvider}
}

// RegisterCommands registers all slash commands with Discord
func (h *Handler) RegisterCommands(s *discordgo.Session, guildID string) error {
	commands := []*discordgo.ApplicationCommand{
		{
			Name:        "rpg",
			Description: "Adventure bot commands",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Name:        "profile",
					Description: "Show your character profile",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "quests",
					Description: "Show your active quests",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "battle",
					Description: "Fight a battle",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "train",
					Description: "Train to raise your energy capacity",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "advanced",
							Description: "Advanced training (costs more energy)",
							Required:    false,
						},
					},
				},
				{
					Name:        "daily",
					Description: "Claim your daily reward",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
				},
				{
					Name:        "allocate",
					Description: "Spend skill points on a stat",
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "stat",
							Description: "Stat to raise",
							Required:    true,
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "Power", Value: string(entities.StatPower)},
								{Name: "Defense", Value: string(entities.StatDefense)},
								{Name: "Speed", Value: string(entities.StatSpeed)},
								{Name: "HP", Value: string(entities.StatHP)},
							},
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "points",
							Description: "Points to spend",
							Required:    true,
						},
					},
				},
				{
					Name:        "guild",
					Description: "Guild commands",
					Type:        discordgo.ApplicationCommandOptionSubCommandGroup,
					Options: []*discordgo.ApplicationCommandOption{
						{
							Name:        "create",
							Description: "Found a new guild",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "name",
									Description: "Guild name",
									Required:    true,
								},
							},
						},
						{
							Name:        "join",
							Description: "Join an existing guild",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionString,
									Name:        "name",
									Description: "Guild name",
									Required:    true,
								},
							},
						},
						{
							Name:        "leave",
							Description: "Leave your guild",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
						{
							Name:        "contribute",
							Description: "Donate gold to your guild bank",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
							Options: []*discordgo.ApplicationCommandOption{
								{
									Type:        discordgo.ApplicationCommandOptionInteger,
									Name:        "amount",
									Description: "Gold to donate",
									Required:    true,
								},
							},
						},
						{
							Name:        "info",
							Description: "Show your guild's status",
							Type:        discordgo.ApplicationCommandOptionSubCommand,
						},
					},
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(s.State.User.ID, guildID, cmd); err != nil {
			return fmt.Errorf("failed to register command %s: %w", cmd.Name, err)
		}
	}
	return nil
}

// HandleInteraction routes an interaction to the right command handler
func (h *Handler) HandleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}

	data := i.ApplicationCommandData()
	if data.Name != "rpg" || len(data.Options) == 0 {
		return
	}

	ctx := context.Background()
	playerID := interactionUserID(i)
	sub := data.Options[0]

	var (
		reply string
		err   error
	)
	switch sub.Name {
	case "profile":
		reply, err = h.handleProfile(ctx, playerID)
	case "quests":
		reply, err = h.handleQuests(ctx, playerID)
	case "battle":
		reply, err = h.handleBattle(ctx, playerID)
	case "train":
		reply, err = h.handleTrain(ctx, playerID, sub.Options)
	case "daily":
		reply, err = h.handleDaily(ctx, playerID)
	case "allocate":
		reply, err = h.handleAllocate(ctx, playerID, sub.Options)
	case "guild":
		reply, err = h.handleGuild(ctx, playerID, sub)
	default:
		return
	}

	if err != nil {
		if apperr.IsValidation(err) || apperr.IsNotFound(err) {
			reply = apperr.Reason(err)
		} else {
			log.Printf("command %s failed for %s: %v", sub.Name, playerID, err)
			reply = "Something went wrong, try again later."
		}
	}

	respondErr := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: reply,
		},
	})
	if respondErr != nil {
		log.Printf("failed to respond to interaction: %v", respondErr)
	}
}

func (h *Handler) handleProfile(ctx context.Context, playerID string) (string, error) {
	profile, err := h.provider.GameService.GetProfile(ctx, playerID)
	if err != nil {
		return "", err
	}

	p := profile.Player
	var b strings.Builder
	fmt.Fprintf(&b, "Level %d %s — %d/%d exp\n", p.ClassLevel, p.ClassName, p.ClassExp, profile.RequiredExp)
	fmt.Fprintf(&b, "Gold: %d | Energy: %d/%d | Skill points: %d\n", p.Gold, p.Energy, p.MaxEnergy, p.SkillPoints)
	fmt.Fprintf(&b, "Power %d / Defense %d / Speed %d / HP %d\n",
		profile.EffectiveStats[entities.StatPower],
		profile.EffectiveStats[entities.StatDefense],
		profile.EffectiveStats[entities.StatSpeed],
		profile.EffectiveStats[entities.StatHP])
	fmt.Fprintf(&b, "Achievements: %d (%d points available)", len(p.Achievements), profile.AvailablePoints)
	return b.String(), nil
}

func (h *Handler) handleQuests(ctx context.Context, playerID string) (string, error) {
	profile, err := h.provider.GameService.GetProfile(ctx, playerID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("**Your quests**\n")
	for _, q := range profile.ActiveQuests {
		status := entities.ProgressBar(q.Progress, q.Target)
		if q.Completed {
			status = "done"
		}
		fmt.Fprintf(&b, "[%s] %s — %d/%d %s\n", q.Kind, q.Name, q.DisplayProgress(), q.Target, status)
	}
	return b.String(), nil
}

func (h *Handler) handleBattle(ctx context.Context, playerID string) (string, error) {
	// reward scaling belongs to the battle surface, not the core; this demo
	// surface uses a flat level-scaled award
	profile, err := h.provider.GameService.GetProfile(ctx, playerID)
	if err != nil {
		return "", err
	}
	level := profile.Player.ClassLevel

	result, err := h.provider.GameService.RecordBattleWin(ctx, playerID, game.BattleOutcome{
		Exp:  40 + 10*level,
		Gold: 15 + 5*level,
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Victory! +%d exp, +%d gold", result.Experience.AdjustedAmount, result.Gold.AdjustedAmount)
	if result.Experience.EventName != "" {
		fmt.Fprintf(&b, " (%s)", result.Experience.EventName)
	}
	appendCascade(&b, result)
	return b.String(), nil
}

func (h *Handler) handleTrain(ctx context.Context, playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	advanced := false
	for _, opt := range opts {
		if opt.Name == "advanced" {
			advanced = opt.BoolValue()
		}
	}

	result, err := h.provider.GameService.CompleteTraining(ctx, playerID, advanced)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Training complete! Max energy +%d (now %d)", result.CapacityGained, result.Player.MaxEnergy)
	if result.EventName != "" {
		fmt.Fprintf(&b, " (%s)", result.EventName)
	}
	appendCascade(&b, &result.ActionResult)
	return b.String(), nil
}

func (h *Handler) handleDaily(ctx context.Context, playerID string) (string, error) {
	result, err := h.provider.GameService.ClaimDaily(ctx, playerID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Daily reward claimed: +%d gold, +%d energy", result.Gold.AdjustedAmount, game.DailyClaimEnergy)
	appendCascade(&b, result)
	return b.String(), nil
}

func (h *Handler) handleAllocate(ctx context.Context, playerID string, opts []*discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	var (
		stat   string
		points int
	)
	for _, opt := range opts {
		switch opt.Name {
		case "stat":
			stat = opt.StringValue()
		case "points":
			points = int(opt.IntValue())
		}
	}

	p, err := h.provider.GameService.AllocateStat(ctx, playerID, entities.Stat(stat), points)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Allocated %d points to %s (%d skill points left)", points, stat, p.SkillPoints), nil
}

func (h *Handler) handleGuild(ctx context.Context, playerID string, group *discordgo.ApplicationCommandInteractionDataOption) (string, error) {
	if len(group.Options) == 0 {
		return "", apperr.InvalidArgument("missing guild subcommand")
	}
	sub := group.Options[0]

	switch sub.Name {
	case "create":
		g, err := h.provider.GameService.CreateGuild(ctx, playerID, stringOption(sub.Options, "name"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Founded guild **%s**!", g.Name), nil

	case "join":
		g, err := h.provider.GameService.JoinGuild(ctx, playerID, stringOption(sub.Options, "name"))
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Welcome to **%s**!", g.Name), nil

	case "leave":
		if err := h.provider.GameService.LeaveGuild(ctx, playerID); err != nil {
			return "", err
		}
		return "You left your guild.", nil

	case "contribute":
		amount := intOption(sub.Options, "amount")
		result, err := h.provider.GameService.ContributeToGuild(ctx, playerID, amount)
		if err != nil {
			return "", err
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Contributed %d gold to the guild bank", amount)
		appendCascade(&b, result)
		return b.String(), nil

	case "info":
		p, err := h.provider.GameService.GetProfile(ctx, playerID)
		if err != nil {
			return "", err
		}
		if p.Player.GuildID == "" {
			return "You are not in a guild.", nil
		}
		g, err := h.provider.GuildService.Get(ctx, p.Player.GuildID)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("**%s** — level %d (%d/%d exp)\nBank: %d gold | Members: %d",
			g.Name, g.Level, g.Experience, guild.RequiredExp(g.Level), g.Bank, len(g.MemberIDs)), nil
	}

	return "", apperr.InvalidArgumentf("unknown guild subcommand '%s'", sub.Name)
}

// appendCascade renders completed quests and new achievements onto a reply
func appendCascade(b *strings.Builder, result *game.ActionResult) {
	if result.Experience != nil && result.Experience.LeveledUp {
		fmt.Fprintf(b, "\nLevel up! You are now level %d.", result.Experience.NewLevel)
	}
	for _, q := range result.CompletedQuests {
		fmt.Fprintf(b, "\nQuest complete: %s (+%d exp, +%d gold)", q.Name, q.Reward.Exp, q.Reward.Gold)
	}
	for _, a := range result.NewAchievements {
		fmt.Fprintf(b, "\nAchievement unlocked: %s (+%d points)", a.Name, a.Points)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

func stringOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range opts {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func intOption(opts []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range opts {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}
