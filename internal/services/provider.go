package services

import (
	"github.com/fablebound/rpg-bot/internal/repositories/events"
	"github.com/fablebound/rpg-bot/internal/repositories/guilds"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	achievementService "github.com/fablebound/rpg-bot/internal/services/achievement"
	eventService "github.com/fablebound/rpg-bot/internal/services/event"
	gameService "github.com/fablebound/rpg-bot/internal/services/game"
	guildService "github.com/fablebound/rpg-bot/internal/services/guild"
	inventoryService "github.com/fablebound/rpg-bot/internal/services/inventory"
	progressionService "github.com/fablebound/rpg-bot/internal/services/progression"
	questService "github.com/fablebound/rpg-bot/internal/services/quest"
)

// Provider holds all service instances
type Provider struct {
	GameService        *gameService.Service
	GuildService       *guildService.Service
	EventRegistry      *eventService.Registry
	ProgressionEngine  *progressionService.Engine
	QuestTracker       *questService.Tracker
	AchievementService *achievementService.Evaluator
	InventoryService   *inventoryService.Service
}

// ProviderConfig holds configuration for creating services
type ProviderConfig struct {
	PlayerRepository players.Repository
	GuildRepository  guilds.Repository
	EventRepository  events.Repository
}

// NewProvider creates a new service provider with all services initialized
func NewProvider(cfg *ProviderConfig) *Provider {
	// Use in-memory repositories if none provided
	playerRepo := cfg.PlayerRepository
	if playerRepo == nil {
		playerRepo = players.NewInMemoryRepository()
	}

	guildRepo := cfg.GuildRepository
	if guildRepo == nil {
		guildRepo = guilds.NewInMemoryRepository()
	}

	eventRepo := cfg.EventRepository
	if eventRepo == nil {
		eventRepo = events.NewInMemoryRepository()
	}

	registry := eventService.NewRegistry(&eventService.RegistryConfig{
		Repository:       eventRepo,
		PlayerRepository: playerRepo,
	})

	engine := progressionService.NewEngine(&progressionService.EngineConfig{
		Modifiers: registry,
	})

	inv := inventoryService.NewService()

	tracker := questService.NewTracker(&questService.TrackerConfig{
		Engine:      engine,
		ItemFactory: inv,
	})

	evaluator := achievementService.NewEvaluator(&achievementService.EvaluatorConfig{
		Engine:          engine,
		ItemFactory:     inv,
		GuildRepository: guildRepo,
	})

	guildSvc := guildService.NewService(&guildService.ServiceConfig{
		Repository:   guildRepo,
		QuestTracker: tracker,
	})

	game := gameService.NewService(&gameService.ServiceConfig{
		PlayerRepository: playerRepo,
		Engine:           engine,
		QuestTracker:     tracker,
		Achievements:     evaluator,
		Inventory:        inv,
		Guilds:           guildSvc,
	})

	return &Provider{
		GameService:        game,
		GuildService:       guildSvc,
		EventRegistry:      registry,
		ProgressionEngine:  engine,
		QuestTracker:       tracker,
		AchievementService: evaluator,
		InventoryService:   inv,
	}
}
