// Admin tool: starts or ends a global event modifier.
//
//	run-event start double_exp [duration]
//	run-event end <event-id>
//	run-event list
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	eventsRepo "github.com/fablebound/rpg-bot/internal/repositories/events"
	"github.com/fablebound/rpg-bot/internal/repositories/players"
	"github.com/fablebound/rpg-bot/internal/services/event"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: run-event start|end|list [args]")
	}

	ctx := context.Background()

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("Failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opts)
	defer client.Close()

	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	registry := event.NewRegistry(&event.RegistryConfig{
		Repository:       eventsRepo.NewRedisRepository(&eventsRepo.RedisRepoConfig{Client: client}),
		PlayerRepository: players.NewRedisRepository(&players.RedisRepoConfig{Client: client}),
	})

	switch os.Args[1] {
	case "start":
		if len(os.Args) < 3 {
			log.Fatal("usage: run-event start <definition-id> [duration]")
		}
		var duration time.Duration
		if len(os.Args) > 3 {
			duration, err = time.ParseDuration(os.Args[3])
			if err != nil {
				log.Fatalf("Bad duration %q: %v", os.Args[3], err)
			}
		}
		started, err := registry.StartEvent(ctx, os.Args[2], duration)
		if err != nil {
			log.Fatalf("Failed to start event: %v", err)
		}
		fmt.Printf("Started %s (%s) until %s\n", started.Name, started.ID, started.EndsAt.Format(time.RFC3339))
		if started.BossName != "" {
			fmt.Printf("World boss: %s (level %d)\n", started.BossName, started.BossLevel)
		}

	case "end":
		if len(os.Args) < 3 {
			log.Fatal("usage: run-event end <event-id>")
		}
		if err := registry.EndEvent(ctx, os.Args[2]); err != nil {
			log.Fatalf("Failed to end event: %v", err)
		}
		fmt.Println("Event ended")

	case "list":
		active, err := registry.ActiveEvents(ctx)
		if err != nil {
			log.Fatalf("Failed to list events: %v", err)
		}
		fmt.Printf("Found %d active events:\n", len(active))
		for _, e := range active {
			fmt.Printf("  %s: %s (%s ×%.1f) ends %s\n",
				e.ID, e.Name, e.Effect, e.Value, e.EndsAt.Format(time.RFC3339))
		}

	default:
		log.Fatalf("unknown subcommand %q", os.Args[1])
	}
}
