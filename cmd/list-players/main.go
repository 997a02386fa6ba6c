// Admin tool: dumps every persisted player with level and gold.
package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/fablebound/rpg-bot/internal/repositories/players"
)

func main() {
	ctx := context.Background()

	// Set up Redis
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

	// Test connection
	if _, pingErr := client.Ping(ctx).Result(); pingErr != nil {
		log.Fatalf("Failed to connect to Redis: %v", pingErr)
	}

	repo := players.NewRedisRepository(&players.RedisRepoConfig{Client: client})

	all, err := repo.ListAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list players: %v", err)
	}

	fmt.Printf("Found %d players:\n", len(all))
	for _, p := range all {
		fmt.Printf("  %s: level %d %s, %d gold, %d achievements\n",
			p.ID, p.ClassLevel, p.ClassName, p.Gold, len(p.Achievements))
	}
}
