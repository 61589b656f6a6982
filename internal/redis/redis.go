package redis

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// EventsChannel carries spin results between server instances.
const EventsChannel = "wheel_events"

// LastResultKey is the key holding the JSON of a session's latest spin result.
func LastResultKey(token string) string {
	return "wheel:" + token + ":last"
}

// Connect establishes a connection to Redis. An empty URL disables caching
// and pub/sub and returns a nil client.
func Connect(redisURL string) (*redis.Client, error) {
	if redisURL == "" {
		log.Println("[REDIS] REDIS_URL not set; running without cache")
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return client, nil
}
