package ws

import (
	"context"
	"encoding/json"
	"log"

	"github.com/playmatatu/spinwheel/internal/game"
	wheelredis "github.com/playmatatu/spinwheel/internal/redis"
	"github.com/redis/go-redis/v9"
)

var rdbClient *redis.Client

func SetRedisClient(r *redis.Client) {
	rdbClient = r
}

// StartEventSubscriber rebroadcasts results published by other instances to
// the local watchers of the session.
func StartEventSubscriber(ctx context.Context) {
	if rdbClient == nil {
		log.Println("[WS] Redis client not set; event subscriber not started")
		return
	}

	pubsub := rdbClient.Subscribe(ctx, wheelredis.EventsChannel)
	ch := pubsub.Channel()
	go func() {
		defer pubsub.Close()
		log.Printf("[WS] %s subscriber started", wheelredis.EventsChannel)
		for msg := range ch {
			handleEvent(SessionHub, msg.Payload)
		}
	}()
}

// handleEvent decodes one published event and forwards it to hub.
func handleEvent(hub *Hub, payload string) {
	var event game.Event
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		log.Printf("[WS] invalid event payload: %v", err)
		return
	}

	if game.Manager != nil && event.Origin == game.Manager.InstanceID() {
		return
	}

	switch event.Type {
	case "result":
		if event.Result == nil {
			log.Printf("[WS] result event without result for session %s", event.Token)
			return
		}
		if hub.RoomSize(event.Token) == 0 {
			return
		}
		hub.Result(event.Token, event.Result)
	default:
		log.Printf("[WS] unknown event type: %s", event.Type)
	}
}
