package main

import (
	"context"
	"log"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/router"
	"avatar-widget-backend/internal/cache"
	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/env"
	"avatar-widget-backend/internal/queue"
	conversationservice "avatar-widget-backend/internal/service/conversation"
	settingsservice "avatar-widget-backend/internal/service/settings"
	"avatar-widget-backend/internal/session"
	"avatar-widget-backend/internal/tavus"
	"avatar-widget-backend/internal/websocket"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

// bridgeFactory hands out call handles whose media path lives in the
// browser. The server side only tracks lifecycle; the SDK shim reports the
// real join/track/left/error events back over the websocket.
type bridgeFactory struct{}

type bridgeCall struct{}

func (bridgeFactory) NewCall(sessionID string) (session.Call, error) { return bridgeCall{}, nil }

func (bridgeCall) Join(ctx context.Context, url string) error { return nil }
func (bridgeCall) Leave(ctx context.Context) error            { return nil }
func (bridgeCall) Destroy()                                   {}
func (bridgeCall) SetLocalAudio(on bool) error                { return nil }

func main() {
	godotenv.Load()
	env.MustCheck()

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     env.Get(env.WidgetRedisURL),
		Password: env.Get(env.WidgetRedisPass),
		DB:       0,
	})

	settings := settingsservice.New(db)
	conversations := conversationservice.New(
		settings,
		tavus.NewClient(tavus.Config{BaseURL: env.Get(env.TavusAPIBase)}),
		cache.NewRedisStore(redisClient),
	)

	sessions := session.NewManager(conversations, bridgeFactory{}, session.NewRedisPublisher(redisClient))

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub, &websocket.SessionSink{Sessions: sessions})

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		sessions,
		router.UtilsRoutes("/api/ws/v1"),
		router.SessionRoutes("/api/ws/v1"),
	)

	server.Run()
}
