package main

import (
	"log"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/router"
	"avatar-widget-backend/internal/cache"
	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/env"
	"avatar-widget-backend/internal/nonce"
	"avatar-widget-backend/internal/queue"
	"avatar-widget-backend/internal/tavus"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
)

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

	deps := router.WidgetDeps{
		Client: tavus.NewClient(tavus.Config{BaseURL: env.Get(env.TavusAPIBase)}),
		Cache:  cache.NewRedisStore(redisClient),
		Nonces: nonce.New([]byte(env.MustGet(env.NonceSecretKey)), nonce.DefaultTTL, nil),
	}

	server := api.NewAPIServer(
		":81",
		queueManager,
		db,
		nil,
		nil,
		router.UtilsRoutes("/api/widget/v1"),
		router.WidgetRoutes("/api/widget/v1", deps),
	)

	server.Run()
}
