package main

import (
	"log"

	"avatar-widget-backend/internal/api"
	"avatar-widget-backend/internal/api/router"
	"avatar-widget-backend/internal/database"
	"avatar-widget-backend/internal/env"
	"avatar-widget-backend/internal/queue"

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

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		nil,
		router.UtilsRoutes("/api/admin/v1"),
		router.AuthRoutes("/api/admin/v1"),
		router.SettingsRoutes("/api/admin/v1"),
	)

	server.Run()
}
