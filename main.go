package main

import (
	"log"

	"github.com/sportlink/refnet/config"
	_ "github.com/sportlink/refnet/docs"
	"github.com/sportlink/refnet/internal/friendship"
	"github.com/sportlink/refnet/internal/notification"
	"github.com/sportlink/refnet/internal/profile"
	"github.com/sportlink/refnet/internal/reference"
	"github.com/sportlink/refnet/pkg/logger"
	"github.com/sportlink/refnet/routes"
)

// @title RefNet REST API
// @version 1.0
// @description Trusted reference network for sport member profiles.
// @host localhost:8088
// @BasePath /api
func main() {
	logger.Init()
	defer logger.Sync()

	if err := config.Initialize(); err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	cfg := config.GetConfig()

	err := config.DB.AutoMigrate(
		&profile.Profile{},
		&friendship.Edge{},
		&notification.Notification{},
		&reference.Relationship{},
	)
	if err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	// AutoMigrate cannot express partial unique indexes, so the pair
	// uniqueness guards are applied separately.
	if err := config.DB.Exec(reference.ActivePairIndexSQL).Error; err != nil {
		log.Fatalf("Failed to create active pair index: %v", err)
	}
	if err := config.DB.Exec(friendship.ActiveEdgeIndexSQL).Error; err != nil {
		log.Fatalf("Failed to create active edge index: %v", err)
	}
	log.Println("AutoMigrate successful")

	r := routes.SetupRoutes()

	log.Printf("Starting server on port %s in %s mode\n", cfg.App.Port, cfg.App.Env)
	if err := r.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
