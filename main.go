package main

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/coffee-store/config"
	"github.com/yeremiapane/coffee-store/database"
	"github.com/yeremiapane/coffee-store/router"
	"github.com/yeremiapane/coffee-store/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}

	utils.InitLogger(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}

	if cfg.SeedAddOns {
		if err := database.SeedAddOns(db); err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed add-ons: %v", err)
		}
	}

	r, err := router.SetupRouter(db, cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to set up router: %v", err)
	}

	utils.InfoLogger.Printf("Listening on port %s (db=%s)", cfg.Port, cfg.DBDriver)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}
