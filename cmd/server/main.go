package main

import (
	"net/http"
	"os"

	"github.com/RaidenNguyen/HanziLaoshi/internal/api"
	"github.com/RaidenNguyen/HanziLaoshi/internal/config"
	"github.com/RaidenNguyen/HanziLaoshi/internal/database"
	"github.com/RaidenNguyen/HanziLaoshi/internal/logger"
	"github.com/RaidenNguyen/HanziLaoshi/internal/middleware"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}

	// Connect to PostgreSQL
	db, err := database.ConnectPostgres(cfg)
	if err != nil {
		logger.Error("Database connection failed: %v", err)
		os.Exit(1)
	}
	defer db.Close()

	// Apply pending migrations
	if err := database.RunMigrations(); err != nil {
		logger.Error("Migrations failed: %v", err)
		os.Exit(1)
	}

	// Initialize routes
	router := api.SetupRouter()

	// Wrap router with CORS middleware
	handler := middleware.CORSMiddleware(router)

	// Start server
	logger.Success("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("Server failed: %v", err)
		os.Exit(1)
	}
}
