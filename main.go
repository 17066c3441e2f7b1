package main

import (
	"log"

	"termbingo/config"
	"termbingo/handlers"
	"termbingo/middleware"
	"termbingo/models"
	"termbingo/routes"
	"termbingo/services"
	"termbingo/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present, then configuration
	godotenv.Load()
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database models
	err = db.AutoMigrate(
		&models.Session{},
		&models.Player{},
		&models.Draw{},
		&models.Round{},
		&models.Claim{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis
	redisClient := config.InitRedis(cfg)

	// Initialize services
	st := store.NewGormStore(db)
	sessionService := services.NewSessionService(st, redisClient)
	roundService := services.NewRoundService(st, sessionService)
	claimService := services.NewClaimService(st, sessionService)

	// Initialize WebSocket hub
	hub := services.NewHub(sessionService)
	go hub.Run()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(sessionService, hub, cfg.PublicBaseURL)
	roundHandler := handlers.NewRoundHandler(roundService, hub)
	claimHandler := handlers.NewClaimHandler(claimService, hub)

	// Setup Gin router
	router := gin.Default()

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Setup routes
	routes.SetupRoutes(router, sessionHandler, roundHandler, claimHandler, hub, sessionService)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
