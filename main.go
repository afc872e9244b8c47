package main

import (
	"log"
	"net/http"
	"time"

	"github.com/stakeroom/lobby-backend/config"
	"github.com/stakeroom/lobby-backend/controllers"
	"github.com/stakeroom/lobby-backend/routes"
	"github.com/stakeroom/lobby-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter initializes Gin routes and middleware
func setupRouter() *gin.Engine {
	r := gin.Default()

	// Middleware
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Setup REST routes
	routes.SetupRoutes(r)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// WebSocket lobby event stream
	r.GET("/ws/lobbies/:id", controllers.LobbyEvents)

	return r
}

func main() {
	// Load env variables and fixed lobby constants
	config.Load()

	// Connect to database
	db := config.SetupDatabase()

	// Initialize the in-memory lobby ledger with its escrow and sinks
	services.InitLedgerService(db)

	// Setup Gin router
	router := setupRouter()

	log.Printf("🚀 Lobby backend starting on port %s", config.C.Port)
	if err := router.Run(":" + config.C.Port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
