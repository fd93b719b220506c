package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/jovinkassi/vaultask/internal/config"
	"github.com/jovinkassi/vaultask/internal/database"
	"github.com/jovinkassi/vaultask/internal/handlers"
	"github.com/jovinkassi/vaultask/internal/middleware"
	"github.com/jovinkassi/vaultask/internal/repository"
	"github.com/jovinkassi/vaultask/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Wire repositories, services and handlers
	userRepo := repository.NewUserRepository(db)
	tokenService := services.NewTokenService(cfg.JWTSecret)
	authService := services.NewAuthService(userRepo, tokenService)
	taskService := services.NewTaskService(userRepo)
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Vaultask API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/email", authHandler.EmailLogin)
			auth.POST("/web3", authHandler.WalletLogin)
			auth.GET("/me", middleware.RequireAuth(tokenService), authHandler.GetCurrentUser)
		}

		// Task routes, scoped by user id
		tasks := api.Group("/users/:user_id/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.AddTask)
			tasks.PUT("/:task_id", taskHandler.UpdateTask)
			tasks.DELETE("/:task_id", taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
