package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/lucasmrt/planify-api/internal/auth"
	"github.com/lucasmrt/planify-api/internal/config"
	"github.com/lucasmrt/planify-api/internal/crypt"
	"github.com/lucasmrt/planify-api/internal/database"
	"github.com/lucasmrt/planify-api/internal/handlers"
	"github.com/lucasmrt/planify-api/internal/middleware"
	"github.com/lucasmrt/planify-api/internal/repository"
	"github.com/lucasmrt/planify-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Initialize field encryption before anything touches the database
	if err := crypt.Init(cfg.EncryptionKey, cfg.LookupHashKey); err != nil {
		log.Fatalf("Failed to initialize encryption: %v", err)
	}

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry, "planify-api")

	// Wire repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	companyRepo := repository.NewCompanyRepository(database.GetDB())
	planningRepo := repository.NewPlanningRepository(database.GetDB())
	eventRepo := repository.NewEventRepository(database.GetDB())
	notificationRepo := repository.NewNotificationRepository(database.GetDB())

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, companyRepo)
	companyService := services.NewCompanyService(companyRepo, userRepo)
	planningService := services.NewPlanningService(planningRepo, companyRepo)
	eventService := services.NewEventService(eventRepo, planningRepo, companyRepo, userRepo, notificationRepo)
	notificationService := services.NewNotificationService(notificationRepo, userRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	planningHandler := handlers.NewPlanningHandler(planningService)
	eventHandler := handlers.NewEventHandler(eventService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Planify API is running",
		})
	})

	// Auth routes (public)
	r.POST("/login", authHandler.Login)

	// Protected routes
	api := r.Group("/")
	api.Use(middleware.RequireAuth(tokens))
	{
		api.GET("/users", userHandler.ListUsers)
		api.POST("/users", userHandler.CreateUser)
		api.GET("/users/search", userHandler.SearchUser)
		api.PATCH("/users/:id", userHandler.UpdateUser)
		api.DELETE("/users/:id", userHandler.DeleteUser)

		api.GET("/companies", companyHandler.ListCompanies)
		api.POST("/companies", companyHandler.CreateCompany)
		api.GET("/companies/:id", companyHandler.GetCompany)
		api.PATCH("/companies/:id", companyHandler.UpdateCompany)
		api.DELETE("/companies/:id", companyHandler.DeleteCompany)
		api.POST("/company-add-user", companyHandler.AddUser)
		api.DELETE("/company-remove-user/:userId", companyHandler.RemoveUser)

		api.GET("/plannings", planningHandler.ListPlannings)
		api.POST("/plannings", planningHandler.CreatePlanning)
		api.PATCH("/planning/:id", planningHandler.UpdatePlanning)
		api.DELETE("/planning/:id", planningHandler.DeletePlanning)

		api.GET("/events", eventHandler.ListEvents)
		api.POST("/events", eventHandler.CreateEvent)
		api.GET("/event/:id", eventHandler.GetEvent)
		api.PATCH("/event/:id", eventHandler.UpdateEvent)
		api.DELETE("/event/:id", eventHandler.DeleteEvent)
		api.POST("/event-add-user/:eventId", eventHandler.AddUser)
		api.POST("/event-remove-user/:eventId", eventHandler.RemoveUser)
		api.POST("/event-accept-invite/:eventId", eventHandler.AcceptInvite)

		api.GET("/notifications", notificationHandler.ListNotifications)
		api.POST("/notifications", notificationHandler.CreateNotification)
		api.POST("/notification/:id/read", notificationHandler.MarkRead)
		api.DELETE("/notification/:id", notificationHandler.DeleteNotification)
	}

	// Start server
	log.Printf("Server starting on %s", cfg.ListenAddr)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
