package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/lbs-school/receipts-api/internal/application/events"
	"github.com/lbs-school/receipts-api/internal/application/service"
	"github.com/lbs-school/receipts-api/internal/config"
	"github.com/lbs-school/receipts-api/internal/infrastructure/database"
	"github.com/lbs-school/receipts-api/internal/infrastructure/repository"
	"github.com/lbs-school/receipts-api/internal/presentation/http/handler"
	"github.com/lbs-school/receipts-api/internal/presentation/http/routes"
	"github.com/lbs-school/receipts-api/pkg/oauth"
	"github.com/lbs-school/receipts-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the initial staff account when configured
	if err := database.SeedAdminUser(db); err != nil {
		log.Printf("Warning: Failed to seed admin user: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:     cfg.OAuth.GoogleClientID,
		ClientSecret: cfg.OAuth.GoogleClientSecret,
		RedirectURL:  cfg.OAuth.GoogleRedirectURL,
	})

	// Owner-scoped change notifications for history/stats views
	broker := events.NewBroker()

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager, googleOAuthService)
	receiptService := service.NewReceiptService(receiptRepo, broker, service.SchoolInfo{
		Name:          cfg.School.Name,
		Address:       cfg.School.Address,
		Phone:         cfg.School.Phone,
		Session:       cfg.School.Session,
		ReceiptPrefix: cfg.School.ReceiptPrefix,
	})

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:    handler.NewAuthHandler(authService, cfg.OAuth.FrontendSuccessURL, cfg.OAuth.FrontendErrorURL),
		Receipt: handler.NewReceiptHandler(receiptService, broker),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}
