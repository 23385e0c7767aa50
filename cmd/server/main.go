package main

import (
	"fmt"
	"log"

	_ "github.com/beerich/beerich-api/docs"
	"github.com/beerich/beerich-api/internal/config"
	"github.com/beerich/beerich-api/internal/database"
	"github.com/beerich/beerich-api/internal/handler"
	"github.com/beerich/beerich-api/internal/repository"
	"github.com/beerich/beerich-api/internal/server"
	"github.com/beerich/beerich-api/internal/service"
	"github.com/beerich/beerich-api/internal/storage"
)

// @title BeeRich API
// @version 1.0
// @description Expense and income tracking backend
// @BasePath /

func main() {
	// Load configuration
	log.Println("Loading configuration...")
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to the database
	log.Println("Connecting to database...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize attachment storage
	attachments, err := newAttachmentStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize attachment storage: %v", err)
	}

	// Initialize repositories
	log.Println("Initializing repositories...")
	invoiceRepo := repository.NewPostgresInvoiceRepository(db.GetPool())
	userRepo := repository.NewPostgresUserRepository(db.GetPool())

	// Create services
	invoiceService := service.NewInvoiceService(invoiceRepo, attachments, cfg.CacheSize, cfg.CacheTTL)
	authService := service.NewAuthService(service.AuthServiceConfig{
		UserRepo:          userRepo,
		JWTSecret:         cfg.JWTSecret,
		AccessExpiration:  cfg.AccessExpiration,
		RefreshExpiration: cfg.RefreshExpiration,
	})

	// Create handlers
	invoiceHandler := handler.NewInvoiceHandler(invoiceService)
	authHandler := handler.NewAuthHandler(authService)

	// Create and configure server
	log.Println("Configuring server...")
	appServer := server.NewServer(cfg)
	appServer.RegisterRoutes(invoiceHandler, authHandler, authService)

	// Start server (blocking call)
	log.Printf("Starting server on port %d...", cfg.Port)
	if err := appServer.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}

	fmt.Println("Server shutdown complete")
}

// newAttachmentStore selects the attachment storage backend
func newAttachmentStore(cfg *config.Config) (storage.AttachmentStore, error) {
	if cfg.StorageBackend == "s3" {
		return storage.NewS3Store(&storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			AccessKeySecret: cfg.S3AccessSecret,
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
		})
	}
	return storage.NewLocalStore(cfg.AttachmentDir)
}
