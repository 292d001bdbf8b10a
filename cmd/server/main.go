package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	httpapi "projecthub-backend/internal/api/http"
	"projecthub-backend/internal/config"
	"projecthub-backend/internal/logger"
	"projecthub-backend/internal/repository/postgres"
	"projecthub-backend/internal/security"
	"projecthub-backend/internal/service"

	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting ProjectHub backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
	inviteTokenGen := security.NewInviteTokenGenerator()
	idGen := security.NewIDGenerator()

	// Initialize Email Service
	emailSvc := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, idGen)
	projectSvc := service.NewProjectService(store.ProjectRepository, idGen)
	membershipSvc := service.NewMembershipService(store.ProjectRepository)
	inviteSvc := service.NewInvitationService(
		store.InvitationRepository,
		store.ProjectRepository,
		store.UserRepository,
		membershipSvc,
		emailSvc,
		inviteTokenGen,
		idGen,
		cfg.Frontend.BaseURL,
	)
	taskSvc := service.NewTaskService(store.TaskRepository, store.ProjectRepository, idGen)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(authSvc)
	projectHandler := httpapi.NewProjectHandler(projectSvc, membershipSvc)
	invitationHandler := httpapi.NewInvitationHandler(inviteSvc)
	taskHandler := httpapi.NewTaskHandler(taskSvc)

	router := httpapi.NewRouter(tokenManager, authHandler, projectHandler, invitationHandler, taskHandler)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
