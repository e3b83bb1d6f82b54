package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	httpapi "pujcovna-backend/internal/api/http"
	"pujcovna-backend/internal/clock"
	"pujcovna-backend/internal/config"
	"pujcovna-backend/internal/logger"
	"pujcovna-backend/internal/repository/postgres"
	"pujcovna-backend/internal/service"
	"pujcovna-backend/internal/utils"
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
	logger.Info("Starting rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Seed the order-number counter from existing reservations
	orderNumbers := utils.NewOrderNumberGenerator()
	if err := service.SeedOrderNumbers(context.Background(), store.ReservationRepository, orderNumbers); err != nil {
		logger.Error("Failed to seed order numbers", "error", err)
		log.Fatalf("Failed to seed order numbers: %v", err)
	}

	// Initialize Email Service
	var emailSvc service.EmailService
	switch cfg.Email.Provider {
	case "sendgrid":
		logger.Info("Email provider configured", "provider", "sendgrid")
		emailSvc = service.NewSendGridEmailService(
			cfg.Email.SendGridKey,
			cfg.Email.From,
			cfg.Email.FromName,
			cfg.Email.OperatorEmail,
		)
	default:
		logger.Info("Email provider configured", "provider", "smtp", "host", cfg.Email.Host, "port", cfg.Email.Port)
		emailSvc = service.NewSMTPEmailService(
			cfg.Email.Host,
			cfg.Email.Port,
			cfg.Email.User,
			cfg.Email.Password,
			cfg.Email.From,
			cfg.Email.OperatorEmail,
		)
	}

	// Initialize Contract Generator
	contractGen := service.NewContractGenerator(service.LessorInfo{
		Name:        cfg.Invoice.LessorName,
		Address:     cfg.Invoice.LessorAddress,
		City:        cfg.Invoice.LessorCity,
		ICO:         cfg.Invoice.LessorICO,
		Phone:       cfg.Invoice.LessorPhone,
		Email:       cfg.Invoice.LessorEmail,
		BankAccount: cfg.Invoice.BankAccount,
	})

	// Initialize Services
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository)
	availabilitySvc := service.NewAvailabilityService(store.EquipmentRepository, store.ReservationItemRepository)
	reservationSvc := service.NewReservationService(
		store.ReservationRepository,
		store.ReservationItemRepository,
		store.EquipmentRepository,
		orderNumbers,
		contractGen,
		emailSvc,
		clock.NewSystem(),
	)

	// Initialize HTTP handlers
	authHandler := httpapi.NewAuthHandler(cfg.Server.SessionSecret, cfg.Server.AdminUser, cfg.Server.AdminPassHash)
	equipmentHandler := httpapi.NewEquipmentHandler(equipmentSvc, availabilitySvc)
	reservationHandler := httpapi.NewReservationHandler(reservationSvc)
	uploadHandler, err := httpapi.NewUploadHandler(cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize upload storage", "error", err)
		log.Fatalf("Failed to initialize upload storage: %v", err)
	}

	router := httpapi.NewRouter(authHandler, equipmentHandler, reservationHandler, uploadHandler, cfg.Storage.UploadDir)

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), router); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
