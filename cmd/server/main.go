package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"rentbridge-backend/internal/api"
	"rentbridge-backend/internal/config"
	"rentbridge-backend/internal/logger"
	"rentbridge-backend/internal/repository/postgres"
	"rentbridge-backend/internal/security"
	"rentbridge-backend/internal/service"
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
	logger.Info("Starting RentBridge Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize Services
	emailService := service.NewEmailService(cfg.Email.APIKey, cfg.Email.FromEmail, cfg.Email.FromName)
	authService := service.NewAuthService(store.UserRepository, tokenManager)
	productService := service.NewProductService(store.ProductRepository, store.UserRepository)
	quotationService := service.NewQuotationService(
		store.QuotationRepository,
		store.UserRepository,
		store.ProductRepository,
		cfg.Billing.TaxRatePercent,
		cfg.Billing.DepositDays,
	)
	invoiceService := service.NewInvoiceService(
		store.InvoiceRepository,
		store.PaymentRepository,
		cfg.Billing.InvoiceDueDays,
	)
	orderService := service.NewOrderService(
		store.OrderRepository,
		store.UserRepository,
		store.ProductRepository,
		store.QuotationRepository,
		invoiceService,
	)
	pickupService := service.NewPickupService(store.OrderRepository)
	returnService := service.NewReturnService(
		store.OrderRepository,
		store.ReturnRequestRepository,
		store.UserRepository,
		emailService,
		cfg.Billing.LateFeeRatePercent,
	)
	earningsService := service.NewEarningsService(store.InvoiceRepository)

	// Initialize HTTP API
	handler := api.NewHandler(
		authService,
		productService,
		quotationService,
		orderService,
		pickupService,
		returnService,
		invoiceService,
		earningsService,
	)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      handler.NewRouter(tokenManager),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}
