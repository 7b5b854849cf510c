package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"crbill/internal/config"
	emailnoop "crbill/internal/email/noop"
	emailses "crbill/internal/email/ses"
	"crbill/internal/handler"
	"crbill/internal/port"
	"crbill/internal/repository/postgres"
	"crbill/internal/router"
	"crbill/internal/service"
	s3storage "crbill/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Local development convenience; missing .env is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	clientRepo := postgres.NewClientRepo(db)
	devRepo := postgres.NewDeveloperRepo(db)
	crRepo := postgres.NewCRRepo(db)
	invoiceRepo := postgres.NewInvoiceRepo(db)
	paymentRepo := postgres.NewPaymentRepo(db)
	advanceRepo := postgres.NewAdvanceRepo(db)
	tdsRepo := postgres.NewTDSRepo(db)
	reportRepo := postgres.NewReportRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize email
	var emailSender port.EmailSender
	if cfg.Email.Provider == "ses" {
		emailSender, err = emailses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	} else {
		emailSender = emailnoop.NewNoopSender()
	}

	// Initialize services
	authSvc := service.NewAuthService(userRepo, cfg.JWT)
	userSvc := service.NewUserService(userRepo)
	clientSvc := service.NewClientService(clientRepo)
	devSvc := service.NewDeveloperService(devRepo)
	crSvc := service.NewCRService(crRepo, devRepo)
	invoiceSvc := service.NewInvoiceService(invoiceRepo, crRepo, devRepo, clientRepo, advanceRepo, tdsRepo, s3Client, emailSender, cfg.S3)
	paymentSvc := service.NewPaymentService(paymentRepo, invoiceRepo, devRepo, emailSender)
	advanceSvc := service.NewAdvanceService(advanceRepo, invoiceRepo)
	tdsSvc := service.NewTDSService(tdsRepo)
	reportSvc := service.NewReportService(reportRepo, invoiceRepo, crRepo, devRepo, advanceRepo)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	userH := handler.NewUserHandler(userSvc)
	clientH := handler.NewClientHandler(clientSvc)
	developerH := handler.NewDeveloperHandler(devSvc, reportSvc)
	crH := handler.NewCRHandler(crSvc)
	invoiceH := handler.NewInvoiceHandler(invoiceSvc)
	paymentH := handler.NewPaymentHandler(paymentSvc)
	advanceH := handler.NewAdvanceHandler(advanceSvc)
	tdsH := handler.NewTDSHandler(tdsSvc)
	reportH := handler.NewReportHandler(reportSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(cfg, authSvc, authH, userH, clientH, developerH, crH,
		invoiceH, paymentH, advanceH, tdsH, reportH, healthH)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
