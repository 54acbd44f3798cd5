package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"naijatax/internal/config"
	"naijatax/internal/email/noop"
	"naijatax/internal/email/ses"
	"naijatax/internal/handler"
	"naijatax/internal/port"
	"naijatax/internal/ratetable"
	"naijatax/internal/repository/postgres"
	"naijatax/internal/router"
	"naijatax/internal/service"
	s3storage "naijatax/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// A local .env is optional; deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded settings from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	tables, err := ratetable.Load(cfg.RateTables.File)
	if err != nil {
		return fmt.Errorf("failed to load rate tables: %w", err)
	}
	log.Printf("rate tables loaded for years %v", tables.Years())

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	profileRepo := postgres.NewProfileRepo(db)
	incomeRepo := postgres.NewIncomeRepo(db)
	expenseRepo := postgres.NewExpenseRepo(db)
	deductionsRepo := postgres.NewDeductionsRepo(db)
	assetRepo := postgres.NewCapitalAssetRepo(db)
	vatRepo := postgres.NewVATRepo(db)
	whtRepo := postgres.NewWHTRepo(db)
	paymentRepo := postgres.NewTaxPaymentRepo(db)
	yearTotalsRepo := postgres.NewYearTotalsRepo(db)
	statsRepo := postgres.NewStatsRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	emailSender, err := newEmailSender(&cfg.Email)
	if err != nil {
		return fmt.Errorf("failed to initialize email sender: %w", err)
	}

	// Initialize services
	verifier := service.NewTokenVerifier(cfg.Auth)
	taxSvc := service.NewTaxService(service.TaxRepos{
		Profiles:   profileRepo,
		Income:     incomeRepo,
		Expenses:   expenseRepo,
		Deductions: deductionsRepo,
		Assets:     assetRepo,
		VAT:        vatRepo,
		WHT:        whtRepo,
		Payments:   paymentRepo,
		YearTotals: yearTotalsRepo,
	}, tables, cfg.Tax)
	recordSvc := service.NewRecordService(incomeRepo, expenseRepo, paymentRepo, deductionsRepo, profileRepo)
	assetSvc := service.NewAssetService(assetRepo, tables)
	whtSvc := service.NewWHTService(whtRepo, tables)
	vatSvc := service.NewVATService(vatRepo, profileRepo, tables, emailSender)
	reportSvc := service.NewReportService(taxSvc, s3Client, service.ReportConfig{
		Prefix:        cfg.S3.ReportPrefix,
		PresignExpiry: time.Duration(cfg.S3.PresignExpiry) * time.Second,
	})
	statsSvc := service.NewStatsService(statsRepo)

	// Setup router
	r := router.Setup(verifier, router.Handlers{
		Health: handler.NewHealthHandler(db, tables.Years),
		Tax:    handler.NewTaxHandler(taxSvc),
		Record: handler.NewRecordHandler(recordSvc),
		Asset:  handler.NewAssetHandler(assetSvc),
		WHT:    handler.NewWHTHandler(whtSvc),
		VAT:    handler.NewVATHandler(vatSvc),
		Report: handler.NewReportHandler(reportSvc),
		Stats:  handler.NewStatsHandler(statsSvc),
	}, cfg.CORS.AllowedOrigins)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Reminders.Enabled {
		worker := service.NewReminderWorker(vatRepo, vatSvc, service.ReminderConfig{
			Interval:    cfg.Reminders.Interval,
			Concurrency: cfg.Reminders.Concurrency,
			ResendAfter: cfg.Reminders.ResendAfter,
		})
		go worker.Start(ctx)
		log.Printf("VAT reminder worker started (interval %s)", cfg.Reminders.Interval)
	}

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Println("shutting down the server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}

func newEmailSender(cfg *config.EmailConfig) (port.EmailSender, error) {
	switch cfg.Provider {
	case "ses":
		return ses.NewSESSender(cfg.Region, cfg.FromAddress, cfg.FromName, cfg.FrontendURL)
	case "", "noop":
		return noop.NewNoopSender(cfg.FrontendURL), nil
	default:
		return nil, fmt.Errorf("unknown email provider %q", cfg.Provider)
	}
}
