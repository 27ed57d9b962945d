package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"

	"github.com/segyhp/loan-intake/internal/config"
	"github.com/segyhp/loan-intake/internal/repository"
	"github.com/segyhp/loan-intake/internal/service"
)

func main() {
	log.Println("Starting intake scheduler...")

	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := sqlx.Connect("postgres", cfg.Database.URL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	applicationRepo := repository.NewApplicationRepository(db)
	applicationService := service.NewApplicationService(applicationRepo, nil, cfg)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatalf("Invalid scheduler timezone %q: %v", cfg.Scheduler.Timezone, err)
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	setupCronJobs(c, cfg, applicationService)

	// Start the scheduler
	c.Start()
	log.Println("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down scheduler...")
	c.Stop()
	log.Println("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, applicationService *service.ApplicationService) {
	// Daily report of pending applications nobody has processed (runs at 9 AM)
	_, err := c.AddFunc("0 0 9 * * *", func() {
		reportStalePending(applicationService, cfg.Business.StalePendingDays)
	})
	if err != nil {
		log.Printf("Error scheduling stale application report: %v", err)
	}

	// Daily intake volume summary (runs at midnight)
	_, err = c.AddFunc("0 0 0 * * *", func() {
		reportIntakeVolume(applicationService)
	})
	if err != nil {
		log.Printf("Error scheduling intake volume summary: %v", err)
	}

	log.Println("Cron jobs scheduled successfully")
}

func reportStalePending(applicationService *service.ApplicationService, thresholdDays int) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	stale, err := applicationService.ListStalePending(ctx)
	if err != nil {
		log.Printf("Stale application report failed: %v", err)
		return
	}

	if len(stale) == 0 {
		log.Printf("No pending applications older than %d days", thresholdDays)
		return
	}

	log.Printf("%d pending applications older than %d days need a manager:", len(stale), thresholdDays)
	for _, app := range stale {
		log.Printf("  %s: %s %s, %s since %s",
			app.ApplicationNumber, app.FirstName, app.LastName,
			app.LoanAmount, app.CreatedAt.Format(time.RFC3339))
	}
}

func reportIntakeVolume(applicationService *service.ApplicationService) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	counts, err := applicationService.CountByStatus(ctx)
	if err != nil {
		log.Printf("Intake volume summary failed: %v", err)
		return
	}

	for status, count := range counts {
		log.Printf("Applications with status %s: %d", status, count)
	}
}
