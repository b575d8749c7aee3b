// Package main provides the entry point for the ShopAdmin API server
// @title ShopAdmin API
// @version 1.0
// @description Administrative backend for the shop platform.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token authentication
// @Security BearerAuth
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gopkg.in/natefinch/lumberjack.v2"

	"shopadmin/internal/api/routes"
	"shopadmin/internal/audit"
	"shopadmin/internal/config"
	"shopadmin/internal/database"
	"shopadmin/internal/email"
	"shopadmin/internal/jobs"
	"shopadmin/internal/ratelimit"
	"shopadmin/internal/repository/postgres"
	"shopadmin/internal/validation"
)

func main() {
	// Parse command line flags
	envFile := flag.String("env", ".env", "Path to env file")
	flag.Parse()

	// Load environment file
	if err := godotenv.Load(*envFile); err != nil && *envFile == ".env" {
		log.Printf("Warning: %v", err)
	}

	// Load configuration
	cfg := &config.Config{}
	if err := cfg.LoadFromEnv(); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Route logs through a rotating file when configured
	if cfg.Log.File != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   true,
		})
	}

	// Initialize error reporting
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
		}); err != nil {
			log.Fatalf("Failed to initialize sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize validators
	validation.Initialize()

	// Pick the attempt store: redis when configured so limits hold across
	// instances, in-process memory otherwise.
	var attemptStore ratelimit.AttemptStore
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		attemptStore = ratelimit.NewRedisStore(client)
		log.Printf("Using redis attempt store at %s", cfg.Redis.Addr)
	} else {
		store := ratelimit.NewMemoryStore()
		defer store.Close()
		attemptStore = store
	}

	// Initialize email delivery
	emailService, err := email.NewService(cfg.Email)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	defer emailService.Close()

	// Initialize the login history recorder
	historyRepo := postgres.NewLoginHistoryRepository(db)
	recorder := audit.NewRecorder(historyRepo, 256)
	defer recorder.Close()

	// Register scheduled jobs
	jobManager := jobs.NewManager()
	jobManager.Register(jobs.NewConversationCleanupJob(
		postgres.NewConversationRepository(db),
		time.Duration(cfg.Jobs.ConversationRetentionDays)*24*time.Hour,
		cfg.Jobs.ConversationCleanupSchedule,
	))
	jobManager.Register(jobs.NewAttachmentCleanupJob(
		postgres.NewAttachmentRepository(db),
		cfg.Jobs.AttachmentCleanupSchedule,
	))
	snapshotRepo := postgres.NewSnapshotRepository(db)
	jobManager.Register(jobs.NewSnapshotJob(snapshotRepo, "daily", cfg.Jobs.SnapshotDailySchedule))
	jobManager.Register(jobs.NewSnapshotJob(snapshotRepo, "monthly", cfg.Jobs.SnapshotMonthlySchedule))
	jobManager.Register(jobs.NewSnapshotJob(snapshotRepo, "yearly", cfg.Jobs.SnapshotYearlySchedule))

	// Run the scheduler until shutdown
	schedulerCtx, stopScheduler := context.WithCancel(context.Background())
	defer stopScheduler()
	go func() {
		if err := jobManager.StartScheduler(schedulerCtx); err != nil {
			log.Fatalf("Failed to start job scheduler: %v", err)
		}
	}()

	// Setup routes
	router := routes.SetupRoutes(cfg, routes.Deps{
		DB:           db,
		AttemptStore: attemptStore,
		EmailSender:  emailService,
		Recorder:     recorder,
		JobManager:   jobManager,
	})

	// Convert port string to int
	port, err := strconv.Atoi(cfg.API.Port)
	if err != nil {
		log.Fatalf("Invalid port number: %v", err)
	}

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %d", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	stopScheduler()

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
