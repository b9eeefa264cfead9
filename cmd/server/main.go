package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fieldscan-scheduler/internal/infrastructure/config"
	"fieldscan-scheduler/internal/infrastructure/persistence"
	"fieldscan-scheduler/internal/infrastructure/router"
	schedRepo "fieldscan-scheduler/internal/interface/repository"
	"fieldscan-scheduler/internal/usecase"
	"fieldscan-scheduler/pkg/logger"
	"fieldscan-scheduler/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Fieldscan Scheduler")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	log.Info("Configuration loaded", "version", cfg.AppVersion, "port", cfg.Port)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for the audit sink
	log.Info("Connecting to MongoDB")
	mongoClient, mongoDB, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	pilotRepository := schedRepo.NewGormPilotRepository(gormDB)
	assignmentRepository := schedRepo.NewGormAssignmentRepository(gormDB)
	subscriptionRepository := schedRepo.NewGormSubscriptionRepository(gormDB)
	missionRepository := schedRepo.NewGormMissionRepository(gormDB)
	auditLogRepository := schedRepo.NewMongoAuditLogRepository(mongoDB)
	notifyRepository := schedRepo.NewHTTPNotifyRepository(log)
	// The queue's producing side is the farmer/weather intake transport,
	// which lives outside this service; in-process producers call Enqueue.
	replanQueue := schedRepo.NewMemoryReplanQueue(256)

	// Set up scheduling core
	appMetrics := metrics.NewMetrics("fieldscan")
	capacityManager := usecase.NewCapacityManager()
	planningEngine := usecase.NewPlanningEngine()

	availabilityChecker := schedRepo.NewCapacityAvailabilityChecker(pilotRepository, assignmentRepository, capacityManager)
	rescheduleService := usecase.NewRescheduleService(availabilityChecker, auditLogRepository, log)

	dispatcher := usecase.NewDispatchOrchestrator(
		subscriptionRepository,
		missionRepository,
		pilotRepository,
		assignmentRepository,
		auditLogRepository,
		notifyRepository,
		capacityManager,
		planningEngine,
		appMetrics,
		log,
		cfg.DispatchWindowDays,
		cfg.SlotIntervalDays,
	)

	// Set up replan message routing
	messageRouter := router.NewMessageRouter(log)
	messageRouter.Register(usecase.NewWeatherBlockHandler(subscriptionRepository, missionRepository, assignmentRepository, auditLogRepository, notifyRepository, rescheduleService, appMetrics, log))
	messageRouter.Register(usecase.NewFarmerRescheduleHandler(subscriptionRepository, missionRepository, assignmentRepository, notifyRepository, rescheduleService, appMetrics, log))
	replanWorker := usecase.NewReplanWorker(replanQueue, messageRouter, log)

	// Start dispatch loop in a goroutine
	go func() {
		dispatchTicker := time.NewTicker(cfg.PlannerInterval)
		defer dispatchTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Dispatch loop stopped")
				return
			case <-dispatchTicker.C:
				if err := dispatcher.RunOnce(ctx, time.Now().UTC()); err != nil {
					log.Error("Dispatch cycle error", "error", err)
				}
			}
		}
	}()

	// Start replan worker in a goroutine
	go func() {
		replanTicker := time.NewTicker(cfg.ReplanInterval)
		defer replanTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Replan worker stopped")
				return
			case <-replanTicker.C:
				if err := replanWorker.Drain(ctx); err != nil && ctx.Err() == nil {
					log.Error("Replan drain error", "error", err)
				}
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(shutdownCtx); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Fieldscan Scheduler stopped")
}
