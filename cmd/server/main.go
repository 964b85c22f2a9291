package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"surety-service/internal/infrastructure/config"
	"surety-service/internal/infrastructure/persistence"
	"surety-service/internal/interface/httpapi"
	suretyRepo "surety-service/internal/interface/repository"
	"surety-service/internal/ledger"
	"surety-service/internal/usecase"
	"surety-service/pkg/logger"
	"surety-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	defer log.Sync()
	log.Info("Starting Flight Surety Settlement Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection for ledger snapshots
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Set up PostgreSQL connection for the transaction journal
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up repositories
	snapshotRepo := suretyRepo.NewMongoSnapshotRepository(db)
	journalRepo, err := suretyRepo.NewGormJournalRepository(gormDB)
	if err != nil {
		log.Fatal("Failed to migrate transaction journal", "error", err)
	}
	payoutGateway := suretyRepo.NewHTTPPayoutGateway(cfg.PayoutEndpoint, cfg.PayoutToken, log)

	publisher, err := suretyRepo.NewNatsEventPublisher(cfg.NatsURL, "surety-service", log)
	if err != nil {
		log.Fatal("Failed to connect to NATS", "error", err)
	}
	defer publisher.Close()

	// Rehydrate the ledger from the latest snapshot, or start from genesis
	st, err := snapshotRepo.Load(ctx)
	if err != nil {
		log.Fatal("Failed to load ledger snapshot", "error", err)
	}
	if st == nil {
		log.Info("No snapshot found, starting from genesis",
			"owner", cfg.OwnerAccount, "firstAirline", cfg.FirstAirline)
		st = ledger.New(cfg.OwnerAccount, cfg.FirstAirline)
	} else {
		log.Info("Ledger rehydrated from snapshot", "seq", st.Seq)
	}

	// Reconcile the snapshot against the durable transaction journal
	if _, err := usecase.CheckJournalAlignment(ctx, st, journalRepo, log); err != nil {
		log.Fatal("Failed to read last journal sequence", "error", err)
	}

	// Set up the engine and API
	engineMetrics := metrics.NewMetrics("surety")
	executor := usecase.NewExecutor(st, journalRepo, snapshotRepo, publisher, payoutGateway, engineMetrics, log)
	api := httpapi.NewServer(executor, log)

	// Set up HTTP server
	mux := http.NewServeMux()
	mux.Handle("/", api.Handler())
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

	log.Info("Flight Surety Settlement Service stopped")
}
