package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"personachat-backend/internal/api"
	"personachat-backend/internal/completion"
	"personachat-backend/internal/config"
	"personachat-backend/internal/handlers"
	"personachat-backend/internal/services"
	"personachat-backend/internal/store/postgres"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("FATAL: Failed to create logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("Starting PersonaChat backend...")

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	// 2. Initialize Database Connection Pool
	// Use context.Background() for initial setup, but request-scoped contexts later.
	dbCtx, dbCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer dbCancel()

	dbpool, err := pgxpool.New(dbCtx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("unable to create database connection pool", zap.Error(err))
	}
	defer dbpool.Close()

	if err := dbpool.Ping(dbCtx); err != nil {
		logger.Fatal("unable to ping database", zap.Error(err))
	}
	logger.Info("Database connection pool established.")

	// 3. Initialize Dependencies (Store, Client, Service, Handlers)
	pgStore := postgres.NewPostgresStore(dbpool)

	llmClient := completion.NewClient(
		cfg.CompletionAPIURL,
		cfg.CompletionModel,
		cfg.CompletionMaxTokens,
		cfg.CompletionTemperature,
		cfg.CompletionTimeout,
	)

	chatService := services.NewChatService(pgStore, llmClient, cfg.PersonaPrompt, cfg.HistoryWindow, logger)
	chatHandler := handlers.NewChatHandlers(chatService, logger)

	// 4. Setup Router & Inject Dependencies
	router := api.NewRouter(api.RouterDependencies{
		ChatHandler: chatHandler,
		Logger:      logger,
	})

	// 5. Configure and Start HTTP Server
	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
		// The write timeout must outlast the synchronous completion-API call.
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.CompletionTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Channel to listen for OS signals for graceful shutdown
	stopChan := make(chan os.Signal, 1)
	signal.Notify(stopChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server starting", zap.String("port", cfg.HTTPPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server listen failed", zap.String("port", cfg.HTTPPort), zap.Error(err))
		}
	}()

	<-stopChan
	logger.Info("Shutdown signal received, initiating graceful shutdown...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("Server shutdown complete.")
}
