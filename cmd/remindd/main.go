package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/avelisk/remindd/internal/config"
	"github.com/avelisk/remindd/internal/mailer"
	"github.com/avelisk/remindd/internal/server"
	"github.com/avelisk/remindd/internal/store"
	"github.com/avelisk/remindd/pkg/logger"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	// Create logger
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	zapLogger, err := logger.New(logLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	// Load configuration; missing Mailgun credentials abort startup here
	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Create the event store
	var eventStore store.EventStore
	switch cfg.Store.Backend {
	case "memory":
		zapLogger.Warn("Using in-memory event store; data is lost on restart")
		eventStore = store.NewMemoryStore()
	default:
		fs, err := store.NewFirestoreStore(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, cfg.Firestore.Collection)
		if err != nil {
			zapLogger.Fatal("Failed to create firestore client", zap.Error(err))
		}
		defer fs.Close()
		eventStore = fs
	}

	// Create the email client
	mg := mailer.NewMailgunMailer(cfg.Mailgun.Domain, cfg.Mailgun.APIKey, cfg.Mailgun.Sender)

	// One connectivity probe against the events collection. The result is
	// logged either way; the server starts regardless of the outcome.
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if events, err := eventStore.ListAll(probeCtx); err != nil {
		zapLogger.Error("Store connectivity check failed", zap.Error(err))
	} else {
		zapLogger.Info("Store connectivity check ok", zap.Int("events", len(events)))
	}
	cancel()

	// Create API server
	apiServer := server.New(zapLogger, eventStore, mg, cfg.Mailgun.AuthorizedRecipients)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: apiServer.Router(),
	}

	// Start server in a goroutine
	go func() {
		zapLogger.Info("Starting API server", zap.String("addr", addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	// Wait for interrupt to shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	shutdownCtx, cancelShutdown := context.WithTimeout(ctx, 15*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Forced shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited properly")
}
