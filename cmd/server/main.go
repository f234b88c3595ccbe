package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/guardlink/payment-service/internal/config"
	"github.com/guardlink/payment-service/internal/infrastructure/database"
	stripeGateway "github.com/guardlink/payment-service/internal/infrastructure/gateway/stripe"
	httpServer "github.com/guardlink/payment-service/internal/infrastructure/http"
	"github.com/guardlink/payment-service/internal/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := database.NewConnection(&cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("failed to close database connection", zap.Error(err))
		}
	}()

	if err := database.Migrate(db, zapLogger); err != nil {
		zapLogger.Fatal("failed to run database migrations", zap.Error(err))
	}

	repos := database.NewRepositories(db)
	gateway := stripeGateway.NewGateway(cfg.Service.StripeSecretKey, zapLogger)

	srv := httpServer.NewServer(cfg, zapLogger, repos, gateway)

	go func() {
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("server shut down")
}
