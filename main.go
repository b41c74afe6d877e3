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

	"github.com/joho/godotenv"

	"commission-catalog/app"
	"commission-catalog/config"
	"commission-catalog/logger"
)

func main() {
	// Load .env file in development (ignores error if file doesn't exist)
	// In production, variables should be set directly
	if os.Getenv("ENV") != "production" {
		// Use Overload to ensure .env values override system environment variables
		if err := godotenv.Overload(".env"); err != nil {
			log.Printf("Warning: .env file not found, using system environment variables")
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	zl, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer zl.Sync()
	sugar := zl.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.Initialize(ctx, cfg, zl)
	if err != nil {
		sugar.Fatalf("❌ Failed to initialize application: %v", err)
	}
	defer application.Close()

	// Listen on 0.0.0.0 to accept connections from all interfaces (required for Docker/Render)
	addr := "0.0.0.0:" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           application.Handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infof("🚀 Server starting on %s (public URL %s)", addr, cfg.Server.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalf("❌ Server failed: %v", err)
		}
	}()

	<-ctx.Done()
	sugar.Infof("🛑 Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		sugar.Errorf("❌ Graceful shutdown failed: %v", err)
	}
}
