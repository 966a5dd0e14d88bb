package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/vantis/storefront-state/config"
	"github.com/vantis/storefront-state/internal/api"
	"github.com/vantis/storefront-state/internal/api/middleware"
	"github.com/vantis/storefront-state/internal/cart"
	"github.com/vantis/storefront-state/pkg/logger"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.Config{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger, err := logger.New(logConfig)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	// 3. Session store and router
	sessions := cart.NewStore(appLogger)

	r := chi.NewRouter()
	r.Use(middleware.RequestLogger(appLogger))
	r.Mount("/", api.NewRouter(sessions, appLogger))

	srv := &http.Server{
		Addr:         cfg.Server.HTTPPort,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// 4. Serve with graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			appLogger.Error("server shutdown", zap.Error(err))
		}
		close(idleConnsClosed)
	}()

	appLogger.Info("starting storestate", zap.String("addr", cfg.Server.HTTPPort), zap.String("env", cfg.Server.AppEnv))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		appLogger.Fatal("listen", zap.Error(err))
	}

	<-idleConnsClosed
	appLogger.Info("server stopped")
}
