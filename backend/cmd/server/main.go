package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"hivery/backend/internal/api"
	"hivery/backend/internal/bootstrap"
	"hivery/backend/internal/importer"
	"hivery/backend/internal/service"
	"hivery/backend/internal/store"
	"hivery/backend/pkg/config"
	"hivery/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Env, cfg.LogLevel); err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Sync()

	log := logger.Get()
	log.Info("Starting Hivery API server...",
		zap.String("env", cfg.Env),
		zap.String("store_backend", cfg.StoreBackend),
	)

	ctx := context.Background()
	st, svc, err := start(ctx, cfg)
	if err != nil {
		log.Error("Startup failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	defer st.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(svc, logger.Named("api"))

	// Start server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("port", cfg.Port))

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited")
}

// start opens the configured store, imports the dataset into it and
// builds the query service. Nothing is served unless the import succeeds.
func start(ctx context.Context, cfg *config.Config) (store.Store, *service.Service, error) {
	st, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ResetOnStart {
		if err := st.Reset(ctx); err != nil {
			st.Close()
			return nil, nil, err
		}
	}

	files := importer.Files{
		Companies: cfg.CompaniesFile,
		People:    cfg.PeopleFile,
		Foods:     cfg.FoodsFile,
	}
	if _, err := importer.New(st, logger.Named("importer")).Import(ctx, files); err != nil {
		st.Close()
		return nil, nil, err
	}

	svc, err := service.New(st, cfg.PersonCacheSize, logger.Named("service"))
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, svc, nil
}
