package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/wellness-booking/internal/audit"
	"github.com/BruksfildServices01/wellness-booking/internal/config"
	dbpkg "github.com/BruksfildServices01/wellness-booking/internal/db"
	"github.com/BruksfildServices01/wellness-booking/internal/handlers"
	"github.com/BruksfildServices01/wellness-booking/internal/infra/cache"
	"github.com/BruksfildServices01/wellness-booking/internal/infra/storage"
	"github.com/BruksfildServices01/wellness-booking/internal/logger"
	"github.com/BruksfildServices01/wellness-booking/internal/routes"
	"github.com/BruksfildServices01/wellness-booking/internal/timezone"
)

func main() {

	cfg := config.Load()
	log := logger.New(cfg)
	defer func() { _ = log.Sync() }()

	timezone.SetDefault(cfg.DefaultTimezone)

	db := dbpkg.NewDB(cfg, log)

	redisClient := cache.NewRedisClient(cfg, log)
	if redisClient != nil {
		defer redisClient.Close()
	}

	var photos handlers.PhotoStore
	if cfg.StorageEnabled() {
		photos = storage.NewS3Storage(cfg)
	} else {
		log.Warn("photo storage disabled: S3 is not configured")
	}

	auditDispatcher := audit.NewDispatcher(audit.NewGormSink(db), log)
	defer auditDispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, routes.Deps{
		DB:     db,
		Config: cfg,
		Log:    log,
		Redis:  redisClient,
		Photos: photos,
		Audit:  auditDispatcher,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server running", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
}
