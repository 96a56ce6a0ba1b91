package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/adaudit/adaudit/internal/api/router"
	"github.com/adaudit/adaudit/internal/config"
	"github.com/adaudit/adaudit/internal/pkg/logger"
	"github.com/adaudit/adaudit/internal/repository/postgres"
	"github.com/adaudit/adaudit/internal/services"
	"github.com/adaudit/adaudit/internal/worker"
)

var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(postgres.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	if err := postgres.Migrate(db, cfg.Database.Driver); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	anomalyRepo := postgres.NewAnomalyRepository(db, cfg.Database.Driver)
	kpiRepo := postgres.NewKPIRepository(db, cfg.Database.Driver)

	anomalyService := services.NewAnomalyService(anomalyRepo, log)
	kpiService := services.NewKPIService(kpiRepo, log)
	analysisService := services.NewAnalysisService(anomalyRepo, kpiRepo, log)

	scheduler := worker.NewAnalysisScheduler(analysisService, log,
		cfg.Analysis.Schedule, cfg.Analysis.WindowDays, cfg.Analysis.UserIDs)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("scheduler: %v", err)
	}

	handler := router.New(router.Config{
		DB:              db,
		AnomalyService:  anomalyService,
		KPIService:      kpiService,
		AnalysisService: analysisService,
		Logger:          log,
		Version:         version,
		AllowedOrigins:  cfg.Server.AllowedOrigins,
		RateLimitRPS:    cfg.Server.RateLimitRPS,
		RateLimitBurst:  cfg.Server.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.With("addr", srv.Addr).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.ErrorWithErr(err, "forced shutdown")
	}
	log.Info("server stopped")
}
