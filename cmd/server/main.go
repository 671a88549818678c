package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/aliouned/propfin/internal/config"
	"github.com/aliouned/propfin/internal/repository/mongodb"
	"github.com/aliouned/propfin/internal/scheduler"
	"github.com/aliouned/propfin/internal/server/handlers"
	"github.com/aliouned/propfin/internal/server/router"
	goalsvc "github.com/aliouned/propfin/internal/service/goals"
	overviewsvc "github.com/aliouned/propfin/internal/service/overview"
	"github.com/aliouned/propfin/internal/service/roi"
	snapshotsvc "github.com/aliouned/propfin/internal/service/snapshot"
	"github.com/aliouned/propfin/pkg/clients/notify"
	"github.com/aliouned/propfin/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Server.LogLevel))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	mongoRepo, err := mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
	if err != nil {
		baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
	}
	defer func() {
		if err := mongoRepo.Close(context.Background()); err != nil {
			baseLogger.Error("failed to close mongodb connection", zap.Error(err))
		}
	}()

	if err := mongoRepo.EnsureIndexes(context.Background()); err != nil {
		baseLogger.Fatal("failed to ensure mongodb indexes", zap.Error(err))
	}

	assembler := roi.NewAssembler(mongoRepo, mongoRepo, cfg.Assumptions, baseLogger.Named("svc.assembler"))
	snapshotSvc := snapshotsvc.NewService(assembler, mongoRepo, mongoRepo, baseLogger.Named("svc.snapshot"))
	goalSvc := goalsvc.NewService(mongoRepo, assembler, baseLogger.Named("svc.goals"))
	overviewSvc := overviewsvc.NewService(mongoRepo, mongoRepo, baseLogger.Named("svc.overview"))

	var notifier notify.Client
	if cfg.Notify.WebhookURL != "" {
		notifier = notify.NewWebhookClient(cfg.Notify)
		baseLogger.Info("ops webhook notifications enabled")
	} else {
		baseLogger.Warn("ops webhook url missing, cycle notifications disabled")
	}

	financeHandler := handlers.NewFinanceHandler(assembler, snapshotSvc, goalSvc, overviewSvc, baseLogger.Named("handlers.finance"))
	engine := router.New(financeHandler, baseLogger.Named("router"))

	sched := scheduler.NewScheduler(*cfg, snapshotSvc, goalSvc, notifier, baseLogger.Named("scheduler"))
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
