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

	adapterHTTP "github.com/comitanigiacomo/momentum/internal/adapters/handler/http"
	"github.com/comitanigiacomo/momentum/internal/app"
	"github.com/comitanigiacomo/momentum/internal/config"
	"github.com/comitanigiacomo/momentum/internal/logger"
)

func newRouter(a *app.App, startTime time.Time) *gin.Engine {
	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		HabitHandler:    adapterHTTP.NewHabitHandler(a.Habits),
		CategoryHandler: adapterHTTP.NewCategoryHandler(a.Categories),
		StatsHandler:    adapterHTTP.NewStatsHandler(a.Stats),
		ReportHandler:   adapterHTTP.NewReportHandler(a.Reports),
		Store:           a.Store,
		Redis:           a.Redis,
		CORSOrigins:     a.Config.CORSOrigins,
		StartTime:       startTime,
	})
}

func main() {
	startTime := time.Now()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Critical: invalid configuration", "error", err)
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, Dir: cfg.LogDir}); err != nil {
		logger.Fatal("Critical: failed to initialize logger", "error", err)
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatal("Critical: failed to start", "error", err)
	}
	defer a.Close()

	if err := a.Worker.Start(ctx); err != nil {
		logger.Fatal("Critical: failed to start streak worker", "error", err)
	}
	a.Worker.Enqueue("startup")

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      newRouter(a, startTime),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Momentum running", "addr", "http://localhost:"+cfg.Port, "store", cfg.StoreDriver, "tz", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Critical server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Stop signal received. Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Forced shutdown error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully.")
}
