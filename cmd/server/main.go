package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/siteforge/siteforge/internal/api"
	"github.com/siteforge/siteforge/internal/artifact"
	"github.com/siteforge/siteforge/internal/builder"
	"github.com/siteforge/siteforge/internal/config"
	"github.com/siteforge/siteforge/internal/jobs"
	"github.com/siteforge/siteforge/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error("config error", "error", err)
		os.Exit(1)
	}

	for _, dir := range []string{cfg.Artifacts.Dir, cfg.Uploads.Dir, filepath.Dir(cfg.Database.Path)} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create directory", "dir", dir, "error", err)
			os.Exit(1)
		}
	}

	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		logger.Error("failed to open job store", "error", err)
		os.Exit(1)
	}
	defer st.Close()

	artifacts := artifact.NewStore(cfg.Artifacts.Dir)
	orch := jobs.NewOrchestrator(st, builder.NewSiteGenerator(), artifacts, logger)
	status := jobs.NewStatusService(st)

	retention := time.Duration(cfg.Artifacts.RetentionHours) * time.Hour
	cr := cron.New()
	if _, err := cr.AddFunc("@hourly", func() {
		artifact.CleanOld(cfg.Artifacts.Dir, retention, logger)
	}); err != nil {
		logger.Error("failed to schedule artifact cleanup", "error", err)
		os.Exit(1)
	}
	cr.Start()
	defer cr.Stop()

	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()
	api.RegisterHandlers(r, orch, status, cfg.Artifacts.Dir, cfg.Uploads.Dir)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}
