package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wb-go/wbf/zlog"

	reminderhandler "github.com/pawkeep/reminder-service/internal/api/handlers/reminder"
	"github.com/pawkeep/reminder-service/internal/api/router"
	"github.com/pawkeep/reminder-service/internal/api/server"
	"github.com/pawkeep/reminder-service/internal/config"
	reminderrepo "github.com/pawkeep/reminder-service/internal/repository/reminder"
	"github.com/pawkeep/reminder-service/internal/scheduler"
	remindersvc "github.com/pawkeep/reminder-service/internal/service/reminder"
	"github.com/pawkeep/reminder-service/internal/storage/jsonfile"
	"github.com/pawkeep/reminder-service/pkg/notify"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog.Init()
	cfg := config.Must()
	val := validator.New()

	store := jsonfile.New(cfg.Storage.Path)
	repo := reminderrepo.NewRepository(store)
	service := remindersvc.NewService(repo)
	handler := reminderhandler.NewHandler(service, val, cfg)

	sched := scheduler.New(repo, notify.NewLogClient(), cfg.Scheduler.Interval, cfg.Retry)

	go func() {
		if err := sched.Run(ctx); err != nil {
			zlog.Logger.Fatal().Err(err).Msg("failed to start scheduler")
		}
	}()

	r := router.New(handler)
	s := server.New(cfg.Server.HTTPPort, r)

	go func() {
		zlog.Logger.Info().Str("addr", cfg.Server.HTTPPort).Msg("reminder API listening")

		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	zlog.Logger.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	zlog.Logger.Info().Msg("shutting down server")
	if err := s.Shutdown(shutdownCtx); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to shutdown server")
	}

	if errors.Is(shutdownCtx.Err(), context.DeadlineExceeded) {
		zlog.Logger.Info().Msg("timeout exceeded, forcing shutdown")
	}
}
