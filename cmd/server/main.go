package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mindline/booking-api/internal/api"
	"github.com/mindline/booking-api/internal/infrastructure/config"
	mongodb "github.com/mindline/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mindline/booking-api/internal/infrastructure/db/redis"
	"github.com/mindline/booking-api/internal/infrastructure/queue"
	"github.com/mindline/booking-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- MongoDB ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongodb connection failed")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

	appointmentRepo := mongodb.NewAppointmentRepository(db)
	scheduleRepo := mongodb.NewScheduleRepository(db)
	userRepo := mongodb.NewUserRepository(db)
	notificationRepo := mongodb.NewNotificationRepository(db)

	if err := appointmentRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("appointment index creation failed")
	}
	if err := scheduleRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("schedule index creation failed")
	}
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("user index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")

	// --- Notification dispatcher ---
	notifier := queue.NewNotifier(cfg.Notifier.Workers, notificationRepo, log)
	notifier.Start(ctx)

	// --- HTTP server ---
	e := api.NewRouter(db, rdb, notifier, cfg, log)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("booking api listening")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
