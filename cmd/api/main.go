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
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/config"
	"github.com/davidrendon/identia-backend/internal/database"
	"github.com/davidrendon/identia-backend/internal/events"
	"github.com/davidrendon/identia-backend/internal/handlers"
	otpsvc "github.com/davidrendon/identia-backend/internal/otp"
	"github.com/davidrendon/identia-backend/internal/services"
	"github.com/davidrendon/identia-backend/internal/store"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadAPI()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	if err := database.RunMigrations(db); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient, err := services.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to initialize redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	revocation := services.NewTokenRevocation(redisClient)

	producer := events.NewProducer(cfg.KafkaBrokers, cfg.UserEventsTopic, logger)
	defer func() { _ = producer.Close() }()

	st := store.New(db)
	otpService := otpsvc.NewService(st, producer, revocation, cfg.OTPTTL, logger)

	router := handlers.NewRouter(handlers.RouterDeps{
		Store:     st,
		OTP:       otpService,
		Events:    producer,
		Revoker:   revocation,
		JWTSecret: cfg.JWTSecret,
		Log:       logger,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("identity service listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutdown requested")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
	logger.Info("bye")
}
