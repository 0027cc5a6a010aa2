package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/davidrendon/identia-backend/internal/config"
	"github.com/davidrendon/identia-backend/internal/notifier"
	"github.com/davidrendon/identia-backend/internal/orchestrator"
)

func main() {
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.LoadOrchestrator()
	if err != nil {
		logger.Fatal("failed to load configuration", zap.Error(err))
	}

	logger.Info("checking kafka connectivity", zap.Strings("brokers", cfg.KafkaBrokers))
	if err := checkKafkaConnectivity(cfg.KafkaBrokers); err != nil {
		logger.Fatal("kafka not available", zap.Error(err))
	}

	relay := notifier.NewClient(cfg.NotifierURL)

	registry := orchestrator.NewRegistry()
	registry.Register(orchestrator.NewUserRegisteredHandler(relay, logger))
	registry.Register(orchestrator.NewOTPRequestedHandler(relay, logger))
	registry.Register(orchestrator.NewPasswordChangedHandler(relay, logger))

	processor := orchestrator.NewProcessor(registry, logger)

	consumer := orchestrator.NewConsumer(kafka.ReaderConfig{
		Brokers:  cfg.KafkaBrokers,
		Topic:    cfg.UserEventsTopic,
		GroupID:  cfg.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	}, processor, logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.Start(ctx, cfg.Workers)
	}()

	logger.Info("notification orchestrator running",
		zap.String("topic", cfg.UserEventsTopic),
		zap.Int("workers", cfg.Workers))

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
	logger.Info("shutdown requested")
	cancel()
	<-done

	if err := consumer.Close(); err != nil {
		logger.Error("error closing consumer", zap.Error(err))
	}
	logger.Info("bye")
}

func checkKafkaConnectivity(brokers []string) error {
	if len(brokers) == 0 {
		return fmt.Errorf("no kafka brokers configured")
	}

	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return fmt.Errorf("failed to connect to broker %s: %w", brokers[0], err)
	}
	defer func() { _ = conn.Close() }()

	if _, err := conn.Brokers(); err != nil {
		return fmt.Errorf("failed to list brokers: %w", err)
	}
	return nil
}
