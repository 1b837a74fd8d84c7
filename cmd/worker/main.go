package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/medappointments/config"
	"github.com/Domenick1991/medappointments/internal/bootstrap"
	"github.com/Domenick1991/medappointments/internal/kafka"
	"github.com/Domenick1991/medappointments/internal/logging"
	"github.com/Domenick1991/medappointments/internal/mailqueue"
	"github.com/Domenick1991/medappointments/internal/worker"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New("notification-worker", cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sender := bootstrap.NewEmailSender(cfg.SMTP)
	dispatcher := worker.NewDispatcher(sender, logger)
	logger.Info("worker starting", slog.String("source", cfg.Worker.Source), slog.String("smtp_addr", sender.Addr()))

	switch cfg.Worker.Source {
	case config.TransportRedis:
		queue := mailqueue.NewRedisQueue(cfg.Redis)
		defer queue.Close()

		pollTimeout := time.Duration(cfg.Worker.PollTimeoutSeconds) * time.Second
		if err := dispatcher.RunQueue(ctx, queue, pollTimeout); err != nil {
			logger.Error("redis worker stopped", slog.Any("err", err))
			os.Exit(1)
		}
	default:
		consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
		defer consumer.Close()

		if err := consumer.Consume(ctx, dispatcher.HandleMessage); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("kafka consumer stopped", slog.Any("err", err))
			os.Exit(1)
		}
	}

	logger.Info("worker stopped")
}
