package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Domenick1991/medappointments/config"
	"github.com/Domenick1991/medappointments/internal/bootstrap"
	"github.com/Domenick1991/medappointments/internal/console"
	"github.com/Domenick1991/medappointments/internal/logging"
	"github.com/Domenick1991/medappointments/internal/service/appointments"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.New("medappointments", cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	notifier, closeNotifier, err := bootstrap.NewNotifier(cfg, logger)
	if err != nil {
		logger.Error("notifier setup failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := closeNotifier(); err != nil {
			logger.Warn("notifier close failed", slog.Any("err", err))
		}
	}()
	logger.Info("notifier ready", slog.String("transport", cfg.Notifier.Transport))

	manager := appointments.NewManager(notifier, appointments.WithLogger(logger))
	menu := console.NewMenu(os.Stdin, os.Stdout, manager, bootstrap.NewDoctor(cfg.Doctor), console.Defaults{
		PatientName: cfg.Console.DefaultPatientName,
		Email:       cfg.Console.DefaultEmail,
		Date:        cfg.Console.DefaultDate,
		Time:        cfg.Console.DefaultTime,
	}, logger)

	if err := menu.Run(ctx); err != nil && ctx.Err() == nil {
		logger.Error("console stopped with error", slog.Any("err", err))
		os.Exit(1)
	}
}
