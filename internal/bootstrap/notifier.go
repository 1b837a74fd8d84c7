package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/Domenick1991/medappointments/config"
	"github.com/Domenick1991/medappointments/internal/domain"
	"github.com/Domenick1991/medappointments/internal/email"
	"github.com/Domenick1991/medappointments/internal/kafka"
	"github.com/Domenick1991/medappointments/internal/mailqueue"
	"github.com/Domenick1991/medappointments/internal/notify"
)

// NewNotifier builds the transport named in cfg. The returned close func is never nil.
func NewNotifier(cfg *config.Config, logger *slog.Logger) (notify.Notifier, func() error, error) {
	noop := func() error { return nil }
	logNotifier := notify.NewLogNotifier(logger)

	var (
		n       notify.Notifier
		closeFn = noop
	)
	switch cfg.Notifier.Transport {
	case config.TransportLog, "":
		return logNotifier, noop, nil
	case config.TransportSMTP:
		n = NewEmailSender(cfg.SMTP)
	case config.TransportKafka:
		producer := kafka.NewProducer(cfg.Kafka.Brokers, logger)
		n = notify.NewKafkaNotifier(producer, cfg.Kafka.NotificationsTopic)
		closeFn = producer.Close
	case config.TransportRedis:
		q := mailqueue.NewRedisQueue(cfg.Redis)
		n = q
		closeFn = q.Close
	default:
		return nil, noop, fmt.Errorf("unknown notifier transport %q", cfg.Notifier.Transport)
	}

	if cfg.Notifier.FallbackToLog {
		n = notify.NewFallback(n, logNotifier)
	}
	return n, closeFn, nil
}

func NewEmailSender(cfg config.SMTPConfig) *email.Sender {
	return email.NewSender(email.Config{
		Host:     cfg.Host,
		Port:     cfg.Port,
		From:     cfg.From,
		Username: cfg.Username,
		Password: cfg.Password,
		Subject:  cfg.Subject,
	})
}

func NewDoctor(cfg config.DoctorConfig) *domain.Doctor {
	return &domain.Doctor{ID: cfg.ID, Name: cfg.Name, Specialty: cfg.Specialty}
}
