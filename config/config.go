package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	TransportLog   = "log"
	TransportSMTP  = "smtp"
	TransportKafka = "kafka"
	TransportRedis = "redis"
)

type Config struct {
	Log      LogConfig      `yaml:"log"`
	Notifier NotifierConfig `yaml:"notifier"`
	SMTP     SMTPConfig     `yaml:"smtp"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Console  ConsoleConfig  `yaml:"console"`
	Doctor   DoctorConfig   `yaml:"doctor"`
	Worker   WorkerConfig   `yaml:"worker"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type NotifierConfig struct {
	Transport     string `yaml:"transport"`
	FallbackToLog bool   `yaml:"fallback_to_log"`
}

type SMTPConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	From     string `yaml:"from"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Subject  string `yaml:"subject"`
}

type KafkaConfig struct {
	Brokers            []string `yaml:"brokers"`
	NotificationsTopic string   `yaml:"notifications_topic"`
	GroupID            string   `yaml:"group_id"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	QueueKey string `yaml:"queue_key"`
}

// ConsoleConfig holds the values the menu substitutes for blank input.
type ConsoleConfig struct {
	DefaultPatientName string `yaml:"default_patient_name"`
	DefaultEmail       string `yaml:"default_email"`
	DefaultDate        string `yaml:"default_date"`
	DefaultTime        string `yaml:"default_time"`
}

type DoctorConfig struct {
	ID        int64  `yaml:"id"`
	Name      string `yaml:"name"`
	Specialty string `yaml:"specialty"`
}

type WorkerConfig struct {
	Source             string `yaml:"source"`
	PollTimeoutSeconds int    `yaml:"poll_timeout_seconds"`
}

func Default() *Config {
	return &Config{
		Log:      LogConfig{Level: "info"},
		Notifier: NotifierConfig{Transport: TransportLog},
		SMTP: SMTPConfig{
			Host:    "smtp.example.com",
			Port:    587,
			From:    "no-reply@medappointments.local",
			Subject: "Medical appointment notification",
		},
		Kafka: KafkaConfig{
			Brokers:            []string{"localhost:9092"},
			NotificationsTopic: "appointment-notifications",
			GroupID:            "notification-worker",
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			QueueKey: "queue:notifications:email",
		},
		Console: ConsoleConfig{
			DefaultPatientName: "Unnamed Patient",
			DefaultEmail:       "no.email@example.com",
			DefaultDate:        "2025-01-01",
			DefaultTime:        "09:00",
		},
		Doctor: DoctorConfig{
			ID:        1,
			Name:      "General Doctor",
			Specialty: "General Medicine",
		},
		Worker: WorkerConfig{
			Source:             TransportKafka,
			PollTimeoutSeconds: 5,
		},
	}
}

// LoadConfig reads the YAML file at path over the defaults. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.Notifier.Transport = strings.ToLower(strings.TrimSpace(c.Notifier.Transport))
	switch c.Notifier.Transport {
	case "":
		c.Notifier.Transport = TransportLog
	case TransportLog, TransportSMTP, TransportKafka, TransportRedis:
	default:
		return fmt.Errorf("unknown notifier transport %q", c.Notifier.Transport)
	}

	c.Worker.Source = strings.ToLower(strings.TrimSpace(c.Worker.Source))
	switch c.Worker.Source {
	case TransportKafka, TransportRedis:
	default:
		return fmt.Errorf("unknown worker source %q", c.Worker.Source)
	}

	if c.Notifier.Transport == TransportKafka || c.Worker.Source == TransportKafka {
		if len(c.Kafka.Brokers) == 0 {
			return fmt.Errorf("kafka.brokers is required")
		}
		if c.Kafka.NotificationsTopic == "" {
			return fmt.Errorf("kafka.notifications_topic is required")
		}
	}
	return nil
}
