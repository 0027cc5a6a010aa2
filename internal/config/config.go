package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// API holds configuration for the main identity service.
type API struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"identia"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"change-me"`
	OTPTTL    time.Duration `env:"OTP_TTL" envDefault:"15m"`

	RedisURL string `env:"REDIS_URL" envDefault:"redis://localhost:6379"`

	KafkaBrokers    []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	UserEventsTopic string   `env:"KAFKA_USER_EVENTS_TOPIC" envDefault:"user-events"`
}

// Notifier holds configuration for the notification relay service.
type Notifier struct {
	Port             string `env:"NOTIFIER_PORT" envDefault:"8083"`
	SendGridAPIKey   string `env:"SENDGRID_API_KEY"`
	SendGridFrom     string `env:"SENDGRID_FROM"`
	SendGridFromName string `env:"SENDGRID_FROM_NAME" envDefault:"Identia"`
	TwilioAccountSID string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken  string `env:"TWILIO_AUTH_TOKEN"`
	TwilioFrom       string `env:"TWILIO_PHONE"`
}

// Orchestrator holds configuration for the event consumer.
type Orchestrator struct {
	KafkaBrokers    []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	UserEventsTopic string   `env:"KAFKA_USER_EVENTS_TOPIC" envDefault:"user-events"`
	GroupID         string   `env:"KAFKA_GROUP_ID" envDefault:"notification-orchestrator"`
	NotifierURL     string   `env:"NOTIFIER_URL" envDefault:"http://localhost:8083"`
	Workers         int      `env:"ORCHESTRATOR_WORKERS" envDefault:"4"`
}

func LoadAPI() (*API, error) {
	cfg := &API{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadNotifier() (*Notifier, error) {
	cfg := &Notifier{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadOrchestrator() (*Orchestrator, error) {
	cfg := &Orchestrator{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
