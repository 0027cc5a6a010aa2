// Package events publishes user lifecycle events to Kafka for the
// notification orchestrator to consume.
package events

import (
	"context"
	"encoding/json"
	"time"

	kafka "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const (
	TypeUserRegistered  = "user.registered"
	TypeOTPRequested    = "otp.requested"
	TypePasswordChanged = "password.changed"
)

// Event is the wire payload on the user-events topic, keyed by email.
type Event struct {
	Type  string    `json:"type"`
	Email string    `json:"email"`
	Name  string    `json:"name,omitempty"`
	Phone string    `json:"phone,omitempty"`
	Code  string    `json:"code,omitempty"`
	At    time.Time `json:"at"`
}

// Publisher is what producers look like to the rest of the system.
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
}

type Producer struct {
	writer *kafka.Writer
	log    *zap.Logger
}

func NewProducer(brokers []string, topic string, log *zap.Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		log: log,
	}
}

func (p *Producer) Publish(ctx context.Context, evt Event) error {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Email),
		Value: payload,
	}); err != nil {
		p.log.Error("failed to publish event",
			zap.String("type", evt.Type),
			zap.String("email", evt.Email),
			zap.Error(err))
		return err
	}

	p.log.Info("event published",
		zap.String("type", evt.Type),
		zap.String("email", evt.Email))
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
