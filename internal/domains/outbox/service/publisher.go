package service

import (
	"context"
	"fmt"

	"bookly/config"
	"bookly/infras/kafka"
	notificationService "bookly/internal/domains/notification/service"
	"bookly/internal/domains/outbox/model"
)

const (
	TransportKafka  = "kafka"
	TransportInline = "inline"
)

// Publisher hands one outbox event to the notification pipeline.
type Publisher interface {
	Publish(ctx context.Context, event model.Event) error
}

// NewPublisher picks the transport configured in NOTIFICATION_TRANSPORT. Anything other
// than kafka delivers in process.
func NewPublisher(cfg *config.Config, client kafka.Client, notifier notificationService.Notification) Publisher {
	if cfg.Notification.Transport == TransportKafka {
		return &kafkaPublisher{client: client, topic: cfg.Kafka.TopicAppointments}
	}

	return &inlinePublisher{notifier: notifier}
}

type kafkaPublisher struct {
	client kafka.Client
	topic  string
}

func (p *kafkaPublisher) Publish(ctx context.Context, event model.Event) error {
	msg := kafka.Message{
		Topic: p.topic,
		Key:   event.AggregateID,
		Value: event.Payload,
	}

	if err := p.client.Publish(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	return nil
}

type inlinePublisher struct {
	notifier notificationService.Notification
}

func (p *inlinePublisher) Publish(ctx context.Context, event model.Event) error {
	payload, err := event.AppointmentPayload()
	if err != nil {
		return err
	}

	if err := p.notifier.HandleEvent(ctx, payload); err != nil {
		return fmt.Errorf("failed to handle event %s: %w", event.ID, err)
	}

	return nil
}
