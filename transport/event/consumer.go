// Package event runs the notification side of the outbox when events travel through Kafka.
package event

import (
	"context"
	"fmt"

	"bookly/config"
	"bookly/infras/kafka"
	notificationService "bookly/internal/domains/notification/service"
	outboxModel "bookly/internal/domains/outbox/model"

	"github.com/rs/zerolog/log"
)

type Consumer struct {
	client   kafka.Client
	notifier notificationService.Notification
	topic    string
}

func NewConsumer(cfg *config.Config, client kafka.Client, notifier notificationService.Notification) *Consumer {
	return &Consumer{
		client:   client,
		notifier: notifier,
		topic:    cfg.Kafka.TopicAppointments,
	}
}

// Run blocks until ctx is done or the reader fails.
func (c *Consumer) Run(ctx context.Context) error {
	log.Info().Str("topic", c.topic).Msg("appointment event consumer started")

	if err := c.client.Consume(ctx, c.topic, c.handle); err != nil {
		return fmt.Errorf("failed to consume %s: %w", c.topic, err)
	}

	return nil
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message) error {
	payload, err := kafka.Decode[outboxModel.AppointmentPayload](msg)
	if err != nil {
		// A malformed message can never succeed; committing it keeps the partition moving.
		log.Error().Err(err).Str("key", msg.Key).Msg("dropping malformed appointment event")

		return nil
	}

	return c.notifier.HandleEvent(ctx, payload)
}
