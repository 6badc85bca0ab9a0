package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/kafka"
	kafkaMocks "bookly/infras/kafka/mocks"
	notificationMocks "bookly/internal/domains/notification/mocks"
	outboxModel "bookly/internal/domains/outbox/model"
	"bookly/transport/event"
)

func TestConsumer_Run(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	notifier := notificationMocks.NewMockNotificationService(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.TopicAppointments = "appointment-events"

	notifier.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload outboxModel.AppointmentPayload) error {
			assert.Equal(t, "appt-1", payload.AppointmentID)
			assert.Equal(t, outboxModel.EventAppointmentConfirmed, payload.EventType)

			return nil
		})

	client.EXPECT().Consume(gomock.Any(), "appointment-events", gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string, handler kafka.Handler) error {
			good := kafka.Message{Key: "appt-1", Value: []byte(`{"event_type":"appointment.confirmed","appointment_id":"appt-1"}`)}
			assert.NoError(t, handler(ctx, good))

			malformed := kafka.Message{Key: "appt-2", Value: []byte(`not json`)}
			assert.NoError(t, handler(ctx, malformed))

			return nil
		})

	assert.NoError(t, event.NewConsumer(cfg, client, notifier).Run(context.Background()))

	client.EXPECT().Consume(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("group coordinator not available"))
	assert.Error(t, event.NewConsumer(cfg, client, notifier).Run(context.Background()))
}
