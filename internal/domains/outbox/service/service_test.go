package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/kafka"
	kafkaMocks "bookly/infras/kafka/mocks"
	"bookly/infras/metrics"
	"bookly/infras/otel/mocks"
	notificationMocks "bookly/internal/domains/notification/mocks"
	outboxMocks "bookly/internal/domains/outbox/mocks"
	"bookly/internal/domains/outbox/model"
	"bookly/internal/domains/outbox/service"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"
)

type stubPublisher struct {
	fail map[string]error
	sent []string
}

func (p *stubPublisher) Publish(_ context.Context, event model.Event) error {
	if err := p.fail[event.ID]; err != nil {
		return err
	}

	p.sent = append(p.sent, event.ID)

	return nil
}

func newEvent(t *testing.T, eventType model.EventType, appointmentID string) model.Event {
	event, err := model.NewAppointmentEvent(eventType, appointmentID, "biz-1", "CONFIRMED", time.Now())
	require.NoError(t, err)

	return event
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Notification.OutboxBatchSize = 50
	cfg.Notification.MaxAttempts = 3
	cfg.Notification.Transport = service.TransportInline
	cfg.Kafka.TopicAppointments = "appointment-events"

	return cfg
}

func TestRelay_RunOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxMocks.NewMockOutbox(ctrl)

	ok := newEvent(t, model.EventAppointmentConfirmed, "appt-1")
	broken := newEvent(t, model.EventAppointmentCancelled, "appt-2")
	broken.Attempts = 1

	publisher := &stubPublisher{fail: map[string]error{broken.ID: errors.New("broker down")}}

	repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
	repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gRepo.LockForUpdateSkipped).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, params gDto.QueryParams, _ gDto.FilterGroup, _ string, _ ...string) ([]model.Event, error) {
			assert.Equal(t, 50, params.Limit)
			assert.Equal(t, gDto.SortDirAsc, params.SortDir)

			return []model.Event{ok, broken}, nil
		})
	repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Contains(t, fields, model.FieldPublishedAt)

			return nil
		})
	repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, 2, fields[model.FieldAttempts])
			assert.Equal(t, "broker down", fields[model.FieldLastError])
			assert.NotContains(t, fields, model.FieldPublishedAt)

			return nil
		})

	relay := service.New(repo, publisher, metrics.New(), testConfig(), mocks.NewOtel())

	res, err := relay.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, service.Result{Published: 1, Failed: 1}, res)
	assert.Equal(t, []string{ok.ID}, publisher.sent)
}

func TestRelay_RunOnce_StorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := outboxMocks.NewMockOutbox(ctrl)

	repo.EXPECT().Transaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(tx *sqlx.Tx) error) error {
			return fn(nil)
		})
	repo.EXPECT().GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	relay := service.New(repo, &stubPublisher{}, nil, testConfig(), mocks.NewOtel())

	_, err := relay.RunOnce(context.Background())
	assert.Error(t, err)
}

func TestPublisher_Inline(t *testing.T) {
	ctrl := gomock.NewController(t)
	notifier := notificationMocks.NewMockNotificationService(ctrl)
	event := newEvent(t, model.EventAppointmentConfirmed, "appt-1")

	notifier.EXPECT().HandleEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, payload model.AppointmentPayload) error {
			assert.Equal(t, event.ID, payload.EventID)
			assert.Equal(t, "appt-1", payload.AppointmentID)
			assert.Equal(t, model.EventAppointmentConfirmed, payload.EventType)

			return nil
		})

	publisher := service.NewPublisher(testConfig(), nil, notifier)
	assert.NoError(t, publisher.Publish(context.Background(), event))
}

func TestPublisher_Kafka(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)
	event := newEvent(t, model.EventAppointmentCancelled, "appt-9")

	cfg := testConfig()
	cfg.Notification.Transport = service.TransportKafka

	client.EXPECT().Publish(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msgs ...kafka.Message) error {
			require.Len(t, msgs, 1)
			assert.Equal(t, "appointment-events", msgs[0].Topic)
			assert.Equal(t, "appt-9", msgs[0].Key)
			assert.JSONEq(t, string(event.Payload), string(msgs[0].Value))

			return nil
		})

	publisher := service.NewPublisher(cfg, client, nil)
	assert.NoError(t, publisher.Publish(context.Background(), event))

	client.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))
	assert.Error(t, publisher.Publish(context.Background(), event))
}
