package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/email"
	emailMocks "bookly/infras/email/mocks"
	"bookly/infras/metrics"
	"bookly/infras/otel/mocks"
	appointmentMocks "bookly/internal/domains/appointment/mocks"
	appointmentModel "bookly/internal/domains/appointment/model"
	notificationMocks "bookly/internal/domains/notification/mocks"
	"bookly/internal/domains/notification/model"
	"bookly/internal/domains/notification/service"
	outboxModel "bookly/internal/domains/outbox/model"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
)

type fixture struct {
	svc             service.Notification
	repo            *notificationMocks.MockNotification
	appointmentRepo *appointmentMocks.MockAppointment
	sender          *emailMocks.MockSender
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:            notificationMocks.NewMockNotification(ctrl),
		appointmentRepo: appointmentMocks.NewMockAppointment(ctrl),
		sender:          emailMocks.NewMockSender(ctrl),
	}

	f.sender.EXPECT().Provider().Return(email.ProviderStub).AnyTimes()

	cfg := &config.Config{}
	cfg.App.BaseURL = "https://book.example.com"
	cfg.Notification.MaxAttempts = 3

	f.svc = service.New(f.repo, f.appointmentRepo, f.sender, metrics.New(), cfg, mocks.NewOtel())

	return f
}

func confirmedAppointment(id string) appointmentModel.AppointmentDetail {
	start := time.Date(2030, 6, 10, 17, 30, 0, 0, time.UTC)

	return appointmentModel.AppointmentDetail{
		Appointment: appointmentModel.Appointment{
			ID:         id,
			BusinessID: "biz-1",
			StartTime:  start,
			EndTime:    start.Add(45 * time.Minute),
			Status:     appointmentModel.StatusConfirmed,
		},
		CustomerName:              "Ana",
		CustomerEmail:             "ana@example.com",
		ServiceName:               "Haircut",
		ProfessionalName:          "Bruno",
		BusinessName:              "Studio",
		BusinessSlug:              "studio",
		BusinessTimezone:          "America/Sao_Paulo",
		BusinessCancellationHours: 24,
	}
}

func appointmentOf(filter gDto.FilterGroup) string {
	first, _ := filter.Filters[0].(gDto.Filter)
	id, _ := first.Value.(string)

	return id
}

func TestNotificationService_Notify(t *testing.T) {
	tests := []struct {
		name        string
		setupMock   func(f fixture)
		wantOutcome service.Outcome
		wantCode    int
	}{
		{
			name: "sends and records the confirmation",
			setupMock: func(f fixture) {
				f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(confirmedAppointment("appt-1"), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, msg email.Message) error {
						assert.Equal(t, "ana@example.com", msg.To)
						assert.Equal(t, "Your appointment at Studio is confirmed", msg.Subject)
						assert.Contains(t, msg.HTML, "14:30")
						assert.Contains(t, msg.HTML, "Monday, 10 June 2030")

						return nil
					})
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n model.Notification) error {
						assert.Equal(t, model.StatusSent, n.Status)
						assert.Equal(t, model.TypeConfirmation, n.Type)
						assert.Equal(t, model.ChannelEmail, n.Channel)
						assert.Empty(t, n.Error)

						return nil
					})
			},
			wantOutcome: service.OutcomeSent,
		},
		{
			name: "provider failure is recorded and not returned",
			setupMock: func(f fixture) {
				f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(confirmedAppointment("appt-1"), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("smtp: connection refused"))
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n model.Notification) error {
						assert.Equal(t, model.StatusFailed, n.Status)
						assert.True(t, strings.HasPrefix(n.Error, service.ErrDelivery.Error()))
						assert.Contains(t, n.Error, "connection refused")

						return nil
					})
			},
			wantOutcome: service.OutcomeFailed,
		},
		{
			name: "customer without email records a failed notification",
			setupMock: func(f fixture) {
				detail := confirmedAppointment("appt-1")
				detail.CustomerEmail = constant.Empty

				f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(detail, nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, n model.Notification) error {
						assert.Equal(t, model.StatusFailed, n.Status)
						assert.Contains(t, n.Error, email.ErrNoRecipient.Error())

						return nil
					})
			},
			wantOutcome: service.OutcomeFailed,
		},
		{
			name: "already sent is skipped",
			setupMock: func(f fixture) {
				f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(confirmedAppointment("appt-1"), nil)
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantOutcome: service.OutcomeSkipped,
		},
		{
			name: "missing appointment",
			setupMock: func(f fixture) {
				f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(appointmentModel.AppointmentDetail{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			outcome, err := f.svc.Notify(context.Background(), model.TypeConfirmation, "appt-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantOutcome, outcome)
		})
	}
}

func TestNotificationService_HandleEvent(t *testing.T) {
	f := newFixture(t)

	f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(confirmedAppointment("appt-1"), nil)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, msg email.Message) error {
			assert.Equal(t, "Your appointment at Studio was cancelled", msg.Subject)
			assert.Contains(t, msg.HTML, "https://book.example.com/studio")

			return nil
		})
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)

	err := f.svc.HandleEvent(context.Background(), outboxModel.AppointmentPayload{
		EventType:     outboxModel.EventAppointmentCancelled,
		AppointmentID: "appt-1",
	})
	require.NoError(t, err)

	assert.NoError(t, f.svc.HandleEvent(context.Background(), outboxModel.AppointmentPayload{EventType: "appointment.archived"}))

	f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(appointmentModel.AppointmentDetail{}, nil)
	assert.NoError(t, f.svc.HandleEvent(context.Background(), outboxModel.AppointmentPayload{
		EventType:     outboxModel.EventAppointmentConfirmed,
		AppointmentID: "gone",
	}))

	f.appointmentRepo.EXPECT().GetDetail(gomock.Any(), gomock.Any()).Return(appointmentModel.AppointmentDetail{}, errors.New("connection reset"))
	assert.Error(t, f.svc.HandleEvent(context.Background(), outboxModel.AppointmentPayload{
		EventType:     outboxModel.EventAppointmentConfirmed,
		AppointmentID: "appt-1",
	}))
}

func TestNotificationService_ListByAppointment(t *testing.T) {
	f := newFixture(t)
	ctx := context.WithValue(context.Background(), constant.ContextKeyBusinessID, "biz-1")

	f.appointmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.svc.ListByAppointment(ctx, "other-tenant")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	f.appointmentRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Notification, error) {
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)
			assert.Equal(t, "appt-1", appointmentOf(filter))

			return []model.Notification{
				{ID: "n-2", Type: model.TypeReminder, Status: model.StatusFailed, Error: "boom"},
				{ID: "n-1", Type: model.TypeConfirmation, Status: model.StatusSent},
			}, nil
		})

	res, err := f.svc.ListByAppointment(ctx, "appt-1")
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, "n-2", res[0].ID)
	assert.Equal(t, "boom", res[0].Error)
}

func TestNotificationService_RunReminders(t *testing.T) {
	f := newFixture(t)

	f.appointmentRepo.EXPECT().GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).Return([]appointmentModel.AppointmentDetail{
		confirmedAppointment("due"),
		confirmedAppointment("exhausted"),
		confirmedAppointment("already-sent"),
	}, nil)
	f.appointmentRepo.EXPECT().GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).Return([]appointmentModel.AppointmentDetail{
		confirmedAppointment("bouncing"),
	}, nil)

	failures := map[string]int{"exhausted": 3, "bouncing": 1}
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			return failures[appointmentOf(filter)], nil
		}).Times(4)
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
			return appointmentOf(filter) == "already-sent", nil
		}).Times(3)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(nil)
	f.sender.EXPECT().Send(gomock.Any(), gomock.Any()).Return(errors.New("mailbox full"))
	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.svc.RunReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 4, res.Processed)
	assert.Equal(t, 1, res.Sent)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 2, res.Skipped)
}

func TestNotificationService_RunReminders_StorageFailure(t *testing.T) {
	f := newFixture(t)

	f.appointmentRepo.EXPECT().GetDetails(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))

	_, err := f.svc.RunReminders(context.Background())
	assert.Error(t, err)
}
