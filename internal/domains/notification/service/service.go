package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Notification=MockNotificationService

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"bookly/config"
	"bookly/infras/email"
	"bookly/infras/metrics"
	"bookly/infras/otel"
	appointmentModel "bookly/internal/domains/appointment/model"
	appointmentRepo "bookly/internal/domains/appointment/repository"
	"bookly/internal/domains/notification/model"
	"bookly/internal/domains/notification/model/dto"
	"bookly/internal/domains/notification/repository"
	outboxModel "bookly/internal/domains/outbox/model"
	"bookly/shared"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrDelivery wraps a provider failure. It is recorded on the notification row and never
// surfaces to the caller that changed the appointment.
var ErrDelivery = errors.New("notification delivery failed")

type Outcome string

const (
	OutcomeSent    Outcome = "sent"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

const (
	reminderLead   = 24 * time.Hour
	reminder2hLead = 2 * time.Hour
)

type Notification interface {
	Notify(ctx context.Context, kind model.Type, appointmentID string) (Outcome, error)
	HandleEvent(ctx context.Context, payload outboxModel.AppointmentPayload) error
	ListByAppointment(ctx context.Context, appointmentID string) ([]dto.NotificationResponse, error)
	RunReminders(ctx context.Context) (dto.ReminderRunResponse, error)
}

type serviceImpl struct {
	repo            repository.Notification
	appointmentRepo appointmentRepo.Appointment
	sender          email.Sender
	metrics         *metrics.Metrics
	cfg             *config.Config
	otel            otel.Otel
}

func New(
	repo repository.Notification,
	appointmentRepo appointmentRepo.Appointment,
	sender email.Sender,
	metrics *metrics.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Notification {
	return &serviceImpl{
		repo:            repo,
		appointmentRepo: appointmentRepo,
		sender:          sender,
		metrics:         metrics,
		cfg:             cfg,
		otel:            otel,
	}
}

// Notify delivers one message for appointmentID unless one of the same type was already
// sent. Every attempt is recorded. A delivery failure is reported as OutcomeFailed with a
// nil error; only storage failures are returned.
func (s *serviceImpl) Notify(ctx context.Context, kind model.Type, appointmentID string) (outcome Outcome, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Notify")
	defer scope.End()
	defer scope.TraceIfError(err)

	detail, err := s.appointmentRepo.GetDetail(ctx, shared.FilterByID(appointmentID, appointmentModel.FieldID, appointmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment for notification")

		return outcome, fmt.Errorf("failed to get appointment: %w", err)
	}

	if detail.ID == constant.Empty {
		return outcome, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	return s.notify(ctx, kind, detail)
}

func (s *serviceImpl) notify(ctx context.Context, kind model.Type, detail appointmentModel.AppointmentDetail) (Outcome, error) {
	sent, err := s.repo.Exist(ctx, model.AttemptFilter(detail.ID, kind, model.StatusSent))
	if err != nil {
		log.Error().Err(err).Msg("failed to check notification history")

		return OutcomeFailed, fmt.Errorf("failed to check notification history: %w", err)
	}

	if sent {
		log.Debug().Str("appointment_id", detail.ID).Str("type", string(kind)).Msg("notification already sent")

		return OutcomeSkipped, nil
	}

	msg, err := render(kind, detail, s.cfg.App.BaseURL)
	if err != nil {
		return OutcomeFailed, err
	}

	var deliveryErr error
	if detail.CustomerEmail == constant.Empty {
		deliveryErr = email.ErrNoRecipient
	} else {
		deliveryErr = s.sender.Send(ctx, email.Message{
			To:      detail.CustomerEmail,
			ToName:  detail.CustomerName,
			Subject: msg.subject,
			HTML:    msg.html,
		})
	}

	record := model.Notification{
		ID:            uuid.NewString(),
		AppointmentID: detail.ID,
		BusinessID:    detail.BusinessID,
		Type:          kind,
		Channel:       model.ChannelEmail,
		Provider:      s.sender.Provider(),
		Recipient:     detail.CustomerEmail,
		Subject:       msg.subject,
		Status:        model.StatusSent,
		CreatedAt:     timezone.Now(),
	}

	outcome := OutcomeSent

	if deliveryErr != nil {
		deliveryErr = fmt.Errorf("%w: %w", ErrDelivery, deliveryErr)
		record.Status = model.StatusFailed
		record.Error = deliveryErr.Error()
		outcome = OutcomeFailed

		log.Error().Err(deliveryErr).
			Str("appointment_id", detail.ID).
			Str("type", string(kind)).
			Msg("failed to deliver notification")
	}

	s.metrics.NotificationDelivered(string(kind), string(record.Status))

	if err = s.repo.Insert(ctx, record); err != nil {
		log.Error().Err(err).Msg("failed to record notification")

		return outcome, fmt.Errorf("failed to record notification: %w", err)
	}

	return outcome, nil
}

// HandleEvent maps an appointment event to its notification. Unknown event types are ignored.
func (s *serviceImpl) HandleEvent(ctx context.Context, payload outboxModel.AppointmentPayload) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".HandleEvent")
	defer scope.End()
	defer scope.TraceIfError(err)

	var kind model.Type

	switch payload.EventType {
	case outboxModel.EventAppointmentConfirmed:
		kind = model.TypeConfirmation
	case outboxModel.EventAppointmentCancelled:
		kind = model.TypeCancellation
	default:
		log.Warn().Str("event_type", string(payload.EventType)).Msg("ignoring unknown appointment event")

		return nil
	}

	outcome, err := s.Notify(ctx, kind, payload.AppointmentID)
	if err != nil && failure.GetCode(err) == http.StatusNotFound {
		log.Warn().Str("appointment_id", payload.AppointmentID).Msg("appointment of event no longer exists")

		return nil
	}

	if err != nil {
		return err
	}

	log.Info().
		Str("event_id", payload.EventID).
		Str("appointment_id", payload.AppointmentID).
		Str("outcome", string(outcome)).
		Msg("handled appointment event")

	return nil
}

func (s *serviceImpl) ListByAppointment(ctx context.Context, appointmentID string) (res []dto.NotificationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByAppointment")
	defer scope.End()
	defer scope.TraceIfError(err)

	exist, err := s.appointmentRepo.Exist(ctx, shared.FilterByIDInBusiness(appointmentID, shared.BusinessIDFromContext(ctx), appointmentModel.FieldID, appointmentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check appointment")

		return res, fmt.Errorf("failed to check appointment: %w", err)
	}

	if !exist {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	params := gDto.QueryParams{SortBy: model.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	notifications, err := s.repo.GetAll(ctx, params, model.ByAppointment(appointmentID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get notifications")

		return res, fmt.Errorf("failed to get notifications: %w", err)
	}

	return dto.FromModels(notifications), nil
}
