package service

import (
	"context"
	"fmt"
	"time"

	appointmentModel "bookly/internal/domains/appointment/model"
	"bookly/internal/domains/notification/model"
	"bookly/internal/domains/notification/model/dto"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type reminderWindow struct {
	kind     model.Type
	from, to time.Time
}

func reminderWindows(now time.Time) []reminderWindow {
	return []reminderWindow{
		{kind: model.TypeReminder, from: now.Add(reminder2hLead), to: now.Add(reminderLead)},
		{kind: model.TypeReminder2h, from: now, to: now.Add(reminder2hLead)},
	}
}

// RunReminders sends the due reminders of both windows. Items are handled one at a time and
// a failing item never stops the batch.
func (s *serviceImpl) RunReminders(ctx context.Context) (res dto.ReminderRunResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".RunReminders")
	defer scope.End()
	defer scope.TraceIfError(err)

	started := time.Now()
	defer func() { s.metrics.ReminderBatchObserved(time.Since(started)) }()

	params := gDto.QueryParams{
		SortBy:  appointmentModel.TableName + "." + appointmentModel.FieldStartTime,
		SortDir: gDto.SortDirAsc,
	}

	for _, window := range reminderWindows(timezone.Now()) {
		due, err := s.appointmentRepo.GetDetails(ctx, params, appointmentModel.UpcomingFilter(window.from, window.to))
		if err != nil {
			log.Error().Err(err).Str("type", string(window.kind)).Msg("failed to get due appointments")

			return res, fmt.Errorf("failed to get due appointments: %w", err)
		}

		for _, detail := range due {
			res.Processed++

			switch s.remind(ctx, window.kind, detail) {
			case OutcomeSent:
				res.Sent++
			case OutcomeFailed:
				res.Failed++
			case OutcomeSkipped:
				res.Skipped++
			}
		}
	}

	log.Info().
		Int("processed", res.Processed).
		Int("sent", res.Sent).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Msg("reminder run finished")

	return res, nil
}

func (s *serviceImpl) remind(ctx context.Context, kind model.Type, detail appointmentModel.AppointmentDetail) Outcome {
	failures, err := s.repo.Count(ctx, model.AttemptFilter(detail.ID, kind, model.StatusFailed))
	if err != nil {
		log.Error().Err(err).Str("appointment_id", detail.ID).Msg("failed to count reminder attempts")

		return OutcomeFailed
	}

	if failures >= s.cfg.Notification.MaxAttempts {
		return OutcomeSkipped
	}

	outcome, err := s.notify(ctx, kind, detail)
	if err != nil {
		log.Error().Err(err).Str("appointment_id", detail.ID).Msg("failed to send reminder")

		return OutcomeFailed
	}

	return outcome
}
