package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/availability"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"

	"github.com/jmoiron/sqlx"
)

var intervalColumns = []string{model.FieldID, model.FieldStartTime, model.FieldEndTime}

type Appointment interface {
	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Appointment) error
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	BusyIntervals(ctx context.Context, professionalID string, window availability.Interval) ([]availability.Interval, error)
	BusyIntervalsTx(ctx context.Context, sqltx *sqlx.Tx, professionalID string, window availability.Interval) ([]availability.Interval, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.AppointmentDetail, error)
	GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.AppointmentDetail, error)
	CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	details gRepo.Repository[model.AppointmentDetail]
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		details:    gRepo.NewRepository[model.AppointmentDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func toIntervals(appointments []model.Appointment) []availability.Interval {
	intervals := make([]availability.Interval, len(appointments))
	for i, appointment := range appointments {
		intervals[i] = appointment.Interval()
	}

	return intervals
}

// BusyIntervals returns the active bookings of the professional that overlap window.
func (r *repositoryImpl) BusyIntervals(ctx context.Context, professionalID string, window availability.Interval) ([]availability.Interval, error) {
	appointments, err := r.GetAll(ctx, gDto.QueryParams{}, model.BusyFilter(professionalID, window), intervalColumns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load busy intervals: %w", err)
	}

	return toIntervals(appointments), nil
}

// BusyIntervalsTx reads the bookings inside the writer transaction, after the
// professional row has been locked.
func (r *repositoryImpl) BusyIntervalsTx(ctx context.Context, sqltx *sqlx.Tx, professionalID string, window availability.Interval) ([]availability.Interval, error) {
	appointments, err := r.GetAllTx(ctx, sqltx, gDto.QueryParams{}, model.BusyFilter(professionalID, window), gRepo.LockNone, intervalColumns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load busy intervals: %w", err)
	}

	return toIntervals(appointments), nil
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.AppointmentDetail, error) {
	return r.details.Get(ctx, filter)
}

func (r *repositoryImpl) GetDetails(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.AppointmentDetail, error) {
	return r.details.GetAll(ctx, params, filter)
}

func (r *repositoryImpl) CountDetails(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return r.details.Count(ctx, filter)
}
