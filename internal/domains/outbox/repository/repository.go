package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/internal/domains/outbox/model"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Outbox interface {
	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Event) error
	GetAllTx(ctx context.Context, sqltx *sqlx.Tx, params gDto.QueryParams, filter gDto.FilterGroup, lock string, columns ...string) ([]model.Event, error)
	UpdateTx(ctx context.Context, sqltx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Event]
}

func New(db *postgres.Connection, otel otel.Otel) Outbox {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Event](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// PendingFilter selects events the relay has not published yet and that are still
// below the attempt ceiling.
func PendingFilter(maxAttempts int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldPublishedAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "max_attempts",
				Field:    model.FieldAttempts,
				Value:    maxAttempts - 1,
				Operator: gDto.FilterOperatorLessEq,
				Table:    model.TableName,
			},
		},
	}
}
