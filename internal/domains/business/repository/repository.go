package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/internal/domains/business/model"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Business interface {
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Business) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Business, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Business, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Business, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Business]
}

func New(db *postgres.Connection, otel otel.Otel) Business {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Business](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
