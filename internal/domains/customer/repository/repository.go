package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/internal/domains/customer/model"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/logger"
	gRepo "bookly/shared/repository"

	"github.com/jmoiron/sqlx"
)

// upsertByPhoneQuery refreshes name and a non-empty email of a returning customer.
const upsertByPhoneQuery = `INSERT INTO customers (id, business_id, name, phone, email, notes, created_at, modified_at, created_by, modified_by)
VALUES (:id, :business_id, :name, :phone, :email, :notes, :created_at, :modified_at, :created_by, :modified_by)
ON CONFLICT (business_id, phone) DO UPDATE SET
	name = EXCLUDED.name,
	email = COALESCE(NULLIF(EXCLUDED.email, ''), customers.email),
	modified_at = EXCLUDED.modified_at,
	modified_by = EXCLUDED.modified_by
RETURNING id, business_id, name, phone, email, notes, created_at, modified_at, created_by, modified_by`

type Customer interface {
	Insert(ctx context.Context, model model.Customer) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Customer, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Customer, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	UpsertByPhoneTx(ctx context.Context, sqltx *sqlx.Tx, customer model.Customer) (model.Customer, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Customer]
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Customer {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Customer](model.EntityName, model.TableName, model.FieldID, db, otel),
		otel:       otel,
	}
}

// UpsertByPhoneTx inserts the customer or, when the phone is already known to the
// business, refreshes the stored row. The stored row is returned either way.
func (r *repositoryImpl) UpsertByPhoneTx(ctx context.Context, sqltx *sqlx.Tx, customer model.Customer) (res model.Customer, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".customer.UpsertByPhoneTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, upsertByPhoneQuery)

	stmt, err := sqltx.PrepareNamedContext(ctx, upsertByPhoneQuery)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to prepare statement (customer): %w", err)
	}
	defer stmt.Close()

	if err = stmt.GetContext(ctx, &res, customer); err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to upsert customer: %w", err)
	}

	return res, nil
}
