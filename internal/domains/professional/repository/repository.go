package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"bookly/infras/otel"
	"bookly/infras/postgres"
	"bookly/internal/domains/professional/model"
	gDto "bookly/shared/dto"
	gRepo "bookly/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Professional interface {
	Transaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, sqltx *sqlx.Tx, model model.Professional) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Professional, error)
	GetForUpdateTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Professional, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Professional, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountTx(ctx context.Context, sqltx *sqlx.Tx, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ServiceIDs(ctx context.Context, professionalID string) ([]string, error)
	OffersService(ctx context.Context, professionalID, serviceID string) (bool, error)
	IDsOfferingService(ctx context.Context, businessID, serviceID string) ([]string, error)
	ReplaceServicesTx(ctx context.Context, sqltx *sqlx.Tx, professionalID, businessID string, serviceIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Professional]
	links gRepo.Repository[model.ProfessionalService]
}

func New(db *postgres.Connection, otel otel.Otel) Professional {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Professional](model.EntityName, model.TableName, model.FieldID, db, otel),
		links:      gRepo.NewRepository[model.ProfessionalService](model.ServiceEntityName, model.ServiceTableName, model.FieldProfessionalID, db, otel),
	}
}

func linkFilter(field, value string) gDto.Filter {
	return gDto.Filter{
		Field:    field,
		Value:    value,
		Operator: gDto.FilterOperatorEq,
		Table:    model.ServiceTableName,
	}
}

func (r *repositoryImpl) ServiceIDs(ctx context.Context, professionalID string) ([]string, error) {
	filter := gDto.FilterGroup{Filters: []any{linkFilter(model.FieldProfessionalID, professionalID)}}

	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ServiceID
	}

	return ids, nil
}

func (r *repositoryImpl) OffersService(ctx context.Context, professionalID, serviceID string) (bool, error) {
	return r.links.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			linkFilter(model.FieldProfessionalID, professionalID),
			linkFilter(model.FieldServiceID, serviceID),
		},
	})
}

func (r *repositoryImpl) IDsOfferingService(ctx context.Context, businessID, serviceID string) ([]string, error) {
	links, err := r.links.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			linkFilter(model.FieldBusinessID, businessID),
			linkFilter(model.FieldServiceID, serviceID),
		},
	})
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.ProfessionalID
	}

	return ids, nil
}

func (r *repositoryImpl) ReplaceServicesTx(ctx context.Context, sqltx *sqlx.Tx, professionalID, businessID string, serviceIDs []string) error {
	filter := gDto.FilterGroup{Filters: []any{linkFilter(model.FieldProfessionalID, professionalID)}}

	if err := r.links.DeleteTx(ctx, sqltx, filter); err != nil {
		return fmt.Errorf("failed to clear professional services: %w", err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}

	links := make([]model.ProfessionalService, len(serviceIDs))
	for i, serviceID := range serviceIDs {
		links[i] = model.ProfessionalService{
			ProfessionalID: professionalID,
			ServiceID:      serviceID,
			BusinessID:     businessID,
		}
	}

	return r.links.InsertBulkTx(ctx, sqltx, links)
}
