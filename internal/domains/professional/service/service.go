package service

import (
	"context"
	"fmt"

	"bookly/config"
	"bookly/infras/otel"
	businessModel "bookly/internal/domains/business/model"
	businessRepo "bookly/internal/domains/business/repository"
	catalogModel "bookly/internal/domains/catalog/model"
	catalogRepo "bookly/internal/domains/catalog/repository"
	"bookly/internal/domains/plan"
	"bookly/internal/domains/professional/model"
	"bookly/internal/domains/professional/model/dto"
	"bookly/internal/domains/professional/repository"
	"bookly/shared"
	"bookly/shared/cache"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	gRepo "bookly/shared/repository"
	"bookly/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProfessional    = "professional:get"
	cacheGetAllProfessional = "professional:gets"
	cacheCountProfessional  = "professional:count"
)

type Professional interface {
	Create(ctx context.Context, req dto.CreateProfessionalRequest) (dto.ProfessionalResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProfessionalsResponse, error)
	Get(ctx context.Context, id string) (dto.ProfessionalResponse, error)
	Update(ctx context.Context, req dto.UpdateProfessionalRequest, id string) error
	Delete(ctx context.Context, id string) error
	AssignServices(ctx context.Context, req dto.AssignServicesRequest, id string) error
	UpdateWorkingHours(ctx context.Context, req dto.UpdateWorkingHoursRequest, id string) error
	ListPublic(ctx context.Context, businessID, serviceID string) ([]dto.PublicProfessionalResponse, error)
}

type serviceImpl struct {
	repo         repository.Professional
	businessRepo businessRepo.Business
	catalogRepo  catalogRepo.Catalog
	gate         *plan.Gate
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Professional,
	businessRepo businessRepo.Business,
	catalogRepo catalogRepo.Catalog,
	gate *plan.Gate,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Professional {
	return &serviceImpl{
		repo:         repo,
		businessRepo: businessRepo,
		catalogRepo:  catalogRepo,
		gate:         gate,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

func activeProfessionals(businessID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterByBusiness(businessID, model.TableName),
			gDto.Filter{
				Field:    model.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Create adds a professional when the business plan allows another active one. The
// business row is locked so concurrent creates cannot both pass the gate.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProfessionalRequest) (res dto.ProfessionalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)

	if err = s.ensureServices(ctx, businessID, req.ServiceIDs); err != nil {
		return res, err
	}

	professional := req.ToModel(businessID, shared.UserIDFromContext(ctx))

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		business, err := s.businessRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock business: %w", err)
		}

		if business.ID == constant.Empty {
			return failure.NotFound("business not found")
		}

		current, err := s.repo.CountTx(ctx, tx, activeProfessionals(businessID))
		if err != nil {
			return fmt.Errorf("failed to count professionals: %w", err)
		}

		decision := s.gate.Check(business.Subscription(), plan.ResourceProfessionals, current, timezone.Now())
		if !decision.Allowed {
			log.Info().Str("business_id", businessID).Int("limit", decision.Limit).Msg("professional limit reached")

			return decision.Err(plan.ResourceProfessionals)
		}

		if err := s.repo.InsertTx(ctx, tx, professional); err != nil {
			return fmt.Errorf("failed to create professional: %w", err)
		}

		return s.repo.ReplaceServicesTx(ctx, tx, professional.ID, businessID, req.ServiceIDs)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create professional")

		return res, err
	}

	s.invalidate(ctx, businessID, professional.ID)

	res.FromModel(professional)
	res.ServiceIDs = req.ServiceIDs

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProfessionalsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllProfessional, businessID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for professionals")

		return res, nil
	}

	scoped := shared.ScopeToBusiness(filter, businessID, model.TableName)

	total, err := s.repo.Count(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count professionals")

		return res, fmt.Errorf("failed to count professionals: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get professionals")

		return res, fmt.Errorf("failed to get professionals: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save professionals to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProfessionalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetProfessional, businessID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for professional")

		return res, nil
	}

	professional, err := s.repo.Get(ctx, shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get professional")

		return res, fmt.Errorf("failed to get professional: %w", err)
	}

	if professional.ID == constant.Empty {
		return res, failure.NotFound("professional not found") // nolint:wrapcheck
	}

	serviceIDs, err := s.repo.ServiceIDs(ctx, professional.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get professional services")

		return res, fmt.Errorf("failed to get professional services: %w", err)
	}

	res.FromModel(professional)
	res.ServiceIDs = serviceIDs

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save professional to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProfessionalRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check professional existence")

		return fmt.Errorf("failed to check professional existence: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("professional not found") // nolint:wrapcheck
	}

	// Reactivation counts against the plan like a create.
	if req.Active != nil && *req.Active && !current.Active {
		if err = s.checkProfessionalLimit(ctx, businessID); err != nil {
			return err
		}
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, shared.UserIDFromContext(ctx)), filter); err != nil {
		log.Error().Err(err).Msg("failed to update professional")

		return fmt.Errorf("failed to update professional: %w", err)
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if professional exists")

		return fmt.Errorf("failed to check if professional exists: %w", err)
	}

	if !exist {
		return failure.NotFound("professional not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsPqCode(err, constant.PqErrorCodeFkViolation) {
			return failure.Conflict("professional has appointments, deactivate it instead") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete professional")

		return fmt.Errorf("failed to delete professional: %w", err)
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

// AssignServices replaces the set of services the professional performs.
func (s *serviceImpl) AssignServices(ctx context.Context, req dto.AssignServicesRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AssignServices")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)

	if err = s.ensureServices(ctx, businessID, req.ServiceIDs); err != nil {
		return err
	}

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		professional, err := s.repo.GetForUpdateTx(ctx, tx, shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName))
		if err != nil {
			return fmt.Errorf("failed to lock professional: %w", err)
		}

		if professional.ID == constant.Empty {
			return failure.NotFound("professional not found")
		}

		return s.repo.ReplaceServicesTx(ctx, tx, id, businessID, req.ServiceIDs)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to assign services")

		return err
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

func (s *serviceImpl) UpdateWorkingHours(ctx context.Context, req dto.UpdateWorkingHoursRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateWorkingHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.WorkingHours.Validate(); err != nil {
		return failure.BadRequest(err) // nolint:wrapcheck
	}

	businessID := shared.BusinessIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check if professional exists: %w", err)
	}

	if !exist {
		return failure.NotFound("professional not found") // nolint:wrapcheck
	}

	fields := map[string]any{
		model.FieldWorkingHours:  req.WorkingHours,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.UserIDFromContext(ctx),
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update professional working hours")

		return fmt.Errorf("failed to update professional working hours: %w", err)
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

// ListPublic returns active professionals, optionally only those offering serviceID.
func (s *serviceImpl) ListPublic(ctx context.Context, businessID, serviceID string) (res []dto.PublicProfessionalResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListPublic")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := activeProfessionals(businessID)

	if serviceID != constant.Empty {
		ids, err := s.repo.IDsOfferingService(ctx, businessID, serviceID)
		if err != nil {
			log.Error().Err(err).Msg("failed to get professionals for service")

			return nil, fmt.Errorf("failed to get professionals for service: %w", err)
		}

		if len(ids) == 0 {
			return []dto.PublicProfessionalResponse{}, nil
		}

		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldID,
			Value:    ids,
			Operator: gDto.FilterOperatorIn,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.FieldName, SortDir: gDto.SortDirAsc}

	models, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list professionals")

		return nil, fmt.Errorf("failed to list professionals: %w", err)
	}

	res = make([]dto.PublicProfessionalResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	return res, nil
}

func (s *serviceImpl) checkProfessionalLimit(ctx context.Context, businessID string) error {
	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to get business: %w", err)
	}

	current, err := s.repo.Count(ctx, activeProfessionals(businessID))
	if err != nil {
		return fmt.Errorf("failed to count professionals: %w", err)
	}

	decision := s.gate.Check(business.Subscription(), plan.ResourceProfessionals, current, timezone.Now())
	if !decision.Allowed {
		return decision.Err(plan.ResourceProfessionals)
	}

	return nil
}

// ensureServices rejects service ids that do not belong to the business.
func (s *serviceImpl) ensureServices(ctx context.Context, businessID string, serviceIDs []string) error {
	if len(serviceIDs) == 0 {
		return nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterByBusiness(businessID, catalogModel.TableName),
			gDto.Filter{
				Field:    catalogModel.FieldID,
				Value:    serviceIDs,
				Operator: gDto.FilterOperatorIn,
				Table:    catalogModel.TableName,
			},
		},
	}

	count, err := s.catalogRepo.Count(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check services: %w", err)
	}

	if count != len(uniq(serviceIDs)) {
		return failure.NotFound("service not found") // nolint:wrapcheck
	}

	return nil
}

func uniq(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}

	return set
}

func (s *serviceImpl) invalidate(ctx context.Context, businessID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProfessional, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete professional from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllProfessional, businessID))
		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheCountProfessional, businessID))
	}()
}
