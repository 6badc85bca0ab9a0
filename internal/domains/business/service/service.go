package service

import (
	"context"
	"fmt"

	"bookly/config"
	"bookly/infras/otel"
	"bookly/infras/s3"
	appointmentModel "bookly/internal/domains/appointment/model"
	appointmentRepo "bookly/internal/domains/appointment/repository"
	"bookly/internal/domains/business/model"
	"bookly/internal/domains/business/model/dto"
	"bookly/internal/domains/business/repository"
	"bookly/internal/domains/plan"
	professionalModel "bookly/internal/domains/professional/model"
	professionalRepo "bookly/internal/domains/professional/repository"
	"bookly/shared"
	"bookly/shared/base64"
	"bookly/shared/cache"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBusiness       = "business:get"
	cacheGetBusinessBySlug = "business:slug"

	logoDirectory = "logos"
	usageMonth    = "2006-01"
)

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

type Business interface {
	Get(ctx context.Context) (dto.BusinessResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PublicBusinessResponse, error)
	Update(ctx context.Context, req dto.UpdateBusinessRequest) error
	UpdateWorkingHours(ctx context.Context, req dto.UpdateWorkingHoursRequest) error
	UploadLogo(ctx context.Context, req dto.UploadLogoRequest) (dto.LogoResponse, error)
	Usage(ctx context.Context) (dto.UsageResponse, error)
	SetPlan(ctx context.Context, req dto.SetPlanRequest, id string) error
}

type serviceImpl struct {
	repo             repository.Business
	professionalRepo professionalRepo.Professional
	appointmentRepo  appointmentRepo.Appointment
	gate             *plan.Gate
	storage          s3.S3
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.Business,
	professionalRepo professionalRepo.Professional,
	appointmentRepo appointmentRepo.Appointment,
	gate *plan.Gate,
	storage s3.S3,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Business {
	return &serviceImpl{
		repo:             repo,
		professionalRepo: professionalRepo,
		appointmentRepo:  appointmentRepo,
		gate:             gate,
		storage:          storage,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res dto.BusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetBusiness, businessID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for business")

		return res, nil
	}

	business, err := s.load(ctx, shared.FilterByID(businessID, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(business)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business to cache")
		}
	}()

	return res, nil
}

// GetBySlug resolves the public booking page of a business.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.PublicBusinessResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetBusinessBySlug, slug)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for business slug")

		return res, nil
	}

	business, err := s.load(ctx, shared.FilterByID(slug, model.FieldSlug, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(business)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save business slug to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) load(ctx context.Context, filter gDto.FilterGroup) (model.Business, error) {
	business, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return business, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return business, failure.NotFound("business not found") // nolint:wrapcheck
	}

	return business, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBusinessRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.update(ctx, shared.BusinessIDFromContext(ctx), shared.TransformFields(req, shared.UserIDFromContext(ctx)))
}

func (s *serviceImpl) UpdateWorkingHours(ctx context.Context, req dto.UpdateWorkingHoursRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateWorkingHours")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = req.WorkingHours.Validate(); err != nil {
		return failure.BadRequest(err)
	}

	fields := map[string]any{
		model.FieldWorkingHours:  req.WorkingHours,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.UserIDFromContext(ctx),
	}

	return s.update(ctx, shared.BusinessIDFromContext(ctx), fields)
}

// UploadLogo stores the decoded data URL and replaces the previous logo. Removing the old
// object is best effort.
func (s *serviceImpl) UploadLogo(ctx context.Context, req dto.UploadLogoRequest) (res dto.LogoResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadLogo")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)

	contentType, data, err := base64.Decode(req.Logo)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	ext, ok := logoExtensions[contentType]
	if !ok {
		return res, failure.BadRequestFromString("logo must be a png, jpeg or webp image")
	}

	business, err := s.load(ctx, shared.FilterByID(businessID, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	url, err := s.storage.UploadFileBytes(ctx, logoDirectory+"/"+businessID, uuid.NewString()+ext, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload logo")

		return res, fmt.Errorf("failed to upload logo: %w", err)
	}

	fields := map[string]any{
		model.FieldLogoURL:       url,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: shared.UserIDFromContext(ctx),
	}

	if err = s.update(ctx, businessID, fields); err != nil {
		return res, err
	}

	if key := s.storage.ObjectKeyFromURL(business.LogoURL); key != constant.Empty {
		if err := s.storage.DeleteFile(ctx, key); err != nil {
			log.Warn().Err(err).Str("object_key", key).Msg("failed to delete previous logo")
		}
	}

	res.LogoURL = url

	return res, nil
}

// Usage reports the current counts against the plan ceilings. The appointment count covers
// the current calendar month in the business timezone.
func (s *serviceImpl) Usage(ctx context.Context) (res dto.UsageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Usage")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)

	business, err := s.load(ctx, shared.FilterByID(businessID, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	today := timezone.Today(now, business.Location())

	professionals, err := s.professionalRepo.Count(ctx, activeProfessionals(businessID))
	if err != nil {
		log.Error().Err(err).Msg("failed to count professionals")

		return res, fmt.Errorf("failed to count professionals: %w", err)
	}

	appointments, err := s.appointmentRepo.Count(ctx, appointmentModel.MonthlyUsageFilter(businessID, today))
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	sub := business.Subscription()

	res.Plan = s.gate.EffectiveTier(sub, now)
	res.PlanStatus = business.PlanStatus
	res.Month = today.Format(usageMonth)
	res.Professionals = dto.NewResourceUsage(s.gate.Check(sub, plan.ResourceProfessionals, professionals, now))
	res.Appointments = dto.NewResourceUsage(s.gate.Check(sub, plan.ResourceAppointments, appointments, now))

	return res, nil
}

func activeProfessionals(businessID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			shared.FilterByBusiness(businessID, professionalModel.TableName),
			gDto.Filter{
				Field:    professionalModel.FieldActive,
				Value:    true,
				Operator: gDto.FilterOperatorEq,
				Table:    professionalModel.TableName,
			},
		},
	}
}

// SetPlan is called by internal tooling or a billing webhook to change the subscription.
func (s *serviceImpl) SetPlan(ctx context.Context, req dto.SetPlanRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetPlan")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.update(ctx, id, shared.TransformFields(req, constant.ContextSystem))
}

func (s *serviceImpl) update(ctx context.Context, businessID string, fields map[string]any) error {
	filter := shared.FilterByID(businessID, model.FieldID, model.TableName)

	business, err := s.load(ctx, filter)
	if err != nil {
		return err
	}

	if err = s.repo.Update(ctx, fields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update business")

		return fmt.Errorf("failed to update business: %w", err)
	}

	s.invalidate(ctx, business)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, business model.Business) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusiness, business.ID)); err != nil {
			log.Error().Err(err).Msg("failed to delete business from cache")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetBusinessBySlug, business.Slug)); err != nil {
			log.Error().Err(err).Msg("failed to delete business slug from cache")
		}
	}()
}
