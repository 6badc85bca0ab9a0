package service

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"bookly/config"
	"bookly/infras/metrics"
	"bookly/infras/otel"
	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/appointment/model/dto"
	"bookly/internal/domains/appointment/repository"
	"bookly/internal/domains/availability"
	businessModel "bookly/internal/domains/business/model"
	businessRepo "bookly/internal/domains/business/repository"
	catalogModel "bookly/internal/domains/catalog/model"
	catalogRepo "bookly/internal/domains/catalog/repository"
	customerModel "bookly/internal/domains/customer/model"
	customerRepo "bookly/internal/domains/customer/repository"
	outboxModel "bookly/internal/domains/outbox/model"
	outboxRepo "bookly/internal/domains/outbox/repository"
	"bookly/internal/domains/plan"
	professionalModel "bookly/internal/domains/professional/model"
	professionalRepo "bookly/internal/domains/professional/repository"
	"bookly/shared"
	"bookly/shared/cache"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	gModel "bookly/shared/model"
	gRepo "bookly/shared/repository"
	"bookly/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
)

var (
	errPastDate        = failure.BadRequestFromString("date must not be in the past")
	errServiceNotOffer = failure.BadRequestFromString("professional does not offer this service")
	errAppointmentDone = failure.BadRequestFromString("appointment can no longer be changed")
)

type Appointment interface {
	Create(ctx context.Context, req dto.CreateAppointmentRequest) (dto.AppointmentResponse, error)
	Book(ctx context.Context, businessID string, req dto.BookAppointmentRequest) (dto.AppointmentResponse, error)
	Slots(ctx context.Context, query dto.SlotQuery) (iter.Seq[availability.Slot], error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, req dto.RescheduleAppointmentRequest, id string) (dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) error
	PublicCancel(ctx context.Context, businessID, id string, req dto.PublicCancelRequest) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo             repository.Appointment
	businessRepo     businessRepo.Business
	catalogRepo      catalogRepo.Catalog
	professionalRepo professionalRepo.Professional
	customerRepo     customerRepo.Customer
	outboxRepo       outboxRepo.Outbox
	gate             *plan.Gate
	metrics          *metrics.Metrics
	cfg              *config.Config
	cache            cache.RedisCache
	otel             otel.Otel
}

func New(
	repo repository.Appointment,
	businessRepo businessRepo.Business,
	catalogRepo catalogRepo.Catalog,
	professionalRepo professionalRepo.Professional,
	customerRepo customerRepo.Customer,
	outboxRepo outboxRepo.Outbox,
	gate *plan.Gate,
	metrics *metrics.Metrics,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Appointment {
	return &serviceImpl{
		repo:             repo,
		businessRepo:     businessRepo,
		catalogRepo:      catalogRepo,
		professionalRepo: professionalRepo,
		customerRepo:     customerRepo,
		outboxRepo:       outboxRepo,
		gate:             gate,
		metrics:          metrics,
		cfg:              cfg,
		cache:            cache,
		otel:             otel,
	}
}

// booking carries everything the writer resolved before opening the transaction.
type booking struct {
	business     businessModel.Business
	service      catalogModel.Service
	professional professionalModel.Professional
	day          time.Time
	slot         availability.Interval
	// limited is set when the plan caps monthly appointments, so the count is repeated
	// under the business lock.
	limited bool
}

// Create books an appointment from the dashboard. Working hours are not enforced so
// the owner can fit in walk-ins.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.create(ctx, shared.BusinessIDFromContext(ctx), req, false)
}

// Book is the public booking flow. On top of the dashboard rules the slot must fit the
// working hours and respect the business minimum advance. The customer is always
// resolved by phone.
func (s *serviceImpl) Book(ctx context.Context, businessID string, req dto.BookAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.create(ctx, businessID, req.ToCreate(), true)
}

func (s *serviceImpl) create(ctx context.Context, businessID string, req dto.CreateAppointmentRequest, public bool) (res dto.AppointmentResponse, err error) {
	defer func() {
		s.metrics.AppointmentCreated(createResult(err))
	}()

	now := timezone.Now()

	b, err := s.resolveBooking(ctx, businessID, req, now)
	if err != nil {
		return res, err
	}

	if public {
		if err = s.checkPublicSlot(b, req.Time, now); err != nil {
			return res, err
		}
	}

	actor := shared.UserIDFromContext(ctx)
	appointment := model.Appointment{
		ID:             uuid.NewString(),
		BusinessID:     businessID,
		ServiceID:      b.service.ID,
		ProfessionalID: b.professional.ID,
		Date:           b.day,
		StartTime:      b.slot.Start,
		EndTime:        b.slot.End,
		Status:         model.StatusPending,
		Notes:          req.Notes,
		Metadata:       gModel.NewMetadata(actor),
	}

	var customer customerModel.Customer

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		var err error

		customer, err = s.resolveCustomer(ctx, tx, businessID, actor, req)
		if err != nil {
			return err
		}

		appointment.CustomerID = customer.ID

		if err := s.checkMonthlyQuota(ctx, tx, b, now); err != nil {
			return err
		}

		if err := s.lockSlot(ctx, tx, b, ""); err != nil {
			return err
		}

		if err := s.repo.InsertTx(ctx, tx, appointment); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		err = slotError(err)
		log.Error().Err(err).Str("business_id", businessID).Msg("failed to create appointment")

		return res, err
	}

	s.invalidate(ctx, businessID, appointment.ID)

	res.FromModel(model.AppointmentDetail{
		Appointment:               appointment,
		CustomerName:              customer.Name,
		CustomerPhone:             customer.Phone,
		CustomerEmail:             customer.Email,
		ServiceName:               b.service.Name,
		ServiceDurationMinutes:    b.service.DurationMinutes,
		ServicePrice:              b.service.Price,
		ProfessionalName:          b.professional.Name,
		BusinessName:              b.business.Name,
		BusinessSlug:              b.business.Slug,
		BusinessTimezone:          b.business.Timezone,
		BusinessCancellationHours: b.business.CancellationNoticeHours,
	})

	return res, nil
}

func createResult(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, failure.SlotUnavailableError):
		return metrics.ResultConflict
	case failure.GetDetails(err) != nil:
		return metrics.ResultLimited
	}

	return metrics.ResultError
}

// resolveBooking runs the checks that need no lock: the date, a first pass of the
// monthly plan ceiling, the service and the professional, then the slot arithmetic.
func (s *serviceImpl) resolveBooking(ctx context.Context, businessID string, req dto.CreateAppointmentRequest, now time.Time) (b booking, err error) {
	b.business, err = s.business(ctx, businessID)
	if err != nil {
		return b, err
	}

	loc := b.business.Location()

	b.day, err = timezone.ParseDay(req.Date)
	if err != nil {
		return b, failure.BadRequest(err)
	}

	if b.day.Before(timezone.Today(now, loc)) {
		return b, errPastDate
	}

	booked, err := s.repo.Count(ctx, model.MonthlyUsageFilter(businessID, b.day))
	if err != nil {
		log.Error().Err(err).Msg("failed to count monthly appointments")

		return b, fmt.Errorf("failed to count monthly appointments: %w", err)
	}

	decision := s.gate.Check(b.business.Subscription(), plan.ResourceAppointments, booked, now)
	if !decision.Allowed {
		log.Info().Str("business_id", businessID).Int("limit", decision.Limit).Msg("monthly appointment limit reached")

		return b, decision.Err(plan.ResourceAppointments)
	}

	b.limited = decision.Limit != plan.Unlimited

	b.service, b.professional, err = s.bookable(ctx, businessID, req.ServiceID, req.ProfessionalID, true)
	if err != nil {
		return b, err
	}

	start, err := timezone.Combine(b.day, req.Time, loc)
	if err != nil {
		return b, failure.BadRequest(err)
	}

	b.slot = availability.Interval{Start: start, End: timezone.EndAt(start, b.service.DurationMinutes)}

	return b, nil
}

// checkMonthlyQuota repeats the plan ceiling check with the business row locked so two
// concurrent bookings cannot both take the last appointment of the month.
func (s *serviceImpl) checkMonthlyQuota(ctx context.Context, tx *sqlx.Tx, b booking, now time.Time) error {
	if !b.limited {
		return nil
	}

	business, err := s.businessRepo.GetForUpdateTx(ctx, tx, shared.FilterByID(b.business.ID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to lock business: %w", err)
	}

	if business.ID == constant.Empty {
		return failure.NotFound("business not found") // nolint:wrapcheck
	}

	booked, err := s.repo.CountTx(ctx, tx, model.MonthlyUsageFilter(business.ID, b.day))
	if err != nil {
		return fmt.Errorf("failed to count monthly appointments: %w", err)
	}

	decision := s.gate.Check(business.Subscription(), plan.ResourceAppointments, booked, now)
	if !decision.Allowed {
		log.Info().Str("business_id", business.ID).Int("limit", decision.Limit).Msg("monthly appointment limit reached")

		return decision.Err(plan.ResourceAppointments)
	}

	return nil
}

func (s *serviceImpl) checkPublicSlot(b booking, clock string, now time.Time) error {
	if b.slot.Start.Before(now.Add(time.Duration(b.business.MinAdvanceHours) * time.Hour)) {
		return failure.SlotUnavailableError
	}

	minute, err := timezone.ParseClock(clock)
	if err != nil {
		return failure.BadRequest(err)
	}

	if !availability.Fits(b.professional.HoursOr(b.business.Hours()), b.day, minute, b.service.DurationMinutes) {
		return failure.SlotUnavailableError
	}

	return nil
}

func (s *serviceImpl) business(ctx context.Context, businessID string) (businessModel.Business, error) {
	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return business, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return business, failure.NotFound("business not found") // nolint:wrapcheck
	}

	return business, nil
}

// bookable loads the service and the professional of the business. Inactive rows are
// treated as missing when requireActive is set.
func (s *serviceImpl) bookable(
	ctx context.Context,
	businessID, serviceID, professionalID string,
	requireActive bool,
) (catalogModel.Service, professionalModel.Professional, error) {
	var professional professionalModel.Professional

	service, err := s.catalogRepo.Get(ctx, shared.FilterByIDInBusiness(serviceID, businessID, catalogModel.FieldID, catalogModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get service")

		return service, professional, fmt.Errorf("failed to get service: %w", err)
	}

	if service.ID == constant.Empty || (requireActive && !service.Active) {
		return service, professional, failure.NotFound("service not found") // nolint:wrapcheck
	}

	professional, err = s.professionalRepo.Get(ctx, shared.FilterByIDInBusiness(professionalID, businessID, professionalModel.FieldID, professionalModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get professional")

		return service, professional, fmt.Errorf("failed to get professional: %w", err)
	}

	if professional.ID == constant.Empty || (requireActive && !professional.Active) {
		return service, professional, failure.NotFound("professional not found") // nolint:wrapcheck
	}

	offers, err := s.professionalRepo.OffersService(ctx, professional.ID, service.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check professional services")

		return service, professional, fmt.Errorf("failed to check professional services: %w", err)
	}

	if !offers {
		return service, professional, errServiceNotOffer
	}

	return service, professional, nil
}

func (s *serviceImpl) resolveCustomer(
	ctx context.Context,
	tx *sqlx.Tx,
	businessID, actor string,
	req dto.CreateAppointmentRequest,
) (customerModel.Customer, error) {
	if req.CustomerID != constant.Empty {
		customer, err := s.customerRepo.GetTx(ctx, tx, shared.FilterByIDInBusiness(req.CustomerID, businessID, customerModel.FieldID, customerModel.TableName))
		if err != nil {
			return customer, fmt.Errorf("failed to get customer: %w", err)
		}

		if customer.ID == constant.Empty {
			return customer, failure.NotFound("customer not found") // nolint:wrapcheck
		}

		return customer, nil
	}

	customer, err := s.customerRepo.UpsertByPhoneTx(ctx, tx, customerModel.Customer{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		Name:       req.Customer.Name,
		Phone:      customerModel.NormalizePhone(req.Customer.Phone),
		Email:      req.Customer.Email,
		Metadata:   gModel.NewMetadata(actor),
	})
	if err != nil {
		return customer, fmt.Errorf("failed to resolve customer: %w", err)
	}

	return customer, nil
}

// lockSlot serialises writers of one professional by locking its row, then checks the
// candidate against the bookings that overlap it. ignoreID skips the appointment being moved.
func (s *serviceImpl) lockSlot(ctx context.Context, tx *sqlx.Tx, b booking, ignoreID string) error {
	filter := shared.FilterByIDInBusiness(b.professional.ID, b.business.ID, professionalModel.FieldID, professionalModel.TableName)

	locked, err := s.professionalRepo.GetForUpdateTx(ctx, tx, filter, professionalModel.FieldID)
	if err != nil {
		return fmt.Errorf("failed to lock professional: %w", err)
	}

	if locked.ID == constant.Empty {
		return failure.NotFound("professional not found") // nolint:wrapcheck
	}

	busy, err := s.repo.BusyIntervalsTx(ctx, tx, b.professional.ID, b.slot)
	if err != nil {
		return err
	}

	if availability.HasConflict(b.slot, busy, ignoreID) {
		return failure.SlotUnavailableError
	}

	return nil
}

// slotError maps the exclusion constraint backstop onto the slot conflict failure.
func slotError(err error) error {
	if gRepo.IsPqCode(err, constant.PqErrorCodeExclusionViolation) {
		return failure.SlotUnavailableError
	}

	if gRepo.IsPqCode(err, constant.PqErrorCodeUniqueViolation) && gRepo.Constraint(err) == model.ConstraintNoOverlap {
		return failure.SlotUnavailableError
	}

	return err
}

// Slots lists the candidate start times of a professional for a service on one day.
func (s *serviceImpl) Slots(ctx context.Context, query dto.SlotQuery) (seq iter.Seq[availability.Slot], err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Slots")
	defer scope.End()
	defer scope.TraceIfError(err)

	business, err := s.business(ctx, query.BusinessID)
	if err != nil {
		return nil, err
	}

	day, err := timezone.ParseDay(query.Date)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	service, professional, err := s.bookable(ctx, business.ID, query.ServiceID, query.ProfessionalID, true)
	if err != nil {
		return nil, err
	}

	loc := business.Location()

	busy, err := s.repo.BusyIntervals(ctx, professional.ID, availability.DayWindow(day, loc))
	if err != nil {
		log.Error().Err(err).Msg("failed to get busy intervals")

		return nil, err
	}

	s.metrics.SlotQueried()

	return availability.Generate(availability.Params{
		Day:             day,
		Location:        loc,
		Hours:           professional.HoursOr(business.Hours()),
		TickMinutes:     business.TickMinutes(s.cfg.Booking.SlotIntervalMinutes),
		DurationMinutes: service.DurationMinutes,
		Busy:            busy,
		EarliestStart:   timezone.Now().Add(time.Duration(business.MinAdvanceHours) * time.Hour),
	}), nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetAllAppointment, businessID), req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	scoped := shared.ScopeToBusiness(filter, businessID, model.TableName)

	total, err := s.repo.CountDetails(ctx, scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	details, err := s.repo.GetDetails(ctx, req.Qualified(model.TableName), scoped)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(details, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	cacheKey := shared.BuildCacheKey(cacheGetAppointment, businessID, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	res, err = s.detail(ctx, businessID, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) detail(ctx context.Context, businessID, id string) (res dto.AppointmentResponse, err error) {
	detail, err := s.repo.GetDetail(ctx, shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(detail)

	return res, nil
}

// Reschedule moves an appointment to another date, time, service or professional. The
// conflict check runs again under the professional lock, ignoring the appointment itself.
// The monthly plan ceiling is not re-checked.
func (s *serviceImpl) Reschedule(ctx context.Context, req dto.RescheduleAppointmentRequest, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reschedule")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	business, err := s.business(ctx, businessID)
	if err != nil {
		return res, err
	}

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock appointment: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		if current.Status.Terminal() {
			return errAppointmentDone
		}

		fields := map[string]any{}

		if req.Notes != nil {
			fields[model.FieldNotes] = *req.Notes
		}

		if req.MovesSlot() {
			b, err := s.moved(ctx, business, current, req)
			if err != nil {
				return err
			}

			if err := s.lockSlot(ctx, tx, b, current.ID); err != nil {
				return err
			}

			fields[model.FieldServiceID] = b.service.ID
			fields[model.FieldProfessionalID] = b.professional.ID
			fields[model.FieldDate] = timezone.FormatDay(b.day)
			fields[model.FieldStartTime] = b.slot.Start
			fields[model.FieldEndTime] = b.slot.End
		}

		if len(fields) == 0 {
			return nil
		}

		fields[constant.FieldModifiedAt] = timezone.Now()
		fields[constant.FieldModifiedBy] = shared.UserIDFromContext(ctx)

		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return fmt.Errorf("failed to reschedule appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		err = slotError(err)
		log.Error().Err(err).Str("appointment_id", id).Msg("failed to reschedule appointment")

		return res, err
	}

	s.invalidate(ctx, businessID, id)

	return s.detail(ctx, businessID, id)
}

// moved resolves the target of a reschedule, keeping every field the request leaves out.
func (s *serviceImpl) moved(
	ctx context.Context,
	business businessModel.Business,
	current model.Appointment,
	req dto.RescheduleAppointmentRequest,
) (b booking, err error) {
	loc := business.Location()
	b.business = business
	b.day = current.Date

	if req.Date != nil {
		b.day, err = timezone.ParseDay(*req.Date)
		if err != nil {
			return b, failure.BadRequest(err)
		}

		if b.day.Before(timezone.Today(timezone.Now(), loc)) {
			return b, errPastDate
		}
	}

	serviceID, professionalID := current.ServiceID, current.ProfessionalID
	if req.ServiceID != nil {
		serviceID = *req.ServiceID
	}

	if req.ProfessionalID != nil {
		professionalID = *req.ProfessionalID
	}

	changesStaff := serviceID != current.ServiceID || professionalID != current.ProfessionalID

	b.service, b.professional, err = s.bookable(ctx, business.ID, serviceID, professionalID, changesStaff)
	if err != nil {
		return b, err
	}

	clock := timezone.ClockOf(current.StartTime, loc)
	if req.Time != nil {
		clock = *req.Time
	}

	start, err := timezone.Combine(b.day, clock, loc)
	if err != nil {
		return b, failure.BadRequest(err)
	}

	b.slot = availability.Interval{Start: start, End: timezone.EndAt(start, b.service.DurationMinutes)}

	return b, nil
}

// UpdateStatus applies one transition of the status machine. Entering CONFIRMED or
// CANCELLED queues an outbox event in the same transaction.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	businessID := shared.BusinessIDFromContext(ctx)
	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock appointment: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		return s.transition(ctx, tx, current, req.Status, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", id).Msg("failed to update appointment status")

		return err
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

func (s *serviceImpl) transition(ctx context.Context, tx *sqlx.Tx, current model.Appointment, next model.Status, filter gDto.FilterGroup) error {
	if !current.Status.CanTransitionTo(next) {
		return failure.BadRequestFromString(fmt.Sprintf("cannot change status from %s to %s", current.Status, next))
	}

	now := timezone.Now()
	fields := map[string]any{
		model.FieldStatus:        next,
		constant.FieldModifiedAt: now,
		constant.FieldModifiedBy: shared.UserIDFromContext(ctx),
	}

	if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	var eventType outboxModel.EventType

	switch next {
	case model.StatusConfirmed:
		eventType = outboxModel.EventAppointmentConfirmed
	case model.StatusCancelled:
		eventType = outboxModel.EventAppointmentCancelled
	default:
		return nil
	}

	event, err := outboxModel.NewAppointmentEvent(eventType, current.ID, current.BusinessID, string(next), now)
	if err != nil {
		return err
	}

	if err := s.outboxRepo.InsertTx(ctx, tx, event); err != nil {
		return fmt.Errorf("failed to queue appointment event: %w", err)
	}

	return nil
}

// PublicCancel lets a customer cancel their own booking. The phone must match the booking
// and the business cancellation notice must still be ahead of the start time.
func (s *serviceImpl) PublicCancel(ctx context.Context, businessID, id string, req dto.PublicCancelRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PublicCancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	business, err := s.business(ctx, businessID)
	if err != nil {
		return err
	}

	filter := shared.FilterByIDInBusiness(id, businessID, model.FieldID, model.TableName)

	err = s.repo.Transaction(ctx, func(tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter)
		if err != nil {
			return fmt.Errorf("failed to lock appointment: %w", err)
		}

		if current.ID == constant.Empty {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		customer, err := s.customerRepo.GetTx(ctx, tx, shared.FilterByIDInBusiness(current.CustomerID, businessID, customerModel.FieldID, customerModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to get customer: %w", err)
		}

		if customer.Phone != customerModel.NormalizePhone(req.Phone) {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		notice := time.Duration(business.CancellationNoticeHours) * time.Hour
		if timezone.Now().Add(notice).After(current.StartTime) {
			return failure.BadRequestFromString(fmt.Sprintf("appointments can only be cancelled %d hours in advance", business.CancellationNoticeHours))
		}

		return s.transition(ctx, tx, current, model.StatusCancelled, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("appointment_id", id).Msg("failed to cancel appointment")

		return err
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
		log.Error().Err(err).Msg("failed to check appointment existence")

		return fmt.Errorf("failed to check appointment existence: %w", err)
	}

	if !exist {
		return failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete appointment")

		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	s.invalidate(ctx, businessID, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, businessID, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, businessID, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, shared.BuildCacheKey(cacheGetAllAppointment, businessID))
	}()
}
