// Package public serves the booking page of a business. Every route is resolved by slug and
// needs no authentication.
package public

import (
	"context"
	"net/http"
	"slices"

	"bookly/infras/otel"
	appointmentDto "bookly/internal/domains/appointment/model/dto"
	appointmentService "bookly/internal/domains/appointment/service"
	"bookly/internal/domains/availability"
	businessDto "bookly/internal/domains/business/model/dto"
	businessService "bookly/internal/domains/business/service"
	catalogDto "bookly/internal/domains/catalog/model/dto"
	catalogService "bookly/internal/domains/catalog/service"
	professionalDto "bookly/internal/domains/professional/model/dto"
	professionalService "bookly/internal/domains/professional/service"
	"bookly/shared/constant"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryServiceID      = "serviceId"
	queryProfessionalID = "professionalId"
	queryDate           = "date"
)

type businessKey struct{}

type Handler struct {
	business     businessService.Business
	catalog      catalogService.Catalog
	professional professionalService.Professional
	appointment  appointmentService.Appointment
	otel         otel.Otel
}

func New(
	business businessService.Business,
	catalog catalogService.Catalog,
	professional professionalService.Professional,
	appointment appointmentService.Appointment,
	otel otel.Otel,
) Handler {
	return Handler{
		business:     business,
		catalog:      catalog,
		professional: professional,
		appointment:  appointment,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/public/{slug}", func(routerGroup chi.Router) {
		routerGroup.Use(handler.resolveBusiness)

		routerGroup.Get("/", handler.GetBusiness)
		routerGroup.Get("/services", handler.GetServices)
		routerGroup.Get("/professionals", handler.GetProfessionals)
		routerGroup.Get("/slots", handler.GetSlots)
		routerGroup.Post("/appointments", handler.BookAppointment)
		routerGroup.Post("/appointments/{id}/cancel", handler.CancelAppointment)
	})
}

// resolveBusiness loads the business named by the slug. An unknown slug is a 404 for every route.
func (handler *Handler) resolveBusiness(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveBusiness")

		business, err := handler.business.GetBySlug(ctx, chi.URLParam(r, constant.RequestParamSlug))
		if err != nil {
			scope.TraceError(err)
			scope.End()
			response.WithError(w, err)

			return
		}

		scope.SetAttribute("business.id", business.ID)
		scope.End()

		ctx = context.WithValue(r.Context(), businessKey{}, business)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func businessFromContext(ctx context.Context) businessDto.PublicBusinessResponse {
	business, _ := ctx.Value(businessKey{}).(businessDto.PublicBusinessResponse)

	return business
}

// GetBusiness returns the public profile of a business.
// @Summary Get booking page profile
// @Tags Public
// @Produce json
// @Param slug path string true "Business slug"
// @Success 200 {object} response.Data[businessDto.PublicBusinessResponse] "Business profile"
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug} [get]
func (handler *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	response.WithJSON(w, http.StatusOK, businessFromContext(r.Context()))
}

// GetServices lists the active services of a business.
// @Summary Get bookable services
// @Tags Public
// @Produce json
// @Param slug path string true "Business slug"
// @Success 200 {object} response.Data[[]catalogDto.PublicServiceResponse] "Services"
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug}/services [get]
func (handler *Handler) GetServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicServices")
	defer scope.End()

	var (
		services []catalogDto.PublicServiceResponse
		err      error
	)

	services, err = handler.catalog.ListActive(ctx, businessFromContext(ctx).ID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public services")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, services)
}

// GetProfessionals lists the active professionals, optionally only those offering a service.
// @Summary Get bookable professionals
// @Tags Public
// @Produce json
// @Param slug path string true "Business slug"
// @Param serviceId query string false "Only professionals offering this service"
// @Success 200 {object} response.Data[[]professionalDto.PublicProfessionalResponse] "Professionals"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug}/professionals [get]
func (handler *Handler) GetProfessionals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicProfessionals")
	defer scope.End()

	serviceID := r.URL.Query().Get(queryServiceID)
	if serviceID != "" {
		if err := validator.ValidateVar(serviceID, "uuid"); err != nil {
			scope.TraceError(err)
			response.WithError(w, err)

			return
		}
	}

	var (
		professionals []professionalDto.PublicProfessionalResponse
		err           error
	)

	professionals, err = handler.professional.ListPublic(ctx, businessFromContext(ctx).ID, serviceID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public professionals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, professionals)
}

// GetSlots returns every tick of the day with its availability, in ascending order.
// @Summary Get available slots
// @Tags Public
// @Produce json
// @Param slug path string true "Business slug"
// @Param serviceId query string true "Service ID"
// @Param professionalId query string true "Professional ID"
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Data[appointmentDto.SlotsResponse] "Slots"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug}/slots [get]
func (handler *Handler) GetSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSlots")
	defer scope.End()

	query := appointmentDto.SlotQuery{
		BusinessID:     businessFromContext(ctx).ID,
		ServiceID:      r.URL.Query().Get(queryServiceID),
		ProfessionalID: r.URL.Query().Get(queryProfessionalID),
		Date:           r.URL.Query().Get(queryDate),
	}

	if err := validator.ValidateStruct(&query); err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	slots, err := handler.appointment.Slots(ctx, query)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get slots")

		response.WithError(w, err)

		return
	}

	res := appointmentDto.SlotsResponse{Date: query.Date, Slots: slices.Collect(slots)}
	if res.Slots == nil {
		res.Slots = []availability.Slot{}
	}

	response.WithJSON(w, http.StatusOK, res)
}

// BookAppointment books an appointment from the public page. Working hours and the minimum
// advance are enforced.
// @Summary Book an appointment
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Business slug"
// @Param request body appointmentDto.BookAppointmentRequest true "Booking Request"
// @Success 201 {object} response.Data[appointmentDto.AppointmentResponse] "Appointment booked"
// @Failure 400 {object} response.Error "Validation error or slot unavailable"
// @Failure 403 {object} response.Error "Plan limit reached"
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug}/appointments [post]
func (handler *Handler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	req := appointmentDto.BookAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.appointment.Book(ctx, businessFromContext(ctx).ID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment booked from public page")

	response.WithJSON(w, http.StatusCreated, res)
}

// CancelAppointment lets a customer cancel their own booking.
// @Summary Cancel a booking
// @Description The phone used when booking is required. The business cancellation notice applies.
// @Tags Public
// @Accept json
// @Produce json
// @Param slug path string true "Business slug"
// @Param id path string true "Appointment ID"
// @Param request body appointmentDto.PublicCancelRequest true "Cancel Request"
// @Success 200 {object} response.Message "Appointment cancelled"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/public/{slug}/appointments/{id}/cancel [post]
func (handler *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := appointmentDto.PublicCancelRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.appointment.PublicCancel(ctx, businessFromContext(ctx).ID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment cancelled by customer")

	response.WithMessage(w, http.StatusOK, "Appointment cancelled")
}
