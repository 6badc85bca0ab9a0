package professional

import (
	"net/http"

	"bookly/infras/otel"
	"bookly/internal/domains/professional/model"
	"bookly/internal/domains/professional/model/dto"
	"bookly/internal/domains/professional/service"
	"bookly/shared"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Professional
	otel    otel.Otel
}

func New(service service.Professional, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/professionals", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProfessional)
		routerGroup.Get("/", handler.GetProfessionals)
		routerGroup.Get("/{id}", handler.GetProfessionalByID)
		routerGroup.Patch("/{id}", handler.UpdateProfessional)
		routerGroup.Delete("/{id}", handler.DeleteProfessional)
		routerGroup.Put("/{id}/services", handler.AssignServices)
		routerGroup.Put("/{id}/working-hours", handler.UpdateWorkingHours)
	})
}

// CreateProfessional adds a professional to the business. Creation is limited by the plan.
// @Summary Create a new professional
// @Tags Professional
// @Accept json
// @Produce json
// @Param request body dto.CreateProfessionalRequest true "Create Professional Request"
// @Success 201 {object} response.Data[dto.ProfessionalResponse] "Professional created successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error "Plan limit reached"
// @Failure 500 {object} response.Error
// @Router /v1/professionals [post]
// @Security BearerAuth
func (handler *Handler) CreateProfessional(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProfessional")
	defer scope.End()

	req := dto.CreateProfessionalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create professional")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professional created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetProfessionals retrieves the professionals of the business.
// @Summary Get all professionals
// @Tags Professional
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param active query boolean false "Filter by active status"
// @Success 200 {object} response.Data[dto.GetProfessionalsResponse] "List of professionals"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals [get]
// @Security BearerAuth
func (handler *Handler) GetProfessionals(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfessionals")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	if name := r.URL.Query().Get(model.FieldName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if active := shared.ConvertStringToBool(r.URL.Query().Get(model.FieldActive)); active != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Operator: gDto.FilterOperatorEq,
			Value:    *active,
			Table:    model.TableName,
		})
	}

	professionals, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get professionals")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, professionals)
}

// GetProfessionalByID retrieves a professional with the services it offers.
// @Summary Get a professional by ID
// @Tags Professional
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} response.Data[dto.ProfessionalResponse] "Professional details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/professionals/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProfessionalByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfessionalByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	professional, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get professional by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, professional)
}

// UpdateProfessional updates an existing professional by its ID.
// @Summary Update a professional by ID
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Param request body dto.UpdateProfessionalRequest true "Update Professional Request"
// @Success 200 {object} response.Message "Professional updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/professionals/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProfessional(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProfessional")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateProfessionalRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update professional")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professional updated successfully")

	response.WithMessage(w, http.StatusOK, "Professional updated successfully")
}

// DeleteProfessional deletes a professional by its ID.
// @Summary Delete a professional by ID
// @Tags Professional
// @Produce json
// @Param id path string true "Professional ID"
// @Success 200 {object} response.Message "Professional deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/professionals/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProfessional(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProfessional")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete professional")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Professional deleted successfully")

	response.WithMessage(w, http.StatusOK, "Professional deleted successfully")
}

// AssignServices replaces the set of services a professional offers.
// @Summary Assign services to a professional
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Param request body dto.AssignServicesRequest true "Service IDs"
// @Success 200 {object} response.Message "Services assigned successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/professionals/{id}/services [put]
// @Security BearerAuth
func (handler *Handler) AssignServices(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignServices")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.AssignServicesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AssignServices(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign services")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Services assigned successfully")

	response.WithMessage(w, http.StatusOK, "Services assigned successfully")
}

// UpdateWorkingHours sets hours that override the business hours for this professional.
// Sending an empty object reverts to the business hours.
// @Summary Replace professional working hours
// @Tags Professional
// @Accept json
// @Produce json
// @Param id path string true "Professional ID"
// @Param request body dto.UpdateWorkingHoursRequest true "Working Hours"
// @Success 200 {object} response.Message "Working hours updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/professionals/{id}/working-hours [put]
// @Security BearerAuth
func (handler *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateWorkingHours")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateWorkingHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateWorkingHours(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update working hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Working hours updated successfully")

	response.WithMessage(w, http.StatusOK, "Working hours updated successfully")
}
