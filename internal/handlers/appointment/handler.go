package appointment

import (
	"net/http"

	"bookly/infras/otel"
	"bookly/internal/domains/appointment/model"
	"bookly/internal/domains/appointment/model/dto"
	"bookly/internal/domains/appointment/service"
	"bookly/shared/constant"
	gDto "bookly/shared/dto"
	"bookly/shared/failure"
	"bookly/shared/timezone"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryDate           = "date"
	queryFrom           = "from"
	queryTo             = "to"
	queryStatus         = "status"
	queryProfessionalID = "professionalId"
	queryCustomerID     = "customerId"
)

type Handler struct {
	service service.Appointment
	otel    otel.Otel
}

func New(service service.Appointment, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Post("/appointments", handler.CreateAppointment)
	router.Get("/appointments", handler.GetAppointments)
	router.Get("/appointments/{id}", handler.GetAppointmentByID)
	router.Patch("/appointments/{id}", handler.RescheduleAppointment)
	router.Patch("/appointments/{id}/status", handler.UpdateStatus)
	router.Delete("/appointments/{id}", handler.DeleteAppointment)
}

// CreateAppointment books an appointment from the dashboard.
// @Summary Create a new appointment
// @Description Book a professional for a service. The customer is given by id, or by name and phone.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Create Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment created successfully"
// @Failure 400 {object} response.Error "Validation error or slot unavailable"
// @Failure 403 {object} response.Error "Plan limit reached"
// @Failure 404 {object} response.Error
// @Router /v1/appointments [post]
// @Security BearerAuth
func (handler *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAppointment")
	defer scope.End()

	req := dto.CreateAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetAppointments lists the appointments of the business.
// @Summary Get all appointments
// @Tags Appointment
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param date query string false "Filter by day (YYYY-MM-DD)"
// @Param from query string false "First day of a range (YYYY-MM-DD)"
// @Param to query string false "Last day of a range (YYYY-MM-DD)"
// @Param status query string false "Filter by status"
// @Param professionalId query string false "Filter by professional"
// @Param customerId query string false "Filter by customer"
// @Success 200 {object} response.Data[dto.GetAppointmentsResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Router /v1/appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	if queryParams.SortBy == "" {
		queryParams.SortBy = model.FieldStartTime
		queryParams.SortDir = gDto.SortDirAsc
	}

	filterGroup, err := listFilter(r)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointments)
}

func listFilter(r *http.Request) (gDto.FilterGroup, error) {
	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	days := []struct {
		param    string
		argName  string
		operator string
	}{
		{queryDate, "filter_date", gDto.FilterOperatorEq},
		{queryFrom, "filter_from", gDto.FilterOperatorGreaterEq},
		{queryTo, "filter_to", gDto.FilterOperatorLessEq},
	}

	for _, day := range days {
		value := query.Get(day.param)
		if value == "" {
			continue
		}

		if _, err := timezone.ParseDay(value); err != nil {
			return filterGroup, failure.BadRequestFromString(day.param + " must be a YYYY-MM-DD date")
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  day.argName,
			Field:    model.FieldDate,
			Operator: day.operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	if status := model.Status(query.Get(queryStatus)); status != "" {
		if !status.Valid() {
			return filterGroup, failure.BadRequestFromString("unknown appointment status " + string(status))
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  "filter_status",
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	ids := map[string]string{
		queryProfessionalID: model.FieldProfessionalID,
		queryCustomerID:     model.FieldCustomerID,
	}

	for param, field := range ids {
		value := query.Get(param)
		if value == "" {
			continue
		}

		if err := validator.ValidateVar(value, "uuid"); err != nil {
			return filterGroup, failure.BadRequestFromString(param + " must be a valid uuid")
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    field,
			Operator: gDto.FilterOperatorEq,
			Value:    value,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

// GetAppointmentByID retrieves an appointment with its customer, service and professional.
// @Summary Get an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, appointment)
}

// RescheduleAppointment moves an appointment or changes its notes.
// @Summary Reschedule an appointment
// @Description Changing the date, time, service or professional re-runs the conflict check.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RescheduleAppointmentRequest true "Reschedule Appointment Request"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment rescheduled successfully"
// @Failure 400 {object} response.Error "Validation error, terminal status or slot unavailable"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [patch]
// @Security BearerAuth
func (handler *Handler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RescheduleAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RescheduleAppointmentRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Reschedule(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reschedule appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment rescheduled successfully")

	response.WithJSON(w, http.StatusOK, res)
}

// UpdateStatus moves an appointment through its status machine.
// @Summary Update appointment status
// @Description PENDING goes to CONFIRMED or CANCELLED. CONFIRMED goes to COMPLETED, NO_SHOW or CANCELLED.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Appointment status updated successfully"
// @Failure 400 {object} response.Error "Invalid transition"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update appointment status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment status updated to " + string(req.Status))

	response.WithMessage(w, http.StatusOK, "Appointment status updated successfully")
}

// DeleteAppointment deletes an appointment by its ID.
// @Summary Delete an appointment by ID
// @Tags Appointment
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment deleted successfully"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAppointment")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete appointment")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Appointment deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Appointment deleted successfully")
}
