// Package system serves the routes called by other services with the API key.
package system

import (
	"net/http"

	"bookly/infras/otel"
	businessDto "bookly/internal/domains/business/model/dto"
	businessService "bookly/internal/domains/business/service"
	notificationDto "bookly/internal/domains/notification/model/dto"
	notificationService "bookly/internal/domains/notification/service"
	"bookly/shared/constant"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	business     businessService.Business
	notification notificationService.Notification
	otel         otel.Otel
}

func New(business businessService.Business, notification notificationService.Notification, otel otel.Otel) Handler {
	return Handler{
		business:     business,
		notification: notification,
		otel:         otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/internal", func(routerGroup chi.Router) {
		routerGroup.Patch("/businesses/{id}/plan", handler.SetPlan)
		routerGroup.Post("/reminders/run", handler.RunReminders)
	})
}

// SetPlan changes the subscription of a business.
// @Summary Set business plan
// @Tags Internal
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Internal API key"
// @Param id path string true "Business ID"
// @Param request body businessDto.SetPlanRequest true "Set Plan Request"
// @Success 200 {object} response.Message "Plan updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/internal/businesses/{id}/plan [patch]
func (handler *Handler) SetPlan(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SetPlan")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := businessDto.SetPlanRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.business.SetPlan(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to set plan")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Plan updated to " + string(req.Plan))

	response.WithMessage(w, http.StatusOK, "Plan updated successfully")
}

// RunReminders dispatches one batch of due reminders. Meant for an external cron.
// @Summary Run reminder dispatch
// @Tags Internal
// @Produce json
// @Param X-API-Key header string true "Internal API key"
// @Success 200 {object} response.Data[notificationDto.ReminderRunResponse] "Batch summary"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/internal/reminders/run [post]
func (handler *Handler) RunReminders(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RunReminders")
	defer scope.End()

	var (
		res notificationDto.ReminderRunResponse
		err error
	)

	res, err = handler.notification.RunReminders(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to run reminders")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
