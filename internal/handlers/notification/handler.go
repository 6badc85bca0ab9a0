package notification

import (
	"net/http"

	"bookly/infras/otel"
	"bookly/internal/domains/notification/service"
	"bookly/shared/constant"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Notification
	otel    otel.Otel
}

func New(service service.Notification, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/appointments/{id}/notifications", handler.GetNotifications)
}

// GetNotifications lists the delivery attempts recorded for an appointment, newest first.
// @Summary Get appointment notifications
// @Tags Notification
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[[]dto.NotificationResponse] "Notifications"
// @Failure 404 {object} response.Error
// @Router /v1/appointments/{id}/notifications [get]
// @Security BearerAuth
func (handler *Handler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetNotifications")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	notifications, err := handler.service.ListByAppointment(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get notifications")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, notifications)
}
