package business

import (
	"net/http"

	"bookly/infras/otel"
	"bookly/internal/domains/business/model/dto"
	"bookly/internal/domains/business/service"
	"bookly/shared/constant"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Business
	otel    otel.Otel
}

func New(service service.Business, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/business", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetBusiness)
		routerGroup.Patch("/", handler.UpdateBusiness)
		routerGroup.Put("/working-hours", handler.UpdateWorkingHours)
		routerGroup.Post("/logo", handler.UploadLogo)
		routerGroup.Get("/usage", handler.GetUsage)
	})
}

// GetBusiness returns the settings of the signed-in business.
// @Summary Get business settings
// @Tags Business
// @Produce json
// @Success 200 {object} response.Data[dto.BusinessResponse] "Business settings"
// @Failure 404 {object} response.Error
// @Router /v1/business [get]
// @Security BearerAuth
func (handler *Handler) GetBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBusiness")
	defer scope.End()

	business, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get business")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, business)
}

// UpdateBusiness updates the profile and booking policy of the signed-in business.
// @Summary Update business settings
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.UpdateBusinessRequest true "Update Business Request"
// @Success 200 {object} response.Message "Business updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/business [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBusiness(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBusiness")
	defer scope.End()

	req := dto.UpdateBusinessRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update business")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Business updated successfully")

	response.WithMessage(w, http.StatusOK, "Business updated successfully")
}

// UpdateWorkingHours replaces the opening hours of the business.
// @Summary Replace business working hours
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.UpdateWorkingHoursRequest true "Working Hours"
// @Success 200 {object} response.Message "Working hours updated successfully"
// @Failure 400 {object} response.Error
// @Router /v1/business/working-hours [put]
// @Security BearerAuth
func (handler *Handler) UpdateWorkingHours(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateWorkingHours")
	defer scope.End()

	req := dto.UpdateWorkingHoursRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateWorkingHours(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update working hours")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Working hours updated successfully")

	response.WithMessage(w, http.StatusOK, "Working hours updated successfully")
}

// UploadLogo stores a new logo for the business.
// @Summary Upload business logo
// @Description Upload a base64 data URL (png, jpeg or webp, at most 2 MB).
// @Tags Business
// @Accept json
// @Produce json
// @Param request body dto.UploadLogoRequest true "Logo"
// @Success 201 {object} response.Data[dto.LogoResponse] "Logo uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/business/logo [post]
// @Security BearerAuth
func (handler *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadLogo")
	defer scope.End()

	req := dto.UploadLogoRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.UploadLogo(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload logo")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Logo uploaded successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetUsage reports the plan usage of the current month.
// @Summary Get plan usage
// @Tags Business
// @Produce json
// @Success 200 {object} response.Data[dto.UsageResponse] "Plan usage"
// @Failure 404 {object} response.Error
// @Router /v1/business/usage [get]
// @Security BearerAuth
func (handler *Handler) GetUsage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsage")
	defer scope.End()

	usage, err := handler.service.Usage(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get plan usage")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, usage)
}
