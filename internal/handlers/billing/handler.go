package billing

import (
	"net/http"

	"bookly/infras/otel"
	"bookly/internal/domains/billing/model/dto"
	"bookly/internal/domains/billing/service"
	"bookly/shared/constant"
	"bookly/shared/validator"
	"bookly/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Billing
	otel    otel.Otel
}

func New(service service.Billing, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/billing", func(routerGroup chi.Router) {
		routerGroup.Post("/checkout", handler.Checkout)
	})
}

// Checkout starts a subscription checkout for a paid tier.
// @Summary Create a checkout session
// @Description Returns the hosted checkout URL. A repeated Idempotency-Key returns the same session.
// @Tags Billing
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Idempotency key"
// @Param request body dto.CheckoutRequest true "Checkout Request"
// @Success 201 {object} response.Data[dto.CheckoutResponse] "Checkout session created"
// @Failure 400 {object} response.Error
// @Failure 501 {object} response.Error "Billing is not configured"
// @Router /v1/billing/checkout [post]
// @Security BearerAuth
func (handler *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Checkout")
	defer scope.End()

	req := dto.CheckoutRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Checkout(ctx, req, r.Header.Get(constant.RequestHeaderIdempotencyKey))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create checkout session")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Checkout session created for tier " + string(req.Tier))

	response.WithJSON(w, http.StatusCreated, res)
}
