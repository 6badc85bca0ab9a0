package service

import (
	"context"
	"errors"
	"fmt"

	"bookly/config"
	"bookly/infras/otel"
	"bookly/infras/stripe"
	"bookly/internal/domains/billing/model/dto"
	businessModel "bookly/internal/domains/business/model"
	businessRepo "bookly/internal/domains/business/repository"
	"bookly/internal/domains/plan"
	"bookly/shared"
	"bookly/shared/constant"
	"bookly/shared/failure"
	"bookly/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Billing interface {
	Checkout(ctx context.Context, req dto.CheckoutRequest, idempotencyKey string) (dto.CheckoutResponse, error)
}

type serviceImpl struct {
	businessRepo businessRepo.Business
	stripe       stripe.Stripe
	gate         *plan.Gate
	cfg          *config.Config
	otel         otel.Otel
}

func New(businessRepo businessRepo.Business, stripe stripe.Stripe, gate *plan.Gate, cfg *config.Config, otel otel.Otel) Billing {
	return &serviceImpl{
		businessRepo: businessRepo,
		stripe:       stripe,
		gate:         gate,
		cfg:          cfg,
		otel:         otel,
	}
}

// Checkout starts a Stripe subscription for tier. The plan itself changes only when the
// billing webhook calls the internal plan endpoint.
func (s *serviceImpl) Checkout(ctx context.Context, req dto.CheckoutRequest, idempotencyKey string) (res dto.CheckoutResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Checkout")
	defer scope.End()
	defer scope.TraceIfError(err)

	priceID := s.cfg.External.Stripe.PriceIDs[string(req.Tier)]
	if priceID == constant.Empty {
		return res, failure.BadRequestFromString("plan " + string(req.Tier) + " is not available for checkout")
	}

	businessID := shared.BusinessIDFromContext(ctx)

	business, err := s.businessRepo.Get(ctx, shared.FilterByID(businessID, businessModel.FieldID, businessModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get business")

		return res, fmt.Errorf("failed to get business: %w", err)
	}

	if business.ID == constant.Empty {
		return res, failure.NotFound("business not found") // nolint:wrapcheck
	}

	if business.PlanStatus == plan.StatusActive && s.gate.EffectiveTier(business.Subscription(), timezone.Now()) == req.Tier {
		return res, failure.BadRequestFromString("business is already on plan " + string(req.Tier))
	}

	checkout, err := s.stripe.CreateCheckout(ctx, stripe.CheckoutInput{
		BusinessID:     business.ID,
		Tier:           string(req.Tier),
		PriceID:        priceID,
		CustomerEmail:  business.Email,
		IdempotencyKey: idempotencyKey,
	})
	if errors.Is(err, stripe.ErrNotConfigured) {
		return res, failure.Unimplemented("billing is not configured") // nolint:wrapcheck
	}

	if err != nil {
		return res, fmt.Errorf("failed to create checkout: %w", err)
	}

	res.SessionID = checkout.SessionID
	res.URL = checkout.URL

	return res, nil
}
