package stripe

//go:generate go run go.uber.org/mock/mockgen -source=./stripe.go -destination=./mocks/stripe_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"bookly/config"
	"bookly/infras/otel"
	"bookly/shared/constant"

	"github.com/rs/zerolog/log"
	stripeGo "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

var ErrNotConfigured = errors.New("stripe is not configured")

type CheckoutInput struct {
	BusinessID     string
	Tier           string
	PriceID        string
	CustomerEmail  string
	IdempotencyKey string
}

type Checkout struct {
	SessionID string
	URL       string
}

type Stripe interface {
	CreateCheckout(ctx context.Context, input CheckoutInput) (Checkout, error)
}

type stripeImpl struct {
	sessions   sessionAPI
	successURL string
	cancelURL  string
	otel       otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Stripe {
	var sessions sessionAPI

	if cfg.External.Stripe.SecretKey != constant.Empty {
		api := &client.API{}
		api.Init(cfg.External.Stripe.SecretKey, nil)
		sessions = api.CheckoutSessions
	} else {
		log.Warn().Msg("stripe secret key not set, checkout is disabled")
	}

	return newWithClient(sessions, cfg, otel)
}

func newWithClient(sessions sessionAPI, cfg *config.Config, otel otel.Otel) *stripeImpl {
	return &stripeImpl{
		sessions:   sessions,
		successURL: cfg.External.Stripe.SuccessURL,
		cancelURL:  cfg.External.Stripe.CancelURL,
		otel:       otel,
	}
}

// CreateCheckout opens a subscription-mode Checkout Session. The business id travels as
// client reference and metadata so a webhook can resolve the tenant.
func (s *stripeImpl) CreateCheckout(ctx context.Context, input CheckoutInput) (res Checkout, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".CreateCheckout")
	defer scope.End()
	defer scope.TraceIfError(err)

	if s.sessions == nil {
		return res, ErrNotConfigured
	}

	metadata := map[string]string{
		"business_id": input.BusinessID,
		"tier":        input.Tier,
	}

	params := &stripeGo.CheckoutSessionParams{
		Mode:              stripeGo.String(string(stripeGo.CheckoutSessionModeSubscription)),
		SuccessURL:        stripeGo.String(s.successURL),
		CancelURL:         stripeGo.String(s.cancelURL),
		ClientReferenceID: stripeGo.String(input.BusinessID),
		LineItems: []*stripeGo.CheckoutSessionLineItemParams{
			{
				Price:    stripeGo.String(input.PriceID),
				Quantity: stripeGo.Int64(1),
			},
		},
		Metadata: metadata,
		SubscriptionData: &stripeGo.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx

	if input.CustomerEmail != constant.Empty {
		params.CustomerEmail = stripeGo.String(input.CustomerEmail)
	}

	if input.IdempotencyKey != constant.Empty {
		params.IdempotencyKey = stripeGo.String(input.IdempotencyKey)
	}

	session, err := s.sessions.New(params)
	if err != nil {
		log.Error().Err(err).Str("business_id", input.BusinessID).Msg("failed to create checkout session")

		return res, fmt.Errorf("failed to create checkout session: %w", err)
	}

	return Checkout{SessionID: session.ID, URL: session.URL}, nil
}
