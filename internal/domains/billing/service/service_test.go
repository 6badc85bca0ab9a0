package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"bookly/config"
	"bookly/infras/otel/mocks"
	"bookly/infras/stripe"
	stripeMocks "bookly/infras/stripe/mocks"
	"bookly/internal/domains/billing/model/dto"
	"bookly/internal/domains/billing/service"
	businessMocks "bookly/internal/domains/business/mocks"
	businessModel "bookly/internal/domains/business/model"
	"bookly/internal/domains/plan"
	"bookly/shared/constant"
	"bookly/shared/failure"
)

func TestBillingService_Checkout(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockBusinessRepo := businessMocks.NewMockBusiness(ctrl)
	mockStripe := stripeMocks.NewMockStripe(ctrl)

	cfg := &config.Config{}
	cfg.External.Stripe.PriceIDs = map[string]string{"STARTER": "price_starter", "PROFESSIONAL": "price_pro"}

	svc := service.New(mockBusinessRepo, mockStripe, plan.NewGate(plan.DefaultTable()), cfg, mocks.NewOtel())
	ctx := context.WithValue(context.Background(), constant.ContextKeyBusinessID, "biz-1")

	business := businessModel.Business{ID: "biz-1", Email: "owner@example.com", Plan: plan.TierStarter, PlanStatus: plan.StatusActive}

	tests := []struct {
		name      string
		tier      plan.Tier
		setupMock func()
		wantCode  int
	}{
		{
			name: "creates a checkout session for the configured price",
			tier: plan.TierProfessional,
			setupMock: func() {
				mockBusinessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
				mockStripe.EXPECT().CreateCheckout(gomock.Any(), stripe.CheckoutInput{
					BusinessID:     "biz-1",
					Tier:           "PROFESSIONAL",
					PriceID:        "price_pro",
					CustomerEmail:  "owner@example.com",
					IdempotencyKey: "idem-1",
				}).Return(stripe.Checkout{SessionID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}, nil)
			},
		},
		{
			name:      "tier without a price",
			tier:      plan.TierEnterprise,
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "already on that plan",
			tier: plan.TierStarter,
			setupMock: func() {
				mockBusinessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "stripe disabled",
			tier: plan.TierProfessional,
			setupMock: func() {
				mockBusinessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
				mockStripe.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(stripe.Checkout{}, stripe.ErrNotConfigured)
			},
			wantCode: http.StatusNotImplemented,
		},
		{
			name: "stripe failure",
			tier: plan.TierProfessional,
			setupMock: func() {
				mockBusinessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(business, nil)
				mockStripe.EXPECT().CreateCheckout(gomock.Any(), gomock.Any()).Return(stripe.Checkout{}, errors.New("card declined"))
			},
			wantCode: http.StatusInternalServerError,
		},
		{
			name: "missing business",
			tier: plan.TierProfessional,
			setupMock: func() {
				mockBusinessRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(businessModel.Business{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Checkout(ctx, dto.CheckoutRequest{Tier: tt.tier}, "idem-1")
			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "https://checkout.stripe.com/cs_1", res.URL)
		})
	}
}
