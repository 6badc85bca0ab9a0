package dto

import "bookly/internal/domains/plan"

type CheckoutRequest struct {
	Tier plan.Tier `json:"tier" validate:"required,oneof=STARTER PROFESSIONAL ENTERPRISE"`
}

type CheckoutResponse struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}
