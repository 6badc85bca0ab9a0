package stripe

import (
	stripeGo "github.com/stripe/stripe-go/v79"
)

type sessionAPI interface {
	New(params *stripeGo.CheckoutSessionParams) (*stripeGo.CheckoutSession, error)
}
