package service

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/client"

	"github.com/voyageur/backend/internal/domain"
)

// PaymentService is a thin proxy over Stripe payment intents: the frontend's
// booking flow posts an amount, receives a client secret, and completes the
// payment against Stripe directly. No payment state is stored server-side.
type PaymentService struct {
	stripe *client.API
}

// NewPaymentService constructs a PaymentService with its own Stripe client.
// The key is scoped to this instance rather than stripe-go's package-level
// default, so tests and multi-tenant setups can hold separate clients.
func NewPaymentService(secretKey string) *PaymentService {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &PaymentService{stripe: sc}
}

// CreateIntent creates a payment intent for the given amount (in the smallest
// currency unit) and returns its client secret. Currency defaults to usd.
func (s *PaymentService) CreateIntent(ctx context.Context, amount int64, currency string) (string, error) {
	if amount <= 0 {
		return "", fmt.Errorf("%w: amount must be a positive number of cents", domain.ErrValidation)
	}
	if currency == "" {
		currency = "usd"
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	pi, err := s.stripe.PaymentIntents.New(params)
	if err != nil {
		return "", fmt.Errorf("service.PaymentService.CreateIntent: %w: %v", domain.ErrUpstream, err)
	}
	return pi.ClientSecret, nil
}
