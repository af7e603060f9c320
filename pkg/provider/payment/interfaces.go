package payment

import (
	"context"
)

// Resolver derives an Outcome from the payment provider for shells that only
// know the payment intent they handed to the provider's SDK.
type Resolver interface {
	ResolveOutcome(ctx context.Context, paymentIntentID, clientSecret string) (*Outcome, error)
}
