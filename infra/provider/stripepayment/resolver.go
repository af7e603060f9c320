// Package stripepayment derives payment outcomes from Stripe PaymentIntents.
package stripepayment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/crowdfund/pkg/config"
	"github.com/amirasaad/crowdfund/pkg/provider/payment"
	"github.com/stripe/stripe-go/v82"
)

// ErrPaymentInProgress is returned while the intent has not settled yet.
var ErrPaymentInProgress = errors.New("payment still in progress")

// IntentGetter retrieves a PaymentIntent.
type IntentGetter func(
	ctx context.Context,
	id string,
	params *stripe.PaymentIntentRetrieveParams,
) (*stripe.PaymentIntent, error)

// Resolver implements payment.Resolver on top of Stripe. It only needs the
// publishable key: a PaymentIntent can be read with its client secret.
type Resolver struct {
	get    IntentGetter
	logger *slog.Logger
}

// New creates a Resolver backed by the Stripe API.
func New(cfg *config.Stripe, logger *slog.Logger) *Resolver {
	client := stripe.NewClient(cfg.PublishableKey)
	return NewWithGetter(client.V1PaymentIntents.Retrieve, logger)
}

// NewWithGetter creates a Resolver that reads intents through get.
func NewWithGetter(get IntentGetter, logger *slog.Logger) *Resolver {
	return &Resolver{get: get, logger: logger.With("provider", "stripe")}
}

// ResolveOutcome maps the current state of a PaymentIntent to an Outcome.
func (r *Resolver) ResolveOutcome(ctx context.Context, paymentIntentID, clientSecret string) (*payment.Outcome, error) {
	log := r.logger.With("payment_intent_id", paymentIntentID)
	params := &stripe.PaymentIntentRetrieveParams{}
	if clientSecret != "" {
		params.ClientSecret = stripe.String(clientSecret)
	}
	pi, err := r.get(ctx, paymentIntentID, params)
	if err != nil {
		log.Error("Failed to retrieve payment intent", "error", err)
		return nil, fmt.Errorf("retrieve payment intent %s: %w", paymentIntentID, err)
	}
	out, err := outcomeOf(pi)
	if err != nil {
		log.Debug("Payment intent not settled", "status", pi.Status)
		return nil, err
	}
	log.Info("Payment outcome resolved", "status", out.Status)
	return out, nil
}

func outcomeOf(pi *stripe.PaymentIntent) (*payment.Outcome, error) {
	out := &payment.Outcome{PaymentIntentID: pi.ID}
	if pi.PaymentMethod != nil {
		out.PaymentMethodID = pi.PaymentMethod.ID
	}
	switch pi.Status {
	case stripe.PaymentIntentStatusSucceeded, stripe.PaymentIntentStatusRequiresCapture:
		out.Status = payment.OutcomeSucceeded
	case stripe.PaymentIntentStatusCanceled:
		out.Status = payment.OutcomeCanceled
		out.Message = string(pi.CancellationReason)
	case stripe.PaymentIntentStatusRequiresPaymentMethod:
		// a declined attempt sends the intent back here with the decline attached
		if pi.LastPaymentError == nil {
			return nil, fmt.Errorf("%w: %s", ErrPaymentInProgress, pi.Status)
		}
		out.Status = payment.OutcomeFailed
		out.Message = pi.LastPaymentError.Msg
	default:
		return nil, fmt.Errorf("%w: %s", ErrPaymentInProgress, pi.Status)
	}
	return out, nil
}

var _ payment.Resolver = (*Resolver)(nil)
