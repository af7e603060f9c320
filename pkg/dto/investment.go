package dto

import (
	"github.com/amirasaad/crowdfund/pkg/domain/investment"
	"github.com/shopspring/decimal"
)

// InvestmentRequest is the body of POST /api/investments/.
type InvestmentRequest struct {
	ProjectID     int64           `json:"project_id" validate:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount" validate:"gt=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,max=50"`
}

// PaymentConfirmationRequest is the body of POST /api/investments/{id}/confirm-payment/.
type PaymentConfirmationRequest struct {
	PaymentIntentID string `json:"stripe_payment_intent_id" validate:"required"`
	PaymentMethodID string `json:"stripe_payment_method_id,omitempty"`
}

// PaymentConfirmationResponse is returned by the confirm-payment endpoint.
type PaymentConfirmationResponse struct {
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Investment *investment.Investment `json:"investment,omitempty"`
}
