package payment

// OutcomeStatus is the result the payment UI reports for an investment.
type OutcomeStatus string

const (
	// OutcomeSucceeded indicates the payment was authorised by the provider.
	OutcomeSucceeded OutcomeStatus = "success"
	// OutcomeCanceled indicates the user abandoned the payment.
	OutcomeCanceled OutcomeStatus = "cancel"
	// OutcomeFailed indicates the provider declined the payment.
	OutcomeFailed OutcomeStatus = "failure"
)

// Valid reports whether s is one of the known outcomes.
func (s OutcomeStatus) Valid() bool {
	switch s {
	case OutcomeSucceeded, OutcomeCanceled, OutcomeFailed:
		return true
	default:
		return false
	}
}

// Outcome is the "payment outcome received" signal for one investment.
type Outcome struct {
	Status          OutcomeStatus `json:"status" validate:"required,oneof=success cancel failure"`
	PaymentIntentID string        `json:"payment_intent_id,omitempty"`
	PaymentMethodID string        `json:"payment_method_id,omitempty"`
	Message         string        `json:"message,omitempty"`
}
