// Package investment holds the investment record, its payment lifecycle and
// the dashboard summary derived from a user's investments.
package investment

import (
	"fmt"
	"time"

	"github.com/amirasaad/crowdfund/pkg/domain"
	"github.com/shopspring/decimal"
)

// Status is the payment lifecycle state of an investment.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusRefunded  Status = "REFUNDED"
	StatusCancelled Status = "CANCELLED"
)

// IsTerminal reports whether s accepts no further payment transitions.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusRefunded, StatusCancelled:
		return true
	default:
		return false
	}
}

// Investment is a pledge of money from a user to a project.
type Investment struct {
	ID            int64           `json:"id"`
	ProjectID     int64           `json:"project_id"`
	UserID        int64           `json:"user_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        Status          `json:"status"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	// ClientSecret is handed out by the server while a payment is required.
	// It is never stored locally.
	ClientSecret string    `json:"client_secret,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RequiresPayment reports whether the payment UI must collect a payment for this investment.
func (i *Investment) RequiresPayment() bool {
	return i.Status == StatusPending && i.ClientSecret != ""
}

// CanTransition reports whether the investment may move to the given status.
// Only pending investments move, and only into a terminal state. Terminal
// states never change again.
func (i *Investment) CanTransition(to Status) bool {
	return i.Status == StatusPending && to.IsTerminal()
}

// Transition moves the investment to the given status.
func (i *Investment) Transition(to Status, at time.Time) error {
	if !i.CanTransition(to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, i.Status, to)
	}
	i.Status = to
	i.UpdatedAt = at
	return nil
}
