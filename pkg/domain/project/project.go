// Package project holds the crowdfunding project record and its derived values.
package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

var hundred = decimal.NewFromInt(100)

// Project is a fundraising campaign as returned by the server.
type Project struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Status        Status          `json:"status"`
	CreatorID     int64           `json:"creator_id"`
	CategoryID    int64           `json:"category_id"`
	ImageURL      string          `json:"image_url,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	EndDate       time.Time       `json:"end_date"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProgressPercentage returns how much of the target has been raised, clamped
// to [0, 100]. A project without a positive target reports 0.
func (p *Project) ProgressPercentage() float64 {
	if !p.TargetAmount.IsPositive() {
		return 0
	}
	pct := p.CurrentAmount.Div(p.TargetAmount).Mul(hundred)
	if pct.GreaterThan(hundred) {
		pct = hundred
	}
	if pct.IsNegative() {
		return 0
	}
	return pct.InexactFloat64()
}

// IsActive reports whether the project still accepts investments.
func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

// DaysLeft returns the whole days remaining until EndDate, or 0 once it has passed.
func (p *Project) DaysLeft(now time.Time) int {
	if p.EndDate.IsZero() || !p.EndDate.After(now) {
		return 0
	}
	return int(p.EndDate.Sub(now).Hours() / 24)
}
