package project

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		target  int64
		current int64
		want    float64
	}{
		{name: "quarter funded", target: 1000, current: 250, want: 25.0},
		{name: "over funded is clamped", target: 1000, current: 1200, want: 100.0},
		{name: "zero target", target: 0, current: 500, want: 0},
		{name: "nothing raised", target: 1000, current: 0, want: 0},
		{name: "fully funded", target: 1000, current: 1000, want: 100.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := &Project{
				TargetAmount:  decimal.NewFromInt(tt.target),
				CurrentAmount: decimal.NewFromInt(tt.current),
			}
			assert.InDelta(t, tt.want, p.ProgressPercentage(), 1e-9)
		})
	}
}

func TestIsActive(t *testing.T) {
	t.Parallel()

	assert.True(t, (&Project{Status: StatusActive}).IsActive())
	assert.False(t, (&Project{Status: StatusCompleted}).IsActive())
	assert.False(t, (&Project{Status: StatusCancelled}).IsActive())
}

func TestDaysLeft(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, (&Project{EndDate: now.Add(10*24*time.Hour + time.Hour)}).DaysLeft(now))
	assert.Equal(t, 0, (&Project{EndDate: now.Add(-time.Hour)}).DaysLeft(now))
	assert.Equal(t, 0, (&Project{}).DaysLeft(now))
}
