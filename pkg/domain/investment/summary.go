package investment

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Summary is the dashboard view of a user's investments.
type Summary struct {
	TotalInvested  decimal.Decimal `json:"total_invested"`
	Active         int             `json:"active"`
	Completed      int             `json:"completed"`
	Failed         int             `json:"failed"`
	RecentActivity []*Investment   `json:"recent_activity"`
}

// Summarize builds a Summary from list. Only completed investments count
// towards the total. RecentActivity holds at most recent items, newest first.
func Summarize(list []*Investment, recent int) *Summary {
	s := &Summary{TotalInvested: decimal.Zero}
	for _, inv := range list {
		switch inv.Status {
		case StatusCompleted:
			s.Completed++
			s.TotalInvested = s.TotalInvested.Add(inv.Amount)
		case StatusPending:
			s.Active++
		case StatusFailed:
			s.Failed++
		}
	}

	sorted := make([]*Investment, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(a, b int) bool {
		return sorted[a].CreatedAt.After(sorted[b].CreatedAt)
	})
	if recent >= 0 && len(sorted) > recent {
		sorted = sorted[:recent]
	}
	s.RecentActivity = sorted
	return s
}
