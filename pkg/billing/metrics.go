package billing

import (
	"subcontrol-be/internal/entity"

	"github.com/shopspring/decimal"
)

// Stats are the dashboard metrics of one snapshot.
type Stats struct {
	TotalCustomers       int
	ActiveSubscriptions  int
	OverdueSubscriptions int
	MRR                  decimal.Decimal
	TotalRevenue         decimal.Decimal
}

// Aggregate computes dashboard metrics. The snapshot is expected to be reconciled already.
func Aggregate(snap Snapshot) Stats {
	idx := NewIndex(snap.Customers, snap.Plans)
	stats := Stats{
		TotalCustomers: len(snap.Customers),
		MRR:            decimal.Zero,
		TotalRevenue:   decimal.Zero,
	}

	for _, s := range snap.Subscriptions {
		switch s.Status {
		case entity.SubscriptionStatusActive:
			stats.ActiveSubscriptions++
			stats.MRR = stats.MRR.Add(idx.PlanPrice(s.PlanId))
		case entity.SubscriptionStatusOverdue:
			stats.OverdueSubscriptions++
		}
	}

	for _, p := range snap.Payments {
		stats.TotalRevenue = stats.TotalRevenue.Add(p.Amount)
	}
	return stats
}
