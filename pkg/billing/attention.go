package billing

import (
	"sort"
	"time"

	"subcontrol-be/internal/entity"

	"github.com/shopspring/decimal"
)

// AttentionItem is one row of the "needs attention" list.
type AttentionItem struct {
	Subscription entity.Subscription
	CustomerName string
	PlanName     string
	Amount       decimal.Decimal
}

func needsAttention(s *entity.Subscription, now time.Time) bool {
	switch s.Status {
	case entity.SubscriptionStatusOverdue:
		return true
	case entity.SubscriptionStatusActive:
		return s.NextRenewal.Before(now.Add(AttentionHorizon))
	}
	return false
}

// Attention lists overdue subscriptions and active ones expiring within AttentionHorizon,
// soonest renewal first, at most AttentionLimit entries.
func Attention(snap Snapshot, now time.Time) []AttentionItem {
	idx := NewIndex(snap.Customers, snap.Plans)

	items := make([]AttentionItem, 0)
	for _, s := range snap.Subscriptions {
		if !needsAttention(s, now) {
			continue
		}
		items = append(items, AttentionItem{
			Subscription: *s,
			CustomerName: idx.CustomerName(s.CustomerId),
			PlanName:     idx.PlanName(s.PlanId),
			Amount:       idx.PlanPrice(s.PlanId),
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Subscription.NextRenewal.Before(items[j].Subscription.NextRenewal)
	})

	if len(items) > AttentionLimit {
		items = items[:AttentionLimit]
	}
	return items
}
