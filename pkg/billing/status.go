package billing

import (
	"time"

	"subcontrol-be/internal/entity"
)

// Reconcile returns the subscription with its derived status applied at now.
// An active subscription whose renewal date has passed becomes overdue; cancelled is never touched.
// The bool reports whether the returned copy differs from the input.
func Reconcile(sub entity.Subscription, now time.Time) (entity.Subscription, bool) {
	if sub.Status == entity.SubscriptionStatusActive && sub.NextRenewal.Before(now) {
		sub.Status = entity.SubscriptionStatusOverdue
		return sub, true
	}
	return sub, false
}

// ReconcileAll heals every subscription in subs. The returned slice holds fresh copies, changed
// holds the subset whose status moved and must be written back.
func ReconcileAll(subs []*entity.Subscription, now time.Time) (healed []*entity.Subscription, changed []*entity.Subscription) {
	healed = make([]*entity.Subscription, 0, len(subs))
	for _, s := range subs {
		next, moved := Reconcile(*s, now)
		healed = append(healed, &next)
		if moved {
			changed = append(changed, &next)
		}
	}
	return healed, changed
}

// NextChange is the earliest instant after now at which Reconcile or Attention would give a
// different answer for subs without any write. Zero when no active subscription is pending.
func NextChange(subs []*entity.Subscription, now time.Time) time.Time {
	var next time.Time
	consider := func(t time.Time) {
		if t.After(now) && (next.IsZero() || t.Before(next)) {
			next = t
		}
	}
	for _, s := range subs {
		if s.Status != entity.SubscriptionStatusActive {
			continue
		}
		consider(s.NextRenewal)
		consider(s.NextRenewal.Add(-AttentionHorizon))
	}
	return next
}
