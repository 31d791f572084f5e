package billing

import (
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
)

// PaymentOptions tunes ApplyPayment.
type PaymentOptions struct {
	// Reactivate must be set to accept a payment against a cancelled subscription.
	Reactivate bool
}

// RenewalResult describes a renewal applied to a subscription.
type RenewalResult struct {
	Subscription    entity.Subscription
	PreviousStatus  entity.SubscriptionStatus
	PreviousRenewal time.Time
	Reactivated     bool
}

// InitialRenewal is the first renewal date of a subscription starting at start.
func InitialRenewal(start time.Time) time.Time {
	return start.AddDate(0, 0, RenewalDays)
}

// NextRenewal extends the current period when it has not expired yet, otherwise renews from now.
func NextRenewal(sub entity.Subscription, now time.Time) time.Time {
	base := sub.NextRenewal
	if base.Before(now) {
		base = now
	}
	return base.AddDate(0, 0, RenewalDays)
}

// ApplyPayment computes the subscription state after one payment is recorded at now.
// Cancelled subscriptions are rejected unless opts.Reactivate is set.
func ApplyPayment(sub entity.Subscription, now time.Time, opts PaymentOptions) (*RenewalResult, error) {
	if !sub.Status.Valid() {
		return nil, apperror.Validation("status", "unknown subscription status "+string(sub.Status))
	}
	cancelled := sub.Status == entity.SubscriptionStatusCancelled
	if cancelled && !opts.Reactivate {
		return nil, apperror.Validation("subscription_id", "subscription is cancelled; reactivation must be confirmed explicitly")
	}

	res := &RenewalResult{
		PreviousStatus:  sub.Status,
		PreviousRenewal: sub.NextRenewal,
		Reactivated:     cancelled,
	}
	sub.NextRenewal = NextRenewal(sub, now)
	sub.Status = entity.SubscriptionStatusActive
	res.Subscription = sub
	return res, nil
}

// CalendarDay truncates t to midnight of its own day, keeping the location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// ParseDate accepts RFC3339 timestamps and plain YYYY-MM-DD dates (interpreted as UTC midnight).
func ParseDate(field, value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Time{}, apperror.Validation(field, "unparseable date "+value)
}
