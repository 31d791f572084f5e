package dashboard

import (
	"context"
	"time"

	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/subscription"
	"subcontrol-be/pkg/billing"

	"github.com/patrickmn/go-cache"
)

const cacheKey = "dashboard"

// Dashboard is the metrics and attention list of one snapshot.
type Dashboard struct {
	Stats     billing.Stats
	Attention []billing.AttentionItem
	TakenAt   time.Time
}

// entry is a cached dashboard with the instant its numbers stop being true without any write.
type entry struct {
	dashboard  *Dashboard
	validUntil time.Time
}

func (e entry) fresh(now time.Time) bool {
	return e.validUntil.IsZero() || now.Before(e.validUntil)
}

// Aggregator handles dashboard statistics
type Aggregator struct {
	logger        logger.ILogger
	subscriptions *subscription.Manager
	cache         *cache.Cache
}

// NewAggregator caches results for ttl. A zero ttl disables caching.
// A cached dashboard is also dropped when the manager heals a status, or once the
// manager's clock reaches the next renewal or attention boundary it was computed against.
func NewAggregator(logger logger.ILogger, subscriptions *subscription.Manager, ttl time.Duration) *Aggregator {
	a := &Aggregator{
		logger:        logger,
		subscriptions: subscriptions,
	}
	if ttl > 0 {
		a.cache = cache.New(ttl, 2*ttl)
		subscriptions.OnStatusChange(a.Invalidate)
	}
	return a
}

// GetDashboard computes stats and attention from a single reconciled snapshot.
func (a *Aggregator) GetDashboard(ctx context.Context, uow unitofwork.UnitOfWork) (*Dashboard, error) {
	if a.cache != nil {
		if x, found := a.cache.Get(cacheKey); found {
			if e := x.(entry); e.fresh(a.subscriptions.Now()) {
				return e.dashboard, nil
			}
		}
	}

	snap, err := a.subscriptions.Snapshot(ctx, uow)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Stats:     billing.Aggregate(*snap),
		Attention: billing.Attention(*snap, snap.TakenAt),
		TakenAt:   snap.TakenAt,
	}

	a.logger.Debug("DASHBOARD", "Dashboard computed", map[string]interface{}{
		"customers": d.Stats.TotalCustomers,
		"active":    d.Stats.ActiveSubscriptions,
		"overdue":   d.Stats.OverdueSubscriptions,
		"mrr":       d.Stats.MRR.String(),
		"attention": len(d.Attention),
	})

	if a.cache != nil {
		a.cache.Set(cacheKey, entry{
			dashboard:  d,
			validUntil: billing.NextChange(snap.Subscriptions, snap.TakenAt),
		}, cache.DefaultExpiration)
	}
	return d, nil
}

// Invalidate drops the cached dashboard. Every billing write calls it.
func (a *Aggregator) Invalidate() {
	if a.cache != nil {
		a.cache.Delete(cacheKey)
	}
}
