// Package billing is the subscription lifecycle and renewal engine.
//
// Every function here is pure: it receives an in-memory snapshot of entities and returns either a
// recomputed copy or derived view data. Persisting results is the caller's job.
package billing

import (
	"time"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	// RenewalDays is the length of one billing period in calendar days.
	RenewalDays = 30
	// AttentionHorizon is how far ahead an active subscription counts as expiring.
	AttentionHorizon = 3 * 24 * time.Hour
	// AttentionLimit caps the attention list.
	AttentionLimit = 5
	// Unknown is rendered in place of a customer or plan reference that does not resolve.
	Unknown = "unknown"
)

// Snapshot is a full copy of the entity collections taken at TakenAt.
type Snapshot struct {
	Customers     []*entity.Customer
	Plans         []*entity.Plan
	Subscriptions []*entity.Subscription
	Payments      []*entity.Payment
	TakenAt       time.Time
}

// Index resolves references inside a snapshot.
type Index struct {
	customers map[uuid.UUID]*entity.Customer
	plans     map[uuid.UUID]*entity.Plan
}

func NewIndex(customers []*entity.Customer, plans []*entity.Plan) *Index {
	idx := &Index{
		customers: make(map[uuid.UUID]*entity.Customer, len(customers)),
		plans:     make(map[uuid.UUID]*entity.Plan, len(plans)),
	}
	for _, c := range customers {
		idx.customers[c.Id] = c
	}
	for _, p := range plans {
		idx.plans[p.Id] = p
	}
	return idx
}

func (i *Index) CustomerName(id uuid.UUID) string {
	if c, ok := i.customers[id]; ok {
		return c.Name
	}
	return Unknown
}

func (i *Index) PlanName(id uuid.UUID) string {
	if p, ok := i.plans[id]; ok {
		return p.Name
	}
	return Unknown
}

// PlanPrice returns zero for an unresolved plan.
func (i *Index) PlanPrice(id uuid.UUID) decimal.Decimal {
	if p, ok := i.plans[id]; ok {
		return p.Price
	}
	return decimal.Zero
}
