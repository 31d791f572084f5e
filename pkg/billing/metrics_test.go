package billing

import (
	"testing"
	"time"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fixture struct {
	customers []*entity.Customer
	basic     *entity.Plan
	pro       *entity.Plan
}

func newFixture() fixture {
	return fixture{
		customers: []*entity.Customer{
			{Id: uuid.New(), Name: "Acme", Status: entity.CustomerStatusActive},
			{Id: uuid.New(), Name: "John", Status: entity.CustomerStatusActive},
			{Id: uuid.New(), Name: "Mary", Status: entity.CustomerStatusInactive},
		},
		basic: &entity.Plan{Id: uuid.New(), Name: "Basic", Price: decimal.NewFromInt(29), Active: true},
		pro:   &entity.Plan{Id: uuid.New(), Name: "Pro", Price: decimal.NewFromInt(99), Active: true},
	}
}

func TestAggregateDashboardScenario(t *testing.T) {
	f := newFixture()
	snap := Snapshot{
		Customers: f.customers,
		Plans:     []*entity.Plan{f.basic, f.pro},
		Subscriptions: []*entity.Subscription{
			{Id: uuid.New(), CustomerId: f.customers[0].Id, PlanId: f.pro.Id, Status: entity.SubscriptionStatusActive},
			{Id: uuid.New(), CustomerId: f.customers[1].Id, PlanId: f.basic.Id, Status: entity.SubscriptionStatusOverdue},
		},
	}

	stats := Aggregate(snap)

	assert.Equal(t, 3, stats.TotalCustomers)
	assert.Equal(t, 1, stats.ActiveSubscriptions)
	assert.Equal(t, 1, stats.OverdueSubscriptions)
	assert.True(t, decimal.NewFromInt(99).Equal(stats.MRR), "mrr = %s", stats.MRR)
}

func TestAggregateMRR(t *testing.T) {
	f := newFixture()
	dangling := &entity.Subscription{Id: uuid.New(), PlanId: uuid.New(), Status: entity.SubscriptionStatusActive}
	pro := &entity.Subscription{Id: uuid.New(), PlanId: f.pro.Id, Status: entity.SubscriptionStatusActive}
	basic := &entity.Subscription{Id: uuid.New(), PlanId: f.basic.Id, Status: entity.SubscriptionStatusActive}
	cancelled := &entity.Subscription{Id: uuid.New(), PlanId: f.pro.Id, Status: entity.SubscriptionStatusCancelled}

	plans := []*entity.Plan{f.basic, f.pro}
	full := Aggregate(Snapshot{Plans: plans, Subscriptions: []*entity.Subscription{dangling, pro, basic, cancelled}})
	assert.True(t, decimal.NewFromInt(128).Equal(full.MRR))
	assert.Equal(t, 3, full.ActiveSubscriptions)

	withoutPro := Aggregate(Snapshot{Plans: plans, Subscriptions: []*entity.Subscription{dangling, basic, cancelled}})
	assert.True(t, full.MRR.Sub(f.pro.Price).Equal(withoutPro.MRR))

	withoutDangling := Aggregate(Snapshot{Plans: plans, Subscriptions: []*entity.Subscription{pro, basic, cancelled}})
	assert.True(t, full.MRR.Equal(withoutDangling.MRR), "unresolved plan contributes zero")
}

func TestAggregateTotalRevenue(t *testing.T) {
	snap := Snapshot{
		Payments: []*entity.Payment{
			{Amount: decimal.RequireFromString("99.90")},
			{Amount: decimal.RequireFromString("29.10")},
		},
	}
	stats := Aggregate(snap)
	assert.True(t, decimal.RequireFromString("129").Equal(stats.TotalRevenue))
	assert.Equal(t, 0, stats.TotalCustomers)
	assert.True(t, stats.MRR.IsZero())
}

func TestAggregateEmpty(t *testing.T) {
	stats := Aggregate(Snapshot{TakenAt: time.Now()})
	assert.Equal(t, Stats{MRR: decimal.Zero, TotalRevenue: decimal.Zero}, stats)
}
