package mapper

import (
	"testing"
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/pkg/admin/dashboard"
	"subcontrol-be/pkg/billing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubscriptionToResponseResolvesNames(t *testing.T) {
	acme := &entity.Customer{Id: uuid.New(), Name: "Acme Corp"}
	pro := &entity.Plan{Id: uuid.New(), Name: "Pro", Price: decimal.NewFromInt(99)}
	idx := billing.NewIndex([]*entity.Customer{acme}, []*entity.Plan{pro})

	known := SubscriptionToResponse(&entity.Subscription{Id: uuid.New(), CustomerId: acme.Id, PlanId: pro.Id, Status: entity.SubscriptionStatusActive}, idx)
	assert.Equal(t, "Acme Corp", known.CustomerName)
	assert.Equal(t, "Pro", known.PlanName)
	assert.True(t, decimal.NewFromInt(99).Equal(known.PlanPrice))
	assert.Equal(t, "active", known.Status)

	dangling := SubscriptionToResponse(&entity.Subscription{Id: uuid.New(), CustomerId: uuid.New(), PlanId: uuid.New()}, idx)
	assert.Equal(t, billing.Unknown, dangling.CustomerName)
	assert.Equal(t, billing.Unknown, dangling.PlanName)
	assert.True(t, dangling.PlanPrice.IsZero())

	assert.Nil(t, SubscriptionToResponse(nil, idx))
}

func TestPaymentsToResponse(t *testing.T) {
	acme := &entity.Customer{Id: uuid.New(), Name: "Acme Corp"}
	basic := &entity.Plan{Id: uuid.New(), Name: "Basic", Price: decimal.NewFromInt(29)}
	sub := &entity.Subscription{Id: uuid.New(), CustomerId: acme.Id, PlanId: basic.Id}
	idx := billing.NewIndex([]*entity.Customer{acme}, []*entity.Plan{basic})
	paidAt := time.Date(2024, 1, 10, 15, 30, 0, 0, time.UTC)

	res := PaymentsToResponse([]*entity.Payment{
		{Id: uuid.New(), SubscriptionId: sub.Id, Amount: decimal.NewFromInt(29), PaidAt: paidAt, Date: paidAt},
		{Id: uuid.New(), SubscriptionId: uuid.New(), Amount: decimal.NewFromInt(5), PaidAt: paidAt, Date: paidAt},
	}, []*entity.Subscription{sub}, idx)

	require.Len(t, res, 2)
	assert.Equal(t, "Acme Corp", res[0].CustomerName)
	assert.Equal(t, "Basic", res[0].PlanName)
	assert.Equal(t, "2024-01-10", res[0].Date)
	assert.Empty(t, res[1].CustomerName)
}

func TestDashboardToResponse(t *testing.T) {
	renewal := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	d := &dashboard.Dashboard{
		Stats: billing.Stats{TotalCustomers: 3, ActiveSubscriptions: 1, OverdueSubscriptions: 1, MRR: decimal.NewFromInt(99), TotalRevenue: decimal.Zero},
		Attention: []billing.AttentionItem{{
			Subscription: entity.Subscription{Id: uuid.New(), NextRenewal: renewal, Status: entity.SubscriptionStatusOverdue},
			CustomerName: "John Doe",
			PlanName:     "Basic",
			Amount:       decimal.NewFromInt(29),
		}},
	}

	res := DashboardToResponse(d)
	assert.Equal(t, 3, res.Stats.TotalCustomers)
	require.Len(t, res.Attention, 1)
	assert.Equal(t, "overdue", res.Attention[0].Status)
	assert.Equal(t, renewal, res.Attention[0].NextRenewal)
}
