package bootstrap

import (
	"context"
	"testing"
	"time"

	"subcontrol-be/internal/repository/memory"
	"subcontrol-be/pkg/billing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedStore(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	store, err := memory.NewStore(nil)
	require.NoError(t, err)
	factory := memory.NewRepositoryFactory(store)

	seeded, err := SeedStore(context.Background(), factory, DemoState(now))
	require.NoError(t, err)
	assert.True(t, seeded)

	seeded, err = SeedStore(context.Background(), factory, DemoState(now))
	require.NoError(t, err)
	assert.False(t, seeded, "second run leaves existing data alone")

	uow := factory.NewUnitOfWork(context.Background())
	customers, err := uow.CustomerRepository().List(context.Background())
	require.NoError(t, err)
	plans, err := uow.PlanRepository().List(context.Background())
	require.NoError(t, err)
	subs, err := uow.SubscriptionRepository().List(context.Background())
	require.NoError(t, err)
	payments, err := uow.PaymentRepository().List(context.Background())
	require.NoError(t, err)

	assert.Len(t, customers, 3)
	assert.Len(t, plans, 2)
	assert.Len(t, subs, 3)
	assert.Len(t, payments, 2)

	snap := billing.Snapshot{Customers: customers, Plans: plans, Subscriptions: subs, Payments: payments, TakenAt: now}
	stats := billing.Aggregate(snap)
	assert.Equal(t, 1, stats.ActiveSubscriptions)
	assert.Equal(t, 1, stats.OverdueSubscriptions)
	assert.True(t, decimal.NewFromInt(99).Equal(stats.MRR))
	assert.True(t, decimal.NewFromInt(128).Equal(stats.TotalRevenue))
}
