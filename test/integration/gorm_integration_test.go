package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/model"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/events"
	"subcontrol-be/pkg/admin/subscription"
	"subcontrol-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormBillingFlow(t *testing.T) {
	// Load .env from root
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err, "Failed to connect to DB")
	require.NoError(t, gormDB.AutoMigrate(&model.Customer{}, &model.Plan{}, &model.Subscription{}, &model.Payment{}))

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)

	customer := &entity.Customer{
		Name:   "Integration Customer",
		Email:  "it-" + uuid.NewString() + "@example.com",
		Status: entity.CustomerStatusActive,
	}
	require.NoError(t, uow.CustomerRepository().Create(ctx, customer))

	plan := &entity.Plan{Name: "Integration Plan", Price: decimal.RequireFromString("19.90"), Active: true}
	require.NoError(t, uow.PlanRepository().Create(ctx, plan))

	sub := &entity.Subscription{
		CustomerId:  customer.Id,
		PlanId:      plan.Id,
		StartDate:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		NextRenewal: time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:      entity.SubscriptionStatusActive,
	}
	require.NoError(t, uow.SubscriptionRepository().Create(ctx, sub))

	t.Cleanup(func() {
		gormDB.Where("subscription_id = ?", sub.Id).Delete(&model.Payment{})
		gormDB.Delete(&model.Subscription{}, "id = ?", sub.Id)
		gormDB.Delete(&model.Plan{}, "id = ?", plan.Id)
		gormDB.Delete(&model.Customer{}, "id = ?", customer.Id)
	})

	log := logger.NewNopLogger()
	manager := subscription.NewManager(log, events.NewBusPublisher(nil, log))
	manager.SetClock(func() time.Time { return time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC) })

	key := "it-" + uuid.NewString()
	res, err := manager.RecordPayment(ctx, uowFactory.NewUnitOfWork(ctx), subscription.PaymentInput{
		SubscriptionId: sub.Id,
		IdempotencyKey: &key,
	})
	require.NoError(t, err)
	assert.True(t, plan.Price.Equal(res.Payment.Amount))
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), res.Subscription.NextRenewal.UTC())

	t.Run("Replay returns the stored payment", func(t *testing.T) {
		again, err := manager.RecordPayment(ctx, uowFactory.NewUnitOfWork(ctx), subscription.PaymentInput{
			SubscriptionId: sub.Id,
			IdempotencyKey: &key,
		})
		require.NoError(t, err)
		assert.True(t, again.Replayed)
		assert.Equal(t, res.Payment.Id, again.Payment.Id)

		payments, err := uow.PaymentRepository().ListBySubscription(ctx, sub.Id)
		require.NoError(t, err)
		assert.Len(t, payments, 1)
	})

	t.Run("Unknown subscription", func(t *testing.T) {
		_, err := manager.RecordPayment(ctx, uowFactory.NewUnitOfWork(ctx), subscription.PaymentInput{SubscriptionId: uuid.New()})
		assert.True(t, apperror.IsNotFound(err))
	})
}
