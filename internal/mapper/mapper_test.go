package mapper

import (
	"testing"
	"time"

	"subcontrol-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPlanToModelDefaultsBillingCycle(t *testing.T) {
	m := NewSubscriptionMapper()
	plan := &entity.Plan{Id: uuid.New(), Name: "Basic", Price: decimal.NewFromInt(29), Active: true}

	got := m.PlanToModel(plan)
	assert.Equal(t, "monthly", got.BillingCycle)
	assert.Equal(t, entity.BillingCycleMonthly, m.PlanToEntity(got).BillingCycle)
}

func TestPaymentDateKeepsCalendarDay(t *testing.T) {
	m := NewPaymentMapper()
	paidAt := time.Date(2024, time.January, 10, 15, 4, 5, 0, time.UTC)
	key := "retry-1"
	p := &entity.Payment{Id: uuid.New(), SubscriptionId: uuid.New(), Amount: decimal.NewFromInt(99), PaidAt: paidAt, Date: paidAt, IdempotencyKey: &key}

	back := m.ToEntity(m.ToModel(p))
	assert.Equal(t, paidAt, back.PaidAt)
	assert.Equal(t, 10, back.Date.Day())
	assert.Equal(t, &key, back.IdempotencyKey)
	assert.Nil(t, m.ToEntity(nil))
	assert.Nil(t, m.ToModel(nil))
}
