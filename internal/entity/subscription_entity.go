// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionStatus string
type BillingCycle string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusOverdue   SubscriptionStatus = "overdue"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"

	BillingCycleMonthly BillingCycle = "monthly"
)

func (s SubscriptionStatus) Valid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusOverdue, SubscriptionStatusCancelled:
		return true
	}
	return false
}

type Plan struct {
	Id           uuid.UUID
	Name         string
	Price        decimal.Decimal
	Active       bool
	BillingCycle BillingCycle
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Subscription struct {
	Id          uuid.UUID
	CustomerId  uuid.UUID
	PlanId      uuid.UUID
	StartDate   time.Time
	NextRenewal time.Time
	Status      SubscriptionStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PlanPatch and SubscriptionPatch carry partial updates; nil fields are left untouched.
type PlanPatch struct {
	Name         *string
	Price        *decimal.Decimal
	Active       *bool
	BillingCycle *BillingCycle
}

type SubscriptionPatch struct {
	CustomerId  *uuid.UUID
	PlanId      *uuid.UUID
	StartDate   *time.Time
	NextRenewal *time.Time
	Status      *SubscriptionStatus
}

func (p PlanPatch) Apply(plan *Plan) {
	if p.Name != nil {
		plan.Name = *p.Name
	}
	if p.Price != nil {
		plan.Price = *p.Price
	}
	if p.Active != nil {
		plan.Active = *p.Active
	}
	if p.BillingCycle != nil {
		plan.BillingCycle = *p.BillingCycle
	}
}

func (p SubscriptionPatch) Apply(sub *Subscription) {
	if p.CustomerId != nil {
		sub.CustomerId = *p.CustomerId
	}
	if p.PlanId != nil {
		sub.PlanId = *p.PlanId
	}
	if p.StartDate != nil {
		sub.StartDate = *p.StartDate
	}
	if p.NextRenewal != nil {
		sub.NextRenewal = *p.NextRenewal
	}
	if p.Status != nil {
		sub.Status = *p.Status
	}
}
