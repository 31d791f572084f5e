package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Prices accept a JSON number or string ("29.90").
type PlanCreateRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Price        decimal.Decimal `json:"price"`
	Active       *bool           `json:"active,omitempty"`
	BillingCycle string          `json:"billing_cycle" validate:"omitempty,oneof=monthly"`
}

type PlanUpdateRequest struct {
	Name         *string          `json:"name,omitempty" validate:"omitempty,max=255"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	Active       *bool            `json:"active,omitempty"`
	BillingCycle *string          `json:"billing_cycle,omitempty" validate:"omitempty,oneof=monthly"`
}

type PlanResponse struct {
	Id           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	Active       bool            `json:"active"`
	BillingCycle string          `json:"billing_cycle"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
