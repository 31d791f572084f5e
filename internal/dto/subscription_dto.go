package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dates accept RFC3339 or YYYY-MM-DD.
type SubscriptionCreateRequest struct {
	CustomerId uuid.UUID `json:"customer_id" validate:"required"`
	PlanId     uuid.UUID `json:"plan_id" validate:"required"`
	StartDate  string    `json:"start_date,omitempty"`
	Status     string    `json:"status,omitempty" validate:"omitempty,oneof=active overdue cancelled"`
}

type SubscriptionUpdateRequest struct {
	CustomerId  *uuid.UUID `json:"customer_id,omitempty"`
	PlanId      *uuid.UUID `json:"plan_id,omitempty"`
	StartDate   *string    `json:"start_date,omitempty"`
	NextRenewal *string    `json:"next_renewal,omitempty"`
	Status      *string    `json:"status,omitempty" validate:"omitempty,oneof=active overdue cancelled"`
}

// SubscriptionResponse resolves customer and plan names; "unknown" when a reference is dangling.
type SubscriptionResponse struct {
	Id           uuid.UUID       `json:"id"`
	CustomerId   uuid.UUID       `json:"customer_id"`
	CustomerName string          `json:"customer_name"`
	PlanId       uuid.UUID       `json:"plan_id"`
	PlanName     string          `json:"plan_name"`
	PlanPrice    decimal.Decimal `json:"plan_price"`
	StartDate    time.Time       `json:"start_date"`
	NextRenewal  time.Time       `json:"next_renewal"`
	Status       string          `json:"status"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
