package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentCreateRequest records a payment. Amount defaults to the plan price, PaidAt to now.
// Reactivate must be true to pay a cancelled subscription.
type PaymentCreateRequest struct {
	SubscriptionId uuid.UUID        `json:"subscription_id" validate:"required"`
	Amount         *decimal.Decimal `json:"amount,omitempty"`
	PaidAt         string           `json:"paid_at,omitempty"`
	IdempotencyKey string           `json:"idempotency_key,omitempty" validate:"omitempty,max=255"`
	Reactivate     bool             `json:"reactivate"`
}

type PaymentResponse struct {
	Id             uuid.UUID       `json:"id"`
	SubscriptionId uuid.UUID       `json:"subscription_id"`
	CustomerName   string          `json:"customer_name,omitempty"`
	PlanName       string          `json:"plan_name,omitempty"`
	Amount         decimal.Decimal `json:"amount"`
	PaidAt         time.Time       `json:"paid_at"`
	Date           string          `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
}

type PaymentRecordResponse struct {
	Payment      PaymentResponse      `json:"payment"`
	Subscription SubscriptionResponse `json:"subscription"`
	Replayed     bool                 `json:"replayed"`
	Reactivated  bool                 `json:"reactivated"`
}
