package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment is append-only. Date is the billing reference day; the create flow sets it to PaidAt.
type Payment struct {
	Id             uuid.UUID
	SubscriptionId uuid.UUID
	Amount         decimal.Decimal
	PaidAt         time.Time
	Date           time.Time
	IdempotencyKey *string
	CreatedAt      time.Time
}
