package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Plan struct {
	Id           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Name         string          `gorm:"type:varchar(255);not null"`
	Price        decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active       bool            `gorm:"not null"`
	BillingCycle string          `gorm:"type:varchar(50);not null"`
	CreatedAt    time.Time       `gorm:"autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

// Subscription references are not enforced: customers and plans may be deleted underneath it.
type Subscription struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerId  uuid.UUID `gorm:"type:uuid;not null;index"`
	PlanId      uuid.UUID `gorm:"type:uuid;not null;index"`
	StartDate   time.Time `gorm:"not null"`
	NextRenewal time.Time `gorm:"not null;index"`
	Status      string    `gorm:"type:varchar(50);not null;index"`
	CreatedAt   time.Time `gorm:"autoCreateTime"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
