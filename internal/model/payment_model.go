package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Payment struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SubscriptionId uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaidAt         time.Time       `gorm:"not null;index"`
	Date           datatypes.Date  `gorm:"not null"`
	IdempotencyKey *string         `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
