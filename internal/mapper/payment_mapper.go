package mapper

import (
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:             p.Id,
		SubscriptionId: p.SubscriptionId,
		Amount:         p.Amount,
		PaidAt:         p.PaidAt,
		Date:           time.Time(p.Date),
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:             p.Id,
		SubscriptionId: p.SubscriptionId,
		Amount:         p.Amount,
		PaidAt:         p.PaidAt,
		Date:           datatypes.Date(p.Date),
		IdempotencyKey: p.IdempotencyKey,
		CreatedAt:      p.CreatedAt,
	}
}
