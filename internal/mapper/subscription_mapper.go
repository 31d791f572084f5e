package mapper

import (
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Price:        p.Price,
		Active:       p.Active,
		BillingCycle: entity.BillingCycle(p.BillingCycle),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	cycle := p.BillingCycle
	if cycle == "" {
		cycle = entity.BillingCycleMonthly
	}
	return &model.Plan{
		Id:           p.Id,
		Name:         p.Name,
		Price:        p.Price,
		Active:       p.Active,
		BillingCycle: string(cycle),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:          s.Id,
		CustomerId:  s.CustomerId,
		PlanId:      s.PlanId,
		StartDate:   s.StartDate,
		NextRenewal: s.NextRenewal,
		Status:      entity.SubscriptionStatus(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:          s.Id,
		CustomerId:  s.CustomerId,
		PlanId:      s.PlanId,
		StartDate:   s.StartDate,
		NextRenewal: s.NextRenewal,
		Status:      string(s.Status),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
