package mapper

import (
	"time"

	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/entity"
	"subcontrol-be/pkg/admin/dashboard"
	"subcontrol-be/pkg/billing"

	"github.com/google/uuid"
)

// CustomerToResponse converts entity to response DTO
func CustomerToResponse(c *entity.Customer) *dto.CustomerResponse {
	if c == nil {
		return nil
	}
	return &dto.CustomerResponse{
		Id:        c.Id,
		Name:      c.Name,
		Email:     c.Email,
		Status:    string(c.Status),
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func CustomersToResponse(customers []*entity.Customer) []*dto.CustomerResponse {
	res := make([]*dto.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		res = append(res, CustomerToResponse(c))
	}
	return res
}

// PlanToResponse converts entity to response DTO
func PlanToResponse(p *entity.Plan) *dto.PlanResponse {
	if p == nil {
		return nil
	}
	return &dto.PlanResponse{
		Id:           p.Id,
		Name:         p.Name,
		Price:        p.Price,
		Active:       p.Active,
		BillingCycle: string(p.BillingCycle),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func PlansToResponse(plans []*entity.Plan) []*dto.PlanResponse {
	res := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		res = append(res, PlanToResponse(p))
	}
	return res
}

// SubscriptionToResponse resolves customer and plan through idx.
func SubscriptionToResponse(s *entity.Subscription, idx *billing.Index) *dto.SubscriptionResponse {
	if s == nil {
		return nil
	}
	return &dto.SubscriptionResponse{
		Id:           s.Id,
		CustomerId:   s.CustomerId,
		CustomerName: idx.CustomerName(s.CustomerId),
		PlanId:       s.PlanId,
		PlanName:     idx.PlanName(s.PlanId),
		PlanPrice:    idx.PlanPrice(s.PlanId),
		StartDate:    s.StartDate,
		NextRenewal:  s.NextRenewal,
		Status:       string(s.Status),
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

func SubscriptionsToResponse(subs []*entity.Subscription, idx *billing.Index) []*dto.SubscriptionResponse {
	res := make([]*dto.SubscriptionResponse, 0, len(subs))
	for _, s := range subs {
		res = append(res, SubscriptionToResponse(s, idx))
	}
	return res
}

// PaymentToResponse converts entity to response DTO. Names are left empty when sub is nil.
func PaymentToResponse(p *entity.Payment, sub *entity.Subscription, idx *billing.Index) *dto.PaymentResponse {
	if p == nil {
		return nil
	}
	res := &dto.PaymentResponse{
		Id:             p.Id,
		SubscriptionId: p.SubscriptionId,
		Amount:         p.Amount,
		PaidAt:         p.PaidAt,
		Date:           p.Date.Format(time.DateOnly),
		CreatedAt:      p.CreatedAt,
	}
	if sub != nil && idx != nil {
		res.CustomerName = idx.CustomerName(sub.CustomerId)
		res.PlanName = idx.PlanName(sub.PlanId)
	}
	return res
}

// PaymentsToResponse resolves each payment's subscription from subs.
func PaymentsToResponse(payments []*entity.Payment, subs []*entity.Subscription, idx *billing.Index) []*dto.PaymentResponse {
	byId := make(map[uuid.UUID]*entity.Subscription, len(subs))
	for _, s := range subs {
		byId[s.Id] = s
	}
	res := make([]*dto.PaymentResponse, 0, len(payments))
	for _, p := range payments {
		res = append(res, PaymentToResponse(p, byId[p.SubscriptionId], idx))
	}
	return res
}

// DashboardToResponse converts aggregator output to the API shape
func DashboardToResponse(d *dashboard.Dashboard) *dto.DashboardResponse {
	if d == nil {
		return nil
	}
	attention := make([]dto.AttentionItemResponse, 0, len(d.Attention))
	for _, item := range d.Attention {
		attention = append(attention, dto.AttentionItemResponse{
			SubscriptionId: item.Subscription.Id,
			CustomerName:   item.CustomerName,
			PlanName:       item.PlanName,
			Amount:         item.Amount,
			NextRenewal:    item.Subscription.NextRenewal,
			Status:         string(item.Subscription.Status),
		})
	}
	return &dto.DashboardResponse{
		Stats: dto.DashboardStats{
			TotalCustomers:       d.Stats.TotalCustomers,
			ActiveSubscriptions:  d.Stats.ActiveSubscriptions,
			OverdueSubscriptions: d.Stats.OverdueSubscriptions,
			MRR:                  d.Stats.MRR,
			TotalRevenue:         d.Stats.TotalRevenue,
		},
		Attention:   attention,
		GeneratedAt: d.TakenAt,
	}
}
