package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DashboardStats struct {
	TotalCustomers       int             `json:"total_customers"`
	ActiveSubscriptions  int             `json:"active_subscriptions"`
	OverdueSubscriptions int             `json:"overdue_subscriptions"`
	MRR                  decimal.Decimal `json:"mrr"`
	TotalRevenue         decimal.Decimal `json:"total_revenue"`
}

type AttentionItemResponse struct {
	SubscriptionId uuid.UUID       `json:"subscription_id"`
	CustomerName   string          `json:"customer_name"`
	PlanName       string          `json:"plan_name"`
	Amount         decimal.Decimal `json:"amount"`
	NextRenewal    time.Time       `json:"next_renewal"`
	Status         string          `json:"status"`
}

type DashboardResponse struct {
	Stats       DashboardStats          `json:"stats"`
	Attention   []AttentionItemResponse `json:"attention"`
	GeneratedAt time.Time               `json:"generated_at"`
}
