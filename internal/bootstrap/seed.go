package bootstrap

import (
	"context"
	"time"

	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/repository/memory"
	"subcontrol-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const day = 24 * time.Hour

// DemoState is the sample data set: one subscription renewing soon, one overdue and one cancelled.
// Dates are relative to now.
func DemoState(now time.Time) *memory.State {
	acme := &entity.Customer{Id: uuid.New(), Name: "Acme Corp", Email: "contact@acme.com", Status: entity.CustomerStatusActive, Notes: "Key account"}
	john := &entity.Customer{Id: uuid.New(), Name: "John Doe", Email: "john@example.com", Status: entity.CustomerStatusActive}
	mary := &entity.Customer{Id: uuid.New(), Name: "Mary Smith", Email: "mary@example.com", Status: entity.CustomerStatusInactive, Notes: "Cancelled last month"}

	basic := &entity.Plan{Id: uuid.New(), Name: "Basic", Price: decimal.NewFromInt(29), Active: true, BillingCycle: entity.BillingCycleMonthly}
	pro := &entity.Plan{Id: uuid.New(), Name: "Professional", Price: decimal.NewFromInt(99), Active: true, BillingCycle: entity.BillingCycleMonthly}

	acmePro := &entity.Subscription{
		Id: uuid.New(), CustomerId: acme.Id, PlanId: pro.Id,
		StartDate:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		NextRenewal: now.Add(5 * day),
		Status:      entity.SubscriptionStatusActive,
	}
	johnBasic := &entity.Subscription{
		Id: uuid.New(), CustomerId: john.Id, PlanId: basic.Id,
		StartDate:   time.Date(2023, 5, 15, 0, 0, 0, 0, time.UTC),
		NextRenewal: now.Add(-2 * day),
		Status:      entity.SubscriptionStatusOverdue,
	}
	maryBasic := &entity.Subscription{
		Id: uuid.New(), CustomerId: mary.Id, PlanId: basic.Id,
		StartDate:   time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC),
		NextRenewal: time.Date(2023, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:      entity.SubscriptionStatusCancelled,
	}

	payment := func(sub *entity.Subscription, amount int64, paidAt time.Time) *entity.Payment {
		return &entity.Payment{
			Id:             uuid.New(),
			SubscriptionId: sub.Id,
			Amount:         decimal.NewFromInt(amount),
			PaidAt:         paidAt,
			Date:           paidAt,
		}
	}

	return &memory.State{
		Customers:     []*entity.Customer{acme, john, mary},
		Plans:         []*entity.Plan{basic, pro},
		Subscriptions: []*entity.Subscription{acmePro, johnBasic, maryBasic},
		Payments: []*entity.Payment{
			payment(acmePro, 99, now.Add(-25*day)),
			payment(johnBasic, 29, now.Add(-60*day)),
		},
	}
}

// SeedStore writes state through one unit of work. It does nothing and returns false when the
// store already holds customers.
func SeedStore(ctx context.Context, factory unitofwork.RepositoryFactory, state *memory.State) (bool, error) {
	uow := factory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}
	defer uow.Rollback()

	existing, err := uow.CustomerRepository().List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	for _, c := range state.Customers {
		if err := uow.CustomerRepository().Create(ctx, c); err != nil {
			return false, err
		}
	}
	for _, p := range state.Plans {
		if err := uow.PlanRepository().Create(ctx, p); err != nil {
			return false, err
		}
	}
	for _, s := range state.Subscriptions {
		if err := uow.SubscriptionRepository().Create(ctx, s); err != nil {
			return false, err
		}
	}
	for _, p := range state.Payments {
		if err := uow.PaymentRepository().Create(ctx, p); err != nil {
			return false, err
		}
	}

	if err := uow.Commit(); err != nil {
		return false, err
	}
	return true, nil
}
