package unitofwork

import (
	"context"

	"subcontrol-be/internal/repository/contract"
)

// UnitOfWork groups repository calls into one transaction. Repositories must be obtained after
// Begin to take part in it.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	CustomerRepository() contract.CustomerRepository
	PlanRepository() contract.PlanRepository
	SubscriptionRepository() contract.SubscriptionRepository
	PaymentRepository() contract.PaymentRepository
}
