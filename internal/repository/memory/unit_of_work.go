package memory

import (
	"context"
	"fmt"

	"subcontrol-be/internal/repository/contract"
	"subcontrol-be/internal/repository/unitofwork"
)

// UnitOfWork holds the store lock between Begin and Commit/Rollback. Begin snapshots the state,
// Rollback restores it and Commit persists the result.
type UnitOfWork struct {
	s *session
}

func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.s.inTx {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.s.store.mu.Lock()
	u.s.backup = u.s.store.state.clone()
	u.s.inTx = true
	return nil
}

func (u *UnitOfWork) Commit() error {
	if !u.s.inTx {
		return fmt.Errorf("no transaction to commit")
	}
	defer u.end()

	if err := u.s.store.persist(); err != nil {
		u.s.store.state = u.s.backup
		return err
	}
	return nil
}

func (u *UnitOfWork) Rollback() error {
	if !u.s.inTx {
		return fmt.Errorf("no transaction to rollback")
	}
	u.s.store.state = u.s.backup
	u.end()
	return nil
}

func (u *UnitOfWork) end() {
	u.s.inTx = false
	u.s.backup = nil
	u.s.store.mu.Unlock()
}

func (u *UnitOfWork) CustomerRepository() contract.CustomerRepository {
	return &CustomerRepository{s: u.s}
}

func (u *UnitOfWork) PlanRepository() contract.PlanRepository {
	return &PlanRepository{s: u.s}
}

func (u *UnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return &SubscriptionRepository{s: u.s}
}

func (u *UnitOfWork) PaymentRepository() contract.PaymentRepository {
	return &PaymentRepository{s: u.s}
}

type RepositoryFactory struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactory{store: store}
}

func (f *RepositoryFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &UnitOfWork{s: &session{store: f.store}}
}
