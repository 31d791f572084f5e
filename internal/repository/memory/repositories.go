package memory

import (
	"context"
	"fmt"
	"sort"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/repository/contract"

	"github.com/google/uuid"
)

// Customers

type CustomerRepository struct {
	s *session
}

func NewCustomerRepository(store *Store) contract.CustomerRepository {
	return &CustomerRepository{s: &session{store: store}}
}

func (r *CustomerRepository) List(ctx context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.s.read(func(st *State) error {
		out = make([]*entity.Customer, len(st.Customers))
		for i, c := range st.Customers {
			out[i] = cloneCustomer(c)
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.read(func(st *State) error {
		for _, c := range st.Customers {
			if c.Id == id {
				out = cloneCustomer(c)
				return nil
			}
		}
		return apperror.NotFound("customer", id)
	})
	return out, err
}

func (r *CustomerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.s.write(func(st *State) error {
		if customer.Id == uuid.Nil {
			customer.Id = uuid.New()
		}
		now := r.s.store.now()
		customer.CreatedAt, customer.UpdatedAt = now, now
		st.Customers = append(st.Customers, cloneCustomer(customer))
		return nil
	})
}

func (r *CustomerRepository) Update(ctx context.Context, id uuid.UUID, patch entity.CustomerPatch) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.s.write(func(st *State) error {
		for i, c := range st.Customers {
			if c.Id != id {
				continue
			}
			next := cloneCustomer(c)
			patch.Apply(next)
			next.UpdatedAt = r.s.store.now()
			st.Customers[i] = next
			out = cloneCustomer(next)
			return nil
		}
		return apperror.NotFound("customer", id)
	})
	return out, err
}

func (r *CustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(st *State) error {
		for i, c := range st.Customers {
			if c.Id == id {
				st.Customers = append(st.Customers[:i], st.Customers[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("customer", id)
	})
}

// Plans

type PlanRepository struct {
	s *session
}

func NewPlanRepository(store *Store) contract.PlanRepository {
	return &PlanRepository{s: &session{store: store}}
}

func (r *PlanRepository) List(ctx context.Context) ([]*entity.Plan, error) {
	var out []*entity.Plan
	err := r.s.read(func(st *State) error {
		out = make([]*entity.Plan, len(st.Plans))
		for i, p := range st.Plans {
			out[i] = clonePlan(p)
		}
		return nil
	})
	return out, err
}

func (r *PlanRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var out *entity.Plan
	err := r.s.read(func(st *State) error {
		for _, p := range st.Plans {
			if p.Id == id {
				out = clonePlan(p)
				return nil
			}
		}
		return apperror.NotFound("plan", id)
	})
	return out, err
}

func (r *PlanRepository) Create(ctx context.Context, plan *entity.Plan) error {
	return r.s.write(func(st *State) error {
		if plan.Id == uuid.Nil {
			plan.Id = uuid.New()
		}
		if plan.BillingCycle == "" {
			plan.BillingCycle = entity.BillingCycleMonthly
		}
		now := r.s.store.now()
		plan.CreatedAt, plan.UpdatedAt = now, now
		st.Plans = append(st.Plans, clonePlan(plan))
		return nil
	})
}

func (r *PlanRepository) Update(ctx context.Context, id uuid.UUID, patch entity.PlanPatch) (*entity.Plan, error) {
	var out *entity.Plan
	err := r.s.write(func(st *State) error {
		for i, p := range st.Plans {
			if p.Id != id {
				continue
			}
			next := clonePlan(p)
			patch.Apply(next)
			next.UpdatedAt = r.s.store.now()
			st.Plans[i] = next
			out = clonePlan(next)
			return nil
		}
		return apperror.NotFound("plan", id)
	})
	return out, err
}

func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(st *State) error {
		for i, p := range st.Plans {
			if p.Id == id {
				st.Plans = append(st.Plans[:i], st.Plans[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("plan", id)
	})
}

// Subscriptions

type SubscriptionRepository struct {
	s *session
}

func NewSubscriptionRepository(store *Store) contract.SubscriptionRepository {
	return &SubscriptionRepository{s: &session{store: store}}
}

func (r *SubscriptionRepository) List(ctx context.Context) ([]*entity.Subscription, error) {
	var out []*entity.Subscription
	err := r.s.read(func(st *State) error {
		out = make([]*entity.Subscription, len(st.Subscriptions))
		for i, s := range st.Subscriptions {
			out[i] = cloneSubscription(s)
		}
		return nil
	})
	return out, err
}

func (r *SubscriptionRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	var out *entity.Subscription
	err := r.s.read(func(st *State) error {
		for _, s := range st.Subscriptions {
			if s.Id == id {
				out = cloneSubscription(s)
				return nil
			}
		}
		return apperror.NotFound("subscription", id)
	})
	return out, err
}

func (r *SubscriptionRepository) Create(ctx context.Context, subscription *entity.Subscription) error {
	return r.s.write(func(st *State) error {
		if subscription.Id == uuid.Nil {
			subscription.Id = uuid.New()
		}
		now := r.s.store.now()
		subscription.CreatedAt, subscription.UpdatedAt = now, now
		st.Subscriptions = append(st.Subscriptions, cloneSubscription(subscription))
		return nil
	})
}

func (r *SubscriptionRepository) Update(ctx context.Context, id uuid.UUID, patch entity.SubscriptionPatch) (*entity.Subscription, error) {
	var out *entity.Subscription
	err := r.s.write(func(st *State) error {
		for i, s := range st.Subscriptions {
			if s.Id != id {
				continue
			}
			next := cloneSubscription(s)
			patch.Apply(next)
			next.UpdatedAt = r.s.store.now()
			st.Subscriptions[i] = next
			out = cloneSubscription(next)
			return nil
		}
		return apperror.NotFound("subscription", id)
	})
	return out, err
}

func (r *SubscriptionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(func(st *State) error {
		for i, s := range st.Subscriptions {
			if s.Id == id {
				st.Subscriptions = append(st.Subscriptions[:i], st.Subscriptions[i+1:]...)
				return nil
			}
		}
		return apperror.NotFound("subscription", id)
	})
}

// Payments

type PaymentRepository struct {
	s *session
}

func NewPaymentRepository(store *Store) contract.PaymentRepository {
	return &PaymentRepository{s: &session{store: store}}
}

func newestFirst(payments []*entity.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaidAt.After(payments[j].PaidAt)
	})
}

func (r *PaymentRepository) List(ctx context.Context) ([]*entity.Payment, error) {
	var out []*entity.Payment
	err := r.s.read(func(st *State) error {
		out = make([]*entity.Payment, len(st.Payments))
		for i, p := range st.Payments {
			out[i] = clonePayment(p)
		}
		return nil
	})
	newestFirst(out)
	return out, err
}

func (r *PaymentRepository) ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.Payment, error) {
	out := make([]*entity.Payment, 0)
	err := r.s.read(func(st *State) error {
		for _, p := range st.Payments {
			if p.SubscriptionId == subscriptionId {
				out = append(out, clonePayment(p))
			}
		}
		return nil
	})
	newestFirst(out)
	return out, err
}

func (r *PaymentRepository) FindByIdempotencyKey(ctx context.Context, key string) (*entity.Payment, error) {
	var out *entity.Payment
	err := r.s.read(func(st *State) error {
		out = findByKey(st, key)
		return nil
	})
	return out, err
}

func findByKey(st *State, key string) *entity.Payment {
	for _, p := range st.Payments {
		if p.IdempotencyKey != nil && *p.IdempotencyKey == key {
			return clonePayment(p)
		}
	}
	return nil
}

func (r *PaymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.s.write(func(st *State) error {
		if payment.IdempotencyKey != nil && findByKey(st, *payment.IdempotencyKey) != nil {
			return fmt.Errorf("payment idempotency key already used: %w", apperror.ErrConflict)
		}
		if payment.Id == uuid.Nil {
			payment.Id = uuid.New()
		}
		payment.CreatedAt = r.s.store.now()
		st.Payments = append(st.Payments, clonePayment(payment))
		return nil
	})
}
