package subscription

import (
	"context"
	"time"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/events"
	"subcontrol-be/pkg/billing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentInput describes a payment to record. Zero PaidAt means now; nil Amount means the plan price.
type PaymentInput struct {
	SubscriptionId uuid.UUID
	Amount         *decimal.Decimal
	PaidAt         time.Time
	IdempotencyKey *string
	Reactivate     bool
}

// PaymentResult contains the outcome of RecordPayment
type PaymentResult struct {
	Payment      *entity.Payment
	Subscription *entity.Subscription
	Replayed     bool
	Reactivated  bool
}

// Manager runs the renewal engine against the entity store, one unit of work per operation.
type Manager struct {
	logger    logger.ILogger
	publisher events.Publisher
	now       func() time.Time

	onStatusChange []func()
}

func NewManager(logger logger.ILogger, publisher events.Publisher) *Manager {
	return &Manager{
		logger:    logger,
		publisher: publisher,
		now:       time.Now,
	}
}

// SetClock replaces the time source. Tests and the CLI's --at flag use it.
func (m *Manager) SetClock(now func() time.Time) {
	m.now = now
}

func (m *Manager) Now() time.Time {
	return m.now()
}

// OnStatusChange registers fn to run after stored statuses were healed to overdue.
// Call it during wiring, before the manager serves requests.
func (m *Manager) OnStatusChange(fn func()) {
	m.onStatusChange = append(m.onStatusChange, fn)
}

// markedOverdue logs, publishes and notifies for subscriptions whose overdue status was written back.
func (m *Manager) markedOverdue(ctx context.Context, changed []*entity.Subscription) {
	if len(changed) == 0 {
		return
	}
	m.logger.Info("SUBSCRIPTION", "Marked subscriptions overdue", map[string]interface{}{
		"count": len(changed),
	})
	for _, sub := range changed {
		m.publisher.PublishSubscriptionOverdue(ctx, sub)
	}
	for _, fn := range m.onStatusChange {
		fn()
	}
}

// Subscription reads one subscription and heals its stored status the way Snapshot does.
func (m *Manager) Subscription(ctx context.Context, uow unitofwork.UnitOfWork, id uuid.UUID) (*entity.Subscription, error) {
	sub, err := uow.SubscriptionRepository().FindById(ctx, id)
	if err != nil {
		return nil, err
	}
	return m.Heal(ctx, uow, sub)
}

// Heal reconciles a subscription that was just read or written and stores the overdue status if it moved.
func (m *Manager) Heal(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*entity.Subscription, error) {
	next, moved := billing.Reconcile(*sub, m.now())
	if !moved {
		return sub, nil
	}
	updated, err := uow.SubscriptionRepository().Update(ctx, sub.Id, entity.SubscriptionPatch{Status: &next.Status})
	if err != nil {
		return nil, err
	}
	m.markedOverdue(ctx, []*entity.Subscription{updated})
	return updated, nil
}

// Snapshot reads every collection, reconciles subscription status and writes back the ones that moved.
func (m *Manager) Snapshot(ctx context.Context, uow unitofwork.UnitOfWork) (*billing.Snapshot, error) {
	now := m.now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	customers, err := uow.CustomerRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	plans, err := uow.PlanRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	subs, err := uow.SubscriptionRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	payments, err := uow.PaymentRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	healed, changed := billing.ReconcileAll(subs, now)
	for _, sub := range changed {
		status := sub.Status
		if _, err := uow.SubscriptionRepository().Update(ctx, sub.Id, entity.SubscriptionPatch{Status: &status}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.markedOverdue(ctx, changed)

	return &billing.Snapshot{
		Customers:     customers,
		Plans:         plans,
		Subscriptions: healed,
		Payments:      payments,
		TakenAt:       now,
	}, nil
}

// Reconcile heals stored statuses and returns the subscriptions that were moved to overdue.
func (m *Manager) Reconcile(ctx context.Context, uow unitofwork.UnitOfWork) ([]*entity.Subscription, error) {
	now := m.now()

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	subs, err := uow.SubscriptionRepository().List(ctx)
	if err != nil {
		return nil, err
	}

	_, changed := billing.ReconcileAll(subs, now)
	for _, sub := range changed {
		status := sub.Status
		if _, err := uow.SubscriptionRepository().Update(ctx, sub.Id, entity.SubscriptionPatch{Status: &status}); err != nil {
			return nil, err
		}
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.markedOverdue(ctx, changed)
	return changed, nil
}

// RecordPayment appends a payment and renews its subscription in one transaction.
func (m *Manager) RecordPayment(ctx context.Context, uow unitofwork.UnitOfWork, in PaymentInput) (*PaymentResult, error) {
	if in.Amount != nil && in.Amount.IsNegative() {
		return nil, apperror.Validation("amount", "must not be negative")
	}
	now := m.now()
	paidAt := in.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if in.IdempotencyKey != nil {
		existing, err := uow.PaymentRepository().FindByIdempotencyKey(ctx, *in.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return m.replay(ctx, uow, existing, in.SubscriptionId)
		}
	}

	sub, err := uow.SubscriptionRepository().FindById(ctx, in.SubscriptionId)
	if err != nil {
		return nil, err
	}

	amount := decimal.Zero
	if in.Amount != nil {
		amount = *in.Amount
	} else {
		plan, err := uow.PlanRepository().FindById(ctx, sub.PlanId)
		switch {
		case err == nil:
			amount = plan.Price
		case !apperror.IsNotFound(err):
			return nil, err
		}
	}

	// The period is extended from the moment of recording; PaidAt only dates the payment.
	renewal, err := billing.ApplyPayment(*sub, now, billing.PaymentOptions{Reactivate: in.Reactivate})
	if err != nil {
		return nil, err
	}

	payment := &entity.Payment{
		SubscriptionId: sub.Id,
		Amount:         amount,
		PaidAt:         paidAt,
		Date:           billing.CalendarDay(paidAt),
		IdempotencyKey: in.IdempotencyKey,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		if apperror.IsConflict(err) && in.IdempotencyKey != nil {
			// Lost a race on the key; the winner's payment is the result.
			_ = uow.Rollback()
			existing, ferr := uow.PaymentRepository().FindByIdempotencyKey(ctx, *in.IdempotencyKey)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return m.replay(ctx, uow, existing, in.SubscriptionId)
			}
		}
		return nil, err
	}

	next := renewal.Subscription
	updated, err := uow.SubscriptionRepository().Update(ctx, sub.Id, entity.SubscriptionPatch{
		NextRenewal: &next.NextRenewal,
		Status:      &next.Status,
	})
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("PAYMENT", "Payment recorded", map[string]interface{}{
		"paymentId":       payment.Id.String(),
		"subscriptionId":  sub.Id.String(),
		"amount":          amount.String(),
		"previousRenewal": renewal.PreviousRenewal,
		"nextRenewal":     updated.NextRenewal,
		"reactivated":     renewal.Reactivated,
	})

	m.publisher.PublishPaymentRecorded(ctx, payment, updated)
	m.publisher.PublishSubscriptionRenewed(ctx, updated, renewal.PreviousRenewal)
	if renewal.Reactivated {
		m.publisher.PublishSubscriptionReactivated(ctx, updated)
	}

	return &PaymentResult{
		Payment:      payment,
		Subscription: updated,
		Reactivated:  renewal.Reactivated,
	}, nil
}

func (m *Manager) replay(ctx context.Context, uow unitofwork.UnitOfWork, existing *entity.Payment, subscriptionId uuid.UUID) (*PaymentResult, error) {
	if existing.SubscriptionId != subscriptionId {
		return nil, apperror.ErrConflict
	}
	sub, err := uow.SubscriptionRepository().FindById(ctx, existing.SubscriptionId)
	if err != nil {
		return nil, err
	}

	m.logger.Info("PAYMENT", "Replayed payment for idempotency key", map[string]interface{}{
		"paymentId":      existing.Id.String(),
		"subscriptionId": subscriptionId.String(),
	})

	return &PaymentResult{
		Payment:      existing,
		Subscription: sub,
		Replayed:     true,
	}, nil
}

// SubscriptionInput describes a new subscription. Zero StartDate means now, empty Status means active.
type SubscriptionInput struct {
	CustomerId uuid.UUID
	PlanId     uuid.UUID
	StartDate  time.Time
	Status     entity.SubscriptionStatus
}

// CreateSubscription checks both references and stores the subscription with its first renewal date.
func (m *Manager) CreateSubscription(ctx context.Context, uow unitofwork.UnitOfWork, in SubscriptionInput) (*entity.Subscription, error) {
	status := in.Status
	if status == "" {
		status = entity.SubscriptionStatusActive
	}
	if !status.Valid() {
		return nil, apperror.Validation("status", "must be one of active, overdue, cancelled")
	}
	start := in.StartDate
	if start.IsZero() {
		start = m.now()
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if _, err := uow.CustomerRepository().FindById(ctx, in.CustomerId); err != nil {
		return nil, referenceError("customer_id", err)
	}
	if _, err := uow.PlanRepository().FindById(ctx, in.PlanId); err != nil {
		return nil, referenceError("plan_id", err)
	}

	sub := &entity.Subscription{
		CustomerId:  in.CustomerId,
		PlanId:      in.PlanId,
		StartDate:   start,
		NextRenewal: billing.InitialRenewal(start),
		Status:      status,
	}
	// A backdated start can already be past its first renewal.
	healed, overdue := billing.Reconcile(*sub, m.now())
	sub.Status = healed.Status
	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	m.logger.Info("SUBSCRIPTION", "Subscription created", map[string]interface{}{
		"subscriptionId": sub.Id.String(),
		"customerId":     sub.CustomerId.String(),
		"planId":         sub.PlanId.String(),
		"nextRenewal":    sub.NextRenewal,
	})
	m.publisher.PublishSubscriptionCreated(ctx, sub)
	if overdue {
		m.markedOverdue(ctx, []*entity.Subscription{sub})
	}

	return sub, nil
}

// referenceError turns a missing reference into a validation error and passes store failures through.
func referenceError(field string, err error) error {
	if apperror.IsNotFound(err) {
		return apperror.Validation(field, "does not reference an existing record")
	}
	return err
}
