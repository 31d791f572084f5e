package service

import (
	"context"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/mapper"
	"subcontrol-be/pkg/admin/subscription"
	"subcontrol-be/pkg/billing"

	"github.com/google/uuid"
)

type ISubscriptionService interface {
	List(ctx context.Context) ([]*dto.SubscriptionResponse, error)
	// ListPayable returns every subscription a payment can be recorded against without reactivation.
	ListPayable(ctx context.Context) ([]*dto.SubscriptionResponse, error)
	Create(ctx context.Context, req *dto.SubscriptionCreateRequest) (*dto.SubscriptionResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.SubscriptionUpdateRequest) (*dto.SubscriptionResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
	ListPayments(ctx context.Context, id uuid.UUID) ([]*dto.PaymentResponse, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *subscription.Manager
	dashboard  DashboardCache
	logger     logger.ILogger
}

func NewSubscriptionService(uowFactory unitofwork.RepositoryFactory, manager *subscription.Manager, dashboard DashboardCache, logger logger.ILogger) ISubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		manager:    manager,
		dashboard:  dashboard,
		logger:     logger,
	}
}

func (s *subscriptionService) List(ctx context.Context) ([]*dto.SubscriptionResponse, error) {
	snap, err := s.manager.Snapshot(ctx, s.uowFactory.NewUnitOfWork(ctx))
	if err != nil {
		return nil, err
	}
	idx := billing.NewIndex(snap.Customers, snap.Plans)
	return mapper.SubscriptionsToResponse(snap.Subscriptions, idx), nil
}

func (s *subscriptionService) ListPayable(ctx context.Context) ([]*dto.SubscriptionResponse, error) {
	snap, err := s.manager.Snapshot(ctx, s.uowFactory.NewUnitOfWork(ctx))
	if err != nil {
		return nil, err
	}
	idx := billing.NewIndex(snap.Customers, snap.Plans)

	res := make([]*dto.SubscriptionResponse, 0, len(snap.Subscriptions))
	for _, sub := range snap.Subscriptions {
		if sub.Status == entity.SubscriptionStatusCancelled {
			continue
		}
		res = append(res, mapper.SubscriptionToResponse(sub, idx))
	}
	return res, nil
}

func (s *subscriptionService) Create(ctx context.Context, req *dto.SubscriptionCreateRequest) (*dto.SubscriptionResponse, error) {
	in := subscription.SubscriptionInput{
		CustomerId: req.CustomerId,
		PlanId:     req.PlanId,
		Status:     entity.SubscriptionStatus(req.Status),
	}
	if req.StartDate != "" {
		start, err := billing.ParseDate("start_date", req.StartDate)
		if err != nil {
			return nil, err
		}
		in.StartDate = start
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := s.manager.CreateSubscription(ctx, uow, in)
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()

	idx, err := referenceIndex(ctx, uow, sub)
	if err != nil {
		return nil, err
	}
	return mapper.SubscriptionToResponse(sub, idx), nil
}

func (s *subscriptionService) Update(ctx context.Context, id uuid.UUID, req *dto.SubscriptionUpdateRequest) (*dto.SubscriptionResponse, error) {
	patch := entity.SubscriptionPatch{
		CustomerId: req.CustomerId,
		PlanId:     req.PlanId,
	}
	if req.StartDate != nil {
		start, err := billing.ParseDate("start_date", *req.StartDate)
		if err != nil {
			return nil, err
		}
		patch.StartDate = &start
	}
	if req.NextRenewal != nil {
		renewal, err := billing.ParseDate("next_renewal", *req.NextRenewal)
		if err != nil {
			return nil, err
		}
		patch.NextRenewal = &renewal
	}
	if req.Status != nil {
		status := entity.SubscriptionStatus(*req.Status)
		if !status.Valid() {
			return nil, apperror.Validation("status", "must be one of active, overdue, cancelled")
		}
		patch.Status = &status
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if req.CustomerId != nil {
		if _, err := uow.CustomerRepository().FindById(ctx, *req.CustomerId); err != nil {
			return nil, missingReference("customer_id", err)
		}
	}
	if req.PlanId != nil {
		if _, err := uow.PlanRepository().FindById(ctx, *req.PlanId); err != nil {
			return nil, missingReference("plan_id", err)
		}
	}

	sub, err := uow.SubscriptionRepository().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	// An edited renewal date may already be in the past.
	sub, err = s.manager.Heal(ctx, uow, sub)
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()

	s.logger.Info("SUBSCRIPTION", "Subscription updated", map[string]interface{}{
		"subscriptionId": id.String(),
		"status":         string(sub.Status),
	})

	idx, err := referenceIndex(ctx, uow, sub)
	if err != nil {
		return nil, err
	}
	return mapper.SubscriptionToResponse(sub, idx), nil
}

// Delete keeps the subscription's payments: they are append-only and still count toward revenue.
func (s *subscriptionService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.dashboard.Invalidate()

	s.logger.Info("SUBSCRIPTION", "Subscription deleted", map[string]interface{}{
		"subscriptionId": id.String(),
	})
	return nil
}

func (s *subscriptionService) ListPayments(ctx context.Context, id uuid.UUID) ([]*dto.PaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := s.manager.Subscription(ctx, uow, id)
	if err != nil {
		return nil, err
	}
	payments, err := uow.PaymentRepository().ListBySubscription(ctx, id)
	if err != nil {
		return nil, err
	}
	idx, err := referenceIndex(ctx, uow, sub)
	if err != nil {
		return nil, err
	}
	return mapper.PaymentsToResponse(payments, []*entity.Subscription{sub}, idx), nil
}

// referenceIndex resolves the customer and plan of one subscription. Dangling references are left out.
func referenceIndex(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription) (*billing.Index, error) {
	var customers []*entity.Customer
	var plans []*entity.Plan

	customer, err := uow.CustomerRepository().FindById(ctx, sub.CustomerId)
	switch {
	case err == nil:
		customers = append(customers, customer)
	case !apperror.IsNotFound(err):
		return nil, err
	}

	plan, err := uow.PlanRepository().FindById(ctx, sub.PlanId)
	switch {
	case err == nil:
		plans = append(plans, plan)
	case !apperror.IsNotFound(err):
		return nil, err
	}

	return billing.NewIndex(customers, plans), nil
}

func missingReference(field string, err error) error {
	if apperror.IsNotFound(err) {
		return apperror.Validation(field, "does not reference an existing record")
	}
	return err
}
