package service

import (
	"context"

	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/mapper"
	"subcontrol-be/pkg/admin/subscription"
	"subcontrol-be/pkg/billing"
)

type IPaymentService interface {
	// List returns every payment, newest first.
	List(ctx context.Context) ([]*dto.PaymentResponse, error)
	Record(ctx context.Context, req *dto.PaymentCreateRequest) (*dto.PaymentRecordResponse, error)
}

type paymentService struct {
	uowFactory unitofwork.RepositoryFactory
	manager    *subscription.Manager
	dashboard  DashboardCache
}

func NewPaymentService(uowFactory unitofwork.RepositoryFactory, manager *subscription.Manager, dashboard DashboardCache) IPaymentService {
	return &paymentService{
		uowFactory: uowFactory,
		manager:    manager,
		dashboard:  dashboard,
	}
}

func (s *paymentService) List(ctx context.Context) ([]*dto.PaymentResponse, error) {
	snap, err := s.manager.Snapshot(ctx, s.uowFactory.NewUnitOfWork(ctx))
	if err != nil {
		return nil, err
	}
	idx := billing.NewIndex(snap.Customers, snap.Plans)
	return mapper.PaymentsToResponse(snap.Payments, snap.Subscriptions, idx), nil
}

func (s *paymentService) Record(ctx context.Context, req *dto.PaymentCreateRequest) (*dto.PaymentRecordResponse, error) {
	in := subscription.PaymentInput{
		SubscriptionId: req.SubscriptionId,
		Amount:         req.Amount,
		Reactivate:     req.Reactivate,
	}
	if req.PaidAt != "" {
		paidAt, err := billing.ParseDate("paid_at", req.PaidAt)
		if err != nil {
			return nil, err
		}
		in.PaidAt = paidAt
	}
	if req.IdempotencyKey != "" {
		key := req.IdempotencyKey
		in.IdempotencyKey = &key
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	res, err := s.manager.RecordPayment(ctx, uow, in)
	if err != nil {
		return nil, err
	}
	if res.Replayed {
		// A replayed subscription is read as stored and may have lapsed since.
		if res.Subscription, err = s.manager.Heal(ctx, uow, res.Subscription); err != nil {
			return nil, err
		}
	} else {
		s.dashboard.Invalidate()
	}

	idx, err := referenceIndex(ctx, uow, res.Subscription)
	if err != nil {
		return nil, err
	}
	return &dto.PaymentRecordResponse{
		Payment:      *mapper.PaymentToResponse(res.Payment, res.Subscription, idx),
		Subscription: *mapper.SubscriptionToResponse(res.Subscription, idx),
		Replayed:     res.Replayed,
		Reactivated:  res.Reactivated,
	}, nil
}
