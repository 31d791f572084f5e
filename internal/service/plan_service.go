package service

import (
	"context"

	"subcontrol-be/internal/apperror"
	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

type IPlanService interface {
	List(ctx context.Context) ([]*dto.PlanResponse, error)
	Create(ctx context.Context, req *dto.PlanCreateRequest) (*dto.PlanResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.PlanUpdateRequest) (*dto.PlanResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	dashboard  DashboardCache
	logger     logger.ILogger
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, dashboard DashboardCache, logger logger.ILogger) IPlanService {
	return &planService{
		uowFactory: uowFactory,
		dashboard:  dashboard,
		logger:     logger,
	}
}

func (s *planService) List(ctx context.Context) ([]*dto.PlanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.PlanRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.PlansToResponse(plans), nil
}

func (s *planService) Create(ctx context.Context, req *dto.PlanCreateRequest) (*dto.PlanResponse, error) {
	if req.Price.IsNegative() {
		return nil, apperror.Validation("price", "must not be negative")
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}
	plan := &entity.Plan{
		Name:         req.Name,
		Price:        req.Price,
		Active:       active,
		BillingCycle: entity.BillingCycle(req.BillingCycle),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PlanRepository().Create(ctx, plan); err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()

	s.logger.Info("BILLING", "Plan created", map[string]interface{}{
		"planId": plan.Id.String(),
		"price":  plan.Price.String(),
	})
	return mapper.PlanToResponse(plan), nil
}

func (s *planService) Update(ctx context.Context, id uuid.UUID, req *dto.PlanUpdateRequest) (*dto.PlanResponse, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, apperror.Validation("price", "must not be negative")
	}

	patch := entity.PlanPatch{
		Name:   req.Name,
		Price:  req.Price,
		Active: req.Active,
	}
	if req.BillingCycle != nil {
		cycle := entity.BillingCycle(*req.BillingCycle)
		patch.BillingCycle = &cycle
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plan, err := uow.PlanRepository().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()
	return mapper.PlanToResponse(plan), nil
}

// Delete keeps subscriptions on the plan; they contribute zero to MRR afterwards.
func (s *planService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PlanRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.dashboard.Invalidate()

	s.logger.Info("BILLING", "Plan deleted", map[string]interface{}{
		"planId": id.String(),
	})
	return nil
}
