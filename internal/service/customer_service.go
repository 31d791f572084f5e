package service

import (
	"context"

	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/entity"
	"subcontrol-be/internal/pkg/logger"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/mapper"

	"github.com/google/uuid"
)

// DashboardCache is dropped after every write that can change dashboard figures.
type DashboardCache interface {
	Invalidate()
}

type ICustomerService interface {
	List(ctx context.Context) ([]*dto.CustomerResponse, error)
	Create(ctx context.Context, req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id uuid.UUID, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type customerService struct {
	uowFactory unitofwork.RepositoryFactory
	dashboard  DashboardCache
	logger     logger.ILogger
}

func NewCustomerService(uowFactory unitofwork.RepositoryFactory, dashboard DashboardCache, logger logger.ILogger) ICustomerService {
	return &customerService{
		uowFactory: uowFactory,
		dashboard:  dashboard,
		logger:     logger,
	}
}

func (s *customerService) List(ctx context.Context) ([]*dto.CustomerResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	customers, err := uow.CustomerRepository().List(ctx)
	if err != nil {
		return nil, err
	}
	return mapper.CustomersToResponse(customers), nil
}

func (s *customerService) Create(ctx context.Context, req *dto.CustomerCreateRequest) (*dto.CustomerResponse, error) {
	status := entity.CustomerStatus(req.Status)
	if status == "" {
		status = entity.CustomerStatusActive
	}

	customer := &entity.Customer{
		Name:   req.Name,
		Email:  req.Email,
		Status: status,
		Notes:  req.Notes,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerRepository().Create(ctx, customer); err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()

	s.logger.Info("BILLING", "Customer created", map[string]interface{}{
		"customerId": customer.Id.String(),
	})
	return mapper.CustomerToResponse(customer), nil
}

func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *dto.CustomerUpdateRequest) (*dto.CustomerResponse, error) {
	patch := entity.CustomerPatch{
		Name:  req.Name,
		Email: req.Email,
		Notes: req.Notes,
	}
	if req.Status != nil {
		status := entity.CustomerStatus(*req.Status)
		patch.Status = &status
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	customer, err := uow.CustomerRepository().Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	s.dashboard.Invalidate()
	return mapper.CustomerToResponse(customer), nil
}

// Delete leaves the customer's subscriptions in place; they render as "unknown" afterwards.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.CustomerRepository().Delete(ctx, id); err != nil {
		return err
	}
	s.dashboard.Invalidate()

	s.logger.Info("BILLING", "Customer deleted", map[string]interface{}{
		"customerId": id.String(),
	})
	return nil
}
