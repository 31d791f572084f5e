package service

import (
	"context"

	"subcontrol-be/internal/dto"
	"subcontrol-be/internal/repository/unitofwork"
	"subcontrol-be/pkg/admin/dashboard"
	"subcontrol-be/pkg/admin/mapper"
)

type IDashboardService interface {
	Get(ctx context.Context) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	uowFactory unitofwork.RepositoryFactory
	aggregator *dashboard.Aggregator
}

func NewDashboardService(uowFactory unitofwork.RepositoryFactory, aggregator *dashboard.Aggregator) IDashboardService {
	return &dashboardService{
		uowFactory: uowFactory,
		aggregator: aggregator,
	}
}

func (s *dashboardService) Get(ctx context.Context) (*dto.DashboardResponse, error) {
	d, err := s.aggregator.GetDashboard(ctx, s.uowFactory.NewUnitOfWork(ctx))
	if err != nil {
		return nil, err
	}
	return mapper.DashboardToResponse(d), nil
}
