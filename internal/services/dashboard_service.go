package services

import (
	"context"

	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/finance"
	"service-tracker/pkg/constants"
)

type DashboardServiceInterface interface {
	GetDashboardStats(ctx context.Context) (*dto.DashboardDTO, error)
}

type DashboardService struct {
	workspace *Workspace
	logger    *zap.Logger
}

func NewDashboardService(workspace *Workspace, logger *zap.Logger) DashboardServiceInterface {
	return &DashboardService{workspace: workspace, logger: logger}
}

// GetDashboardStats считает сводку по всем записям относительно текущего момента.
func (s *DashboardService) GetDashboardStats(ctx context.Context) (*dto.DashboardDTO, error) {
	list, err := s.workspace.Services()
	if err != nil {
		return nil, err
	}
	now := s.workspace.Now()
	loc := s.workspace.Location()

	return &dto.DashboardDTO{
		DashboardStats:   finance.CalculateDashboardStats(list, now, loc),
		Period:           finance.PeriodOf(now, loc),
		ProfitShareLabel: constants.ProfitShareLabel,
	}, nil
}
