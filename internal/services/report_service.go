package services

import (
	"context"

	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/finance"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
)

type ReportServiceInterface interface {
	GetReport(ctx context.Context, q finance.ReportQuery) (*dto.ReportDTO, error)
}

type ReportService struct {
	workspace *Workspace
	logger    *zap.Logger
}

func NewReportService(workspace *Workspace, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{workspace: workspace, logger: logger}
}

// GetReport строит отчет по завершенным записям. Нулевой период - текущий месяц,
// месяц без года относится к текущему году.
func (s *ReportService) GetReport(ctx context.Context, q finance.ReportQuery) (*dto.ReportDTO, error) {
	if !q.Period.Valid() {
		return nil, apperrors.NewBadRequestError("Месяц должен быть от 1 до 12")
	}
	if q.Period.Year == 0 {
		current := finance.PeriodOf(s.workspace.Now(), s.workspace.Location())
		if q.Period.Month == 0 {
			q.Period = current
		} else {
			q.Period.Year = current.Year
		}
	}

	list, err := s.workspace.Services()
	if err != nil {
		return nil, err
	}
	return &dto.ReportDTO{
		Report:           finance.BuildReport(list, q, s.workspace.Location()),
		ProfitShareLabel: constants.ProfitShareLabel,
	}, nil
}
