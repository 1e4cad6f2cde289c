package controllers

import (
	"net/http"
	"time"

	"service-tracker/internal/services"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	timeout          time.Duration
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, timeout time.Duration, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, timeout: timeout, logger: logger}
}

func (c *DashboardController) GetDashboardStats(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	stats, err := c.dashboardService.GetDashboardStats(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика успешно получена", http.StatusOK)
}
