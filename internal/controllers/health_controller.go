package controllers

import (
	"net/http"
	"time"

	"service-tracker/internal/repositories"
	"service-tracker/internal/services"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HealthController struct {
	workspace *services.Workspace
	store     repositories.StoreInterface
	timeout   time.Duration
	logger    *zap.Logger
}

func NewHealthController(workspace *services.Workspace, store repositories.StoreInterface, timeout time.Duration, logger *zap.Logger) *HealthController {
	return &HealthController{workspace: workspace, store: store, timeout: timeout, logger: logger}
}

// Health проверяет доступность хранилища.
func (c *HealthController) Health(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.store.Ping(reqCtx); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusServiceUnavailable, "Хранилище недоступно", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, map[string]any{"state": c.workspace.Status().State}, "OK", http.StatusOK)
}

func (c *HealthController) State(ctx echo.Context) error {
	return utils.SuccessResponse(ctx, c.workspace.Status(), "Состояние данных", http.StatusOK)
}

// Reload перечитывает все ключи из хранилища.
func (c *HealthController) Reload(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.workspace.Load(reqCtx); err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(http.StatusServiceUnavailable, "Не удалось загрузить данные", err, nil),
			c.logger,
		)
	}
	return utils.SuccessResponse(ctx, c.workspace.Status(), "Данные перезагружены", http.StatusOK)
}
