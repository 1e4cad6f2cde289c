package controllers

import (
	"net/http"
	"strings"
	"time"

	"service-tracker/internal/dto"
	"service-tracker/internal/entities"
	"service-tracker/internal/services"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ServiceRecordController struct {
	serviceRecordService services.ServiceRecordServiceInterface
	timeout              time.Duration
	logger               *zap.Logger
}

func NewServiceRecordController(serviceRecordService services.ServiceRecordServiceInterface, timeout time.Duration, logger *zap.Logger) *ServiceRecordController {
	return &ServiceRecordController{serviceRecordService: serviceRecordService, timeout: timeout, logger: logger}
}

func toServiceRecordDTOs(list []entities.ServiceRecord) []dto.ServiceRecordDTO {
	out := make([]dto.ServiceRecordDTO, len(list))
	for i, r := range list {
		out[i] = dto.NewServiceRecordDTO(r)
	}
	return out
}

func (c *ServiceRecordController) GetServices(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	status := strings.TrimSpace(ctx.QueryParam("status"))
	search := ctx.QueryParam("search")

	list, err := c.serviceRecordService.GetServices(reqCtx, status, search)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, toServiceRecordDTOs(list), "Список записей успешно получен", http.StatusOK)
}

func (c *ServiceRecordController) FindService(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	rec, err := c.serviceRecordService.FindService(reqCtx, ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewServiceRecordDTO(*rec), "Запись успешно найдена", http.StatusOK)
}

func (c *ServiceRecordController) CreateService(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	var payload dto.CreateServiceRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("CreateService: ошибка привязки данных", zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rec, err := c.serviceRecordService.CreateService(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewServiceRecordDTO(*rec), "Запись успешно создана", http.StatusCreated)
}

func (c *ServiceRecordController) UpdateService(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	var payload dto.UpdateServiceRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("UpdateService: ошибка привязки данных", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rec, err := c.serviceRecordService.UpdateService(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewServiceRecordDTO(*rec), "Запись успешно обновлена", http.StatusOK)
}

func (c *ServiceRecordController) PatchService(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	var payload dto.PatchServiceRecordDTO
	if err := ctx.Bind(&payload); err != nil {
		c.logger.Warn("PatchService: ошибка привязки данных", zap.String("id", ctx.Param("id")), zap.Error(err))
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rec, err := c.serviceRecordService.PatchService(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, dto.NewServiceRecordDTO(*rec), "Запись успешно обновлена", http.StatusOK)
}

func (c *ServiceRecordController) DeleteService(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.serviceRecordService.DeleteService(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Запись успешно удалена", http.StatusOK)
}

func (c *ServiceRecordController) ReorderServices(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	var payload dto.ReorderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	list, err := c.serviceRecordService.ReorderServices(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	c.logger.Info("Порядок записей обновлен", zap.Int("count", len(payload.IDs)), zap.String("mode", payload.Mode))
	return utils.SuccessResponse(ctx, toServiceRecordDTOs(list), "Порядок записей сохранен", http.StatusOK)
}
