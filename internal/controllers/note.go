package controllers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"service-tracker/internal/dto"
	"service-tracker/internal/services"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type NoteController struct {
	noteService        services.NoteServiceInterface
	missingPartService services.MissingPartServiceInterface
	timeout            time.Duration
	logger             *zap.Logger
}

func NewNoteController(
	noteService services.NoteServiceInterface,
	missingPartService services.MissingPartServiceInterface,
	timeout time.Duration,
	logger *zap.Logger,
) *NoteController {
	return &NoteController{
		noteService:        noteService,
		missingPartService: missingPartService,
		timeout:            timeout,
		logger:             logger,
	}
}

func (c *NoteController) GetNotes(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	notes, err := c.noteService.GetNotes(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, notes, "Список заметок успешно получен", http.StatusOK)
}

func (c *NoteController) bindNote(ctx echo.Context) (dto.NoteDTO, error) {
	var payload dto.NoteDTO
	if err := ctx.Bind(&payload); err != nil {
		return payload, apperrors.NewBadRequestError("Неверный формат данных")
	}
	if err := ctx.Validate(&payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func (c *NoteController) CreateNote(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := c.bindNote(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	note, err := c.noteService.CreateNote(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, note, "Заметка успешно создана", http.StatusCreated)
}

func (c *NoteController) UpdateNote(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := c.bindNote(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	note, err := c.noteService.UpdateNote(reqCtx, ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, note, "Заметка успешно обновлена", http.StatusOK)
}

func (c *NoteController) DeleteNote(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.noteService.DeleteNote(reqCtx, ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Заметка успешно удалена", http.StatusOK)
}

func (c *NoteController) GetMissingParts(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	parts, err := c.missingPartService.GetMissingParts(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, parts, "Список недостающих деталей получен", http.StatusOK)
}

func (c *NoteController) AddMissingPart(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	var payload dto.MissingPartDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверный формат данных"), c.logger)
	}
	payload.Name = strings.TrimSpace(payload.Name)
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	parts, err := c.missingPartService.AddMissingPart(reqCtx, payload.Name)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, parts, "Деталь добавлена", http.StatusCreated)
}

func (c *NoteController) RemoveMissingPart(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		return utils.ErrorResponse(ctx,
			apperrors.NewHttpError(
				http.StatusBadRequest,
				"Неверный индекс",
				err,
				map[string]interface{}{"param": ctx.Param("index")},
			),
			c.logger,
		)
	}

	parts, err := c.missingPartService.RemoveMissingPart(reqCtx, index)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, parts, "Деталь удалена", http.StatusOK)
}
