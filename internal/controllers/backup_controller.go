package controllers

import (
	"io"
	"net/http"
	"strings"
	"time"

	"service-tracker/config"
	"service-tracker/internal/services"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"
	"service-tracker/pkg/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type BackupController struct {
	backupService services.BackupServiceInterface
	timeout       time.Duration
	logger        *zap.Logger
}

func NewBackupController(backupService services.BackupServiceInterface, timeout time.Duration, logger *zap.Logger) *BackupController {
	return &BackupController{backupService: backupService, timeout: timeout, logger: logger}
}

// Export отдает файл резервной копии на скачивание.
func (c *BackupController) Export(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.backupService.Export(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+services.BackupFileName)
	return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSONCharsetUTF8, data)
}

// Import принимает JSON в теле запроса или multipart-поле "file".
func (c *BackupController) Import(ctx echo.Context) error {
	reqCtx, cancel := utils.ContextWithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := c.readPayload(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.backupService.Import(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Данные успешно восстановлены", http.StatusOK)
}

func (c *BackupController) readPayload(ctx echo.Context) ([]byte, error) {
	rules := config.UploadContexts["backup_import"]
	limit := rules.MaxSizeMB * 1024 * 1024

	if !strings.HasPrefix(ctx.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		data, err := io.ReadAll(io.LimitReader(ctx.Request().Body, limit+1))
		if err != nil {
			return nil, apperrors.NewHttpError(http.StatusBadRequest, "Не удалось прочитать тело запроса", err, nil)
		}
		if int64(len(data)) > limit {
			return nil, apperrors.NewBadRequestError("Файл превышает допустимый размер")
		}
		return data, nil
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, "Файл не был передан", apperrors.ErrBadRequest, nil)
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil)
	}
	defer src.Close()

	if err := validation.ValidateFile(fileHeader, src, "backup_import"); err != nil {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, err.Error(), apperrors.ErrBadRequest,
			map[string]interface{}{"filename": fileHeader.Filename})
	}

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Ошибка обработки файла", err, nil)
	}
	c.logger.Info("Получен файл резервной копии", zap.String("filename", fileHeader.Filename), zap.Int64("size", fileHeader.Size))
	return data, nil
}
