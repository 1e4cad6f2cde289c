package controllers

import (
	"net/http"

	"service-tracker/internal/dto"
	"service-tracker/internal/services"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(authService services.AuthServiceInterface, logger *zap.Logger) *AuthController {
	return &AuthController{authService: authService, logger: logger}
}

func (ctrl *AuthController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *AuthController) Login(c echo.Context) error {
	var payload dto.LoginDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("Login: ошибка привязки данных", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewBadRequestError("Неверный формат данных для входа"))
	}

	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	token, err := ctrl.authService.Login(c.Request().Context(), payload)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	return utils.SuccessResponse(c, token, "Вход выполнен", http.StatusOK)
}

// Settings сообщает клиенту, нужен ли вход.
func (ctrl *AuthController) Settings(c echo.Context) error {
	return utils.SuccessResponse(c, map[string]bool{"authEnabled": ctrl.authService.Enabled()}, "Настройки входа", http.StatusOK)
}
