package middleware

import (
	"context"
	"strings"

	"service-tracker/pkg/contextkeys"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/service"
	"service-tracker/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	enabled    bool
	logger     *zap.Logger
}

// NewAuthMiddleware: при enabled=false middleware пропускает все запросы.
func NewAuthMiddleware(jwtSvc service.JWTService, enabled bool, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		enabled:    enabled,
		logger:     logger,
	}
}

func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !m.enabled {
			return next(c)
		}

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.NewUnauthorizedError(apperrors.ErrEmptyAuthHeader.Error()), m.logger)
		}

		// Формат заголовка "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.NewUnauthorizedError(apperrors.ErrInvalidAuthHeader.Error()), m.logger)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, apperrors.NewUnauthorizedError(err.Error()), m.logger)
		}

		ctx := context.WithValue(c.Request().Context(), contextkeys.SessionIDKey, claims.SessionID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
