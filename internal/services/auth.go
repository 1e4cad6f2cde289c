package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"service-tracker/internal/dto"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/service"
	"service-tracker/pkg/utils"
)

type AuthServiceInterface interface {
	Enabled() bool
	Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error)
}

// AuthService - вход по PIN-коду. Хеш PIN берется из AUTH_PIN_HASH; без него вход отключен.
type AuthService struct {
	pinHash    string
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(pinHash string, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{pinHash: pinHash, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Enabled() bool { return s.pinHash != "" }

func (s *AuthService) Login(ctx context.Context, in dto.LoginDTO) (*dto.TokenDTO, error) {
	if !s.Enabled() {
		return nil, apperrors.NewBadRequestError(apperrors.ErrAuthDisabled.Error())
	}
	if err := utils.ComparePasswords(s.pinHash, in.Pin); err != nil {
		s.logger.Warn("Неудачная попытка входа")
		return nil, apperrors.NewUnauthorizedError(apperrors.ErrInvalidCredentials.Error())
	}

	token, expiresAt, err := s.jwtService.GenerateToken()
	if err != nil {
		return nil, apperrors.NewInternalError("Не удалось выдать токен", err)
	}
	return &dto.TokenDTO{AccessToken: token, ExpiresAt: expiresAt.UTC().Format(time.RFC3339)}, nil
}
