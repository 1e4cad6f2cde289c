package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	apperrors "service-tracker/pkg/errors"
)

type MissingPartServiceInterface interface {
	GetMissingParts(ctx context.Context) ([]string, error)
	AddMissingPart(ctx context.Context, name string) ([]string, error)
	RemoveMissingPart(ctx context.Context, index int) ([]string, error)
}

type MissingPartService struct {
	workspace *Workspace
	logger    *zap.Logger
}

func NewMissingPartService(workspace *Workspace, logger *zap.Logger) MissingPartServiceInterface {
	return &MissingPartService{workspace: workspace, logger: logger}
}

func (s *MissingPartService) GetMissingParts(ctx context.Context) ([]string, error) {
	return s.workspace.MissingParts()
}

func (s *MissingPartService) AddMissingPart(ctx context.Context, name string) ([]string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewBadRequestError("Название детали не может быть пустым")
	}
	return s.workspace.MutateMissingParts(ctx, func(parts []string) ([]string, error) {
		return append(parts, name), nil
	})
}

// RemoveMissingPart удаляет деталь по позиции в списке.
func (s *MissingPartService) RemoveMissingPart(ctx context.Context, index int) ([]string, error) {
	return s.workspace.MutateMissingParts(ctx, func(parts []string) ([]string, error) {
		if index < 0 || index >= len(parts) {
			return nil, apperrors.NewNotFoundError("Деталь не найдена")
		}
		return append(parts[:index], parts[index+1:]...), nil
	})
}
