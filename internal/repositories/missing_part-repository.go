package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"service-tracker/pkg/constants"
)

type MissingPartRepositoryInterface interface {
	FindAll(ctx context.Context) ([]string, error)
	SaveAll(ctx context.Context, parts []string) error
}

type missingPartRepository struct {
	store  StoreInterface
	logger *zap.Logger
}

func NewMissingPartRepository(store StoreInterface, logger *zap.Logger) MissingPartRepositoryInterface {
	return &missingPartRepository{store: store, logger: logger}
}

func (r *missingPartRepository) FindAll(ctx context.Context) ([]string, error) {
	blob, found, err := r.store.Get(ctx, constants.StoreKeyMissingParts)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", constants.StoreKeyMissingParts, err)
	}
	parts := []string{}
	if !found {
		return parts, nil
	}
	if err := json.Unmarshal(blob, &parts); err != nil || parts == nil {
		r.logger.Warn("Не удалось разобрать список недостающих деталей", zap.Error(err))
		return []string{}, nil
	}
	return parts, nil
}

func (r *missingPartRepository) SaveAll(ctx context.Context, parts []string) error {
	return saveJSON(ctx, r.store, constants.StoreKeyMissingParts, nonNil(parts))
}
