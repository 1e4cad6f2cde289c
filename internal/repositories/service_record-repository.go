package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"service-tracker/internal/entities"
	"service-tracker/internal/records"
	"service-tracker/pkg/constants"
)

type ServiceRecordRepositoryInterface interface {
	// FindAll читает и нормализует записи. Поврежденный JSON дает пустой список, а не ошибку.
	FindAll(ctx context.Context, now time.Time) ([]entities.ServiceRecord, error)
	SaveAll(ctx context.Context, list []entities.ServiceRecord) error
	LoadOrder(ctx context.Context) (map[string]int, error)
	SaveOrder(ctx context.Context, entries []entities.OrderEntry) error
}

type serviceRecordRepository struct {
	store  StoreInterface
	logger *zap.Logger
}

func NewServiceRecordRepository(store StoreInterface, logger *zap.Logger) ServiceRecordRepositoryInterface {
	return &serviceRecordRepository{store: store, logger: logger}
}

func (r *serviceRecordRepository) FindAll(ctx context.Context, now time.Time) ([]entities.ServiceRecord, error) {
	blob, found, err := r.store.Get(ctx, constants.StoreKeyServices)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", constants.StoreKeyServices, err)
	}
	if !found {
		return []entities.ServiceRecord{}, nil
	}
	warnIfCorrupt(r.logger, constants.StoreKeyServices, blob)
	return records.DecodeRecords(blob, now), nil
}

func (r *serviceRecordRepository) SaveAll(ctx context.Context, list []entities.ServiceRecord) error {
	return saveJSON(ctx, r.store, constants.StoreKeyServices, nonNil(list))
}

func (r *serviceRecordRepository) LoadOrder(ctx context.Context) (map[string]int, error) {
	blob, found, err := r.store.Get(ctx, constants.StoreKeyServiceOrder)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", constants.StoreKeyServiceOrder, err)
	}
	if !found {
		return map[string]int{}, nil
	}
	warnIfCorrupt(r.logger, constants.StoreKeyServiceOrder, blob)
	return records.DecodeOrder(blob), nil
}

func (r *serviceRecordRepository) SaveOrder(ctx context.Context, entries []entities.OrderEntry) error {
	return saveJSON(ctx, r.store, constants.StoreKeyServiceOrder, nonNil(entries))
}

func saveJSON(ctx context.Context, store StoreInterface, key string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("сериализация %s: %w", key, err)
	}
	if err := store.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("запись %s: %w", key, err)
	}
	return nil
}

func warnIfCorrupt(logger *zap.Logger, key string, blob []byte) {
	if !json.Valid(blob) {
		logger.Warn("Поврежденные данные в хранилище, используется пустой список", zap.String("key", key), zap.Int("bytes", len(blob)))
	}
}

// nonNil - пустой список пишется как [], а не null.
func nonNil[T any](list []T) []T {
	if list == nil {
		return []T{}
	}
	return list
}
