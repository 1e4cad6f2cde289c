package seeders

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"slices"

	"service-tracker/internal/entities"
	"service-tracker/internal/repositories"
	"service-tracker/pkg/constants"
)

// SeedSampleServices записывает демонстрационные записи и детали.
// Непустое хранилище не перезаписывается, если не задан force.
func SeedSampleServices(ctx context.Context, store repositories.StoreInterface, force bool) error {
	log.Println("▶️  Запуск наполнения демонстрационными записями...")

	_, found, err := store.Get(ctx, constants.StoreKeyServices)
	if err != nil {
		return fmt.Errorf("чтение %s: %w", constants.StoreKeyServices, err)
	}
	if found && !force {
		log.Println("⏭️  Записи уже есть, пропускаем (используйте -force для перезаписи)")
		return nil
	}

	list := make([]entities.ServiceRecord, len(sampleServices))
	for i, r := range sampleServices {
		r.SyncLegacy()
		list[i] = r
	}

	entries := map[string][]byte{}
	blob, err := marshal(list)
	if err != nil {
		return err
	}
	entries[constants.StoreKeyServices] = blob

	if blob, err = marshal(slices.Clone(sampleMissingParts)); err != nil {
		return err
	}
	entries[constants.StoreKeyMissingParts] = blob

	if err := store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("запись демонстрационных данных: %w", err)
	}
	// старый ручной порядок относится к перезаписанным записям
	if err := store.Remove(ctx, constants.StoreKeyServiceOrder); err != nil {
		return fmt.Errorf("удаление %s: %w", constants.StoreKeyServiceOrder, err)
	}

	log.Printf("✅ Записано %d записей и %d деталей", len(list), len(sampleMissingParts))
	return nil
}

// ClearAll удаляет все ключи приложения.
func ClearAll(ctx context.Context, store repositories.StoreInterface) error {
	keys := append(slices.Clone(constants.BackupKeys), constants.StoreKeyServiceOrder)
	for _, key := range keys {
		if err := store.Remove(ctx, key); err != nil {
			return fmt.Errorf("удаление %s: %w", key, err)
		}
	}
	log.Println("🧹 Хранилище очищено")
	return nil
}

func marshal(v any) ([]byte, error) {
	blob, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("сериализация: %w", err)
	}
	return blob, nil
}
