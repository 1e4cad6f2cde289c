package repositories

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"service-tracker/pkg/config"
	"service-tracker/pkg/database/postgresql"
)

// OpenStore выбирает хранилище по STORE_DRIVER. Возвращаемая функция закрывает соединения.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (StoreInterface, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory, "":
		logger.Warn("Используется хранилище в памяти, данные не переживут перезапуск")
		return NewMemoryStore(), func() {}, nil

	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := client.Ping(ctx).Result(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("не удалось подключиться к Redis %s: %w", cfg.Redis.Address, err)
		}
		logger.Info("✅ Подключено к Redis", zap.String("address", cfg.Redis.Address))
		return NewRedisStore(client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil

	case config.StorePostgres:
		pool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgresql.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		return NewPostgresStore(pool), pool.Close, nil
	}
	return nil, nil, fmt.Errorf("неизвестный STORE_DRIVER %q", cfg.Store.Driver)
}
