package repositories

import (
	"context"
)

// StoreInterface - хранилище ключ-значение для JSON-блобов. Атомарность только в пределах ключа,
// кроме SetMany: там, где бэкенд умеет транзакции, набор ключей пишется целиком.
type StoreInterface interface {
	// Get возвращает found=false для отсутствующего ключа, это не ошибка.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
	SetMany(ctx context.Context, entries map[string][]byte) error
	Ping(ctx context.Context) error
}
