package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
)

var now = time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC)

type failingStore struct{ *MemoryStore }

func (failingStore) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("connection refused")
}

func TestServiceRecordRepository(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewServiceRecordRepository(store, zap.NewNop())

	list, err := repo.FindAll(ctx, now)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	require.NoError(t, repo.SaveAll(ctx, []entities.ServiceRecord{{ID: "a", CustomerPhone: "0555", Status: "ongoing"}}))
	list, err = repo.FindAll(ctx, now)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "0555", list[0].PhoneNumber)

	require.NoError(t, repo.SaveAll(ctx, nil))
	blob, _, err := store.Get(ctx, constants.StoreKeyServices)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(blob))
}

func TestServiceRecordRepository_CorruptDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, constants.StoreKeyServices, []byte("{oops")))
	require.NoError(t, store.Set(ctx, constants.StoreKeyServiceOrder, []byte("null")))

	repo := NewServiceRecordRepository(store, zap.NewNop())
	list, err := repo.FindAll(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, list)

	order, err := repo.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Empty(t, order)
}

func TestServiceRecordRepository_Order(t *testing.T) {
	ctx := context.Background()
	repo := NewServiceRecordRepository(NewMemoryStore(), zap.NewNop())

	require.NoError(t, repo.SaveOrder(ctx, []entities.OrderEntry{{ID: "b", Order: 0}, {ID: "a", Order: 1}}))
	order, err := repo.LoadOrder(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"b": 0, "a": 1}, order)
}

func TestRepositories_StoreFailure(t *testing.T) {
	store := failingStore{NewMemoryStore()}
	_, err := NewServiceRecordRepository(store, zap.NewNop()).FindAll(context.Background(), now)
	assert.Error(t, err)
	_, err = NewNoteRepository(store, zap.NewNop()).FindAll(context.Background())
	assert.Error(t, err)
	_, err = NewMissingPartRepository(store, zap.NewNop()).FindAll(context.Background())
	assert.Error(t, err)
}

func TestNoteAndMissingPartRepositories(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	notes := NewNoteRepository(store, zap.NewNop())
	parts := NewMissingPartRepository(store, zap.NewNop())

	require.NoError(t, store.Set(ctx, constants.StoreKeyNotes, []byte(`{"bad":true}`)))
	got, err := notes.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, notes.SaveAll(ctx, []entities.Note{{ID: "note_1", Title: "Kasa", Date: "2024-03-01"}}))
	got, err = notes.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Note{{ID: "note_1", Title: "Kasa", Date: "2024-03-01"}}, got)

	require.NoError(t, parts.SaveAll(ctx, []string{"iPhone 11 ekran", "Samsung batarya"}))
	list, err := parts.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"iPhone 11 ekran", "Samsung batarya"}, list)
}
