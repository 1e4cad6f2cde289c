package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
)

type NoteRepositoryInterface interface {
	FindAll(ctx context.Context) ([]entities.Note, error)
	SaveAll(ctx context.Context, notes []entities.Note) error
}

type noteRepository struct {
	store  StoreInterface
	logger *zap.Logger
}

func NewNoteRepository(store StoreInterface, logger *zap.Logger) NoteRepositoryInterface {
	return &noteRepository{store: store, logger: logger}
}

func (r *noteRepository) FindAll(ctx context.Context) ([]entities.Note, error) {
	blob, found, err := r.store.Get(ctx, constants.StoreKeyNotes)
	if err != nil {
		return nil, fmt.Errorf("чтение %s: %w", constants.StoreKeyNotes, err)
	}
	notes := []entities.Note{}
	if !found {
		return notes, nil
	}
	if err := json.Unmarshal(blob, &notes); err != nil || notes == nil {
		r.logger.Warn("Не удалось разобрать заметки, используется пустой список", zap.Error(err))
		return []entities.Note{}, nil
	}
	return notes, nil
}

func (r *noteRepository) SaveAll(ctx context.Context, notes []entities.Note) error {
	return saveJSON(ctx, r.store, constants.StoreKeyNotes, nonNil(notes))
}
