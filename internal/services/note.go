package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
)

type NoteServiceInterface interface {
	GetNotes(ctx context.Context) ([]entities.Note, error)
	CreateNote(ctx context.Context, in dto.NoteDTO) (*entities.Note, error)
	UpdateNote(ctx context.Context, id string, in dto.NoteDTO) (*entities.Note, error)
	DeleteNote(ctx context.Context, id string) error
}

type NoteService struct {
	workspace *Workspace
	logger    *zap.Logger
}

func NewNoteService(workspace *Workspace, logger *zap.Logger) NoteServiceInterface {
	return &NoteService{workspace: workspace, logger: logger}
}

func (s *NoteService) GetNotes(ctx context.Context) ([]entities.Note, error) {
	return s.workspace.Notes()
}

// today - дата последнего сохранения заметки в часовом поясе приложения.
func (s *NoteService) today() string {
	return s.workspace.Now().In(s.workspace.Location()).Format(constants.DateLayout)
}

func (s *NoteService) CreateNote(ctx context.Context, in dto.NoteDTO) (*entities.Note, error) {
	note := entities.Note{
		ID:      "note_" + uuid.NewString(),
		Title:   in.Title,
		Content: in.Content,
		Date:    s.today(),
	}
	_, err := s.workspace.MutateNotes(ctx, func(notes []entities.Note) ([]entities.Note, error) {
		return append(notes, note), nil
	})
	if err != nil {
		return nil, err
	}
	return &note, nil
}

func (s *NoteService) UpdateNote(ctx context.Context, id string, in dto.NoteDTO) (*entities.Note, error) {
	var updated entities.Note
	_, err := s.workspace.MutateNotes(ctx, func(notes []entities.Note) ([]entities.Note, error) {
		for i := range notes {
			if notes[i].ID == id {
				notes[i].Title = in.Title
				notes[i].Content = in.Content
				notes[i].Date = s.today()
				updated = notes[i]
				return notes, nil
			}
		}
		return nil, apperrors.NewNotFoundError("Заметка не найдена")
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, id string) error {
	_, err := s.workspace.MutateNotes(ctx, func(notes []entities.Note) ([]entities.Note, error) {
		for i := range notes {
			if notes[i].ID == id {
				return append(notes[:i], notes[i+1:]...), nil
			}
		}
		return nil, apperrors.NewNotFoundError("Заметка не найдена")
	})
	return err
}
