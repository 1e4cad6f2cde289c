package services

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"go.uber.org/zap"

	"service-tracker/internal/entities"
	"service-tracker/internal/events"
	"service-tracker/internal/records"
	"service-tracker/internal/repositories"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/eventbus"
)

type WorkspaceState string

const (
	StateIdle    WorkspaceState = "idle"
	StateLoading WorkspaceState = "loading"
	StateReady   WorkspaceState = "ready"
	StateError   WorkspaceState = "error"
)

// WorkspaceStatus - состояние рабочего пространства для /api/state.
type WorkspaceStatus struct {
	State        WorkspaceState `json:"state"`
	Error        string         `json:"error,omitempty"`
	Services     int            `json:"services"`
	Notes        int            `json:"notes"`
	MissingParts int            `json:"missingParts"`
	LoadedAt     *time.Time     `json:"loadedAt,omitempty"`
}

// Workspace владеет снимком данных в памяти. Чтения идут из снимка,
// каждая мутация сначала переписывает коллекцию в хранилище целиком, потом обновляет снимок.
type Workspace struct {
	mu       sync.RWMutex
	state    WorkspaceState
	lastErr  error
	loadedAt time.Time

	services     []entities.ServiceRecord
	notes        []entities.Note
	missingParts []string

	serviceRepo repositories.ServiceRecordRepositoryInterface
	noteRepo    repositories.NoteRepositoryInterface
	partRepo    repositories.MissingPartRepositoryInterface
	bus         *eventbus.Bus
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewWorkspace(
	serviceRepo repositories.ServiceRecordRepositoryInterface,
	noteRepo repositories.NoteRepositoryInterface,
	partRepo repositories.MissingPartRepositoryInterface,
	bus *eventbus.Bus,
	loc *time.Location,
	logger *zap.Logger,
) *Workspace {
	if loc == nil {
		loc = time.UTC
	}
	return &Workspace{
		state:        StateIdle,
		services:     []entities.ServiceRecord{},
		notes:        []entities.Note{},
		missingParts: []string{},
		serviceRepo:  serviceRepo,
		noteRepo:     noteRepo,
		partRepo:     partRepo,
		bus:          bus,
		loc:          loc,
		now:          time.Now,
		logger:       logger,
	}
}

// SetClock подменяет часы (для тестов).
func (w *Workspace) SetClock(now func() time.Time) { w.now = now }

func (w *Workspace) Location() *time.Location { return w.loc }

func (w *Workspace) Now() time.Time { return w.now() }

// Load читает все ключи из хранилища: idle/ready/error -> loading -> ready | error.
// Ошибка чтения переводит в error и оставляет прежний снимок. Поврежденный JSON - не ошибка.
func (w *Workspace) Load(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateLoading
	list, notes, parts, err := w.read(ctx)
	if err != nil {
		w.state = StateError
		w.lastErr = err
		w.logger.Error("Не удалось загрузить данные", zap.Error(err))
		return err
	}

	w.services, w.notes, w.missingParts = list, notes, parts
	w.state = StateReady
	w.lastErr = nil
	w.loadedAt = w.now()
	w.logger.Info("Данные загружены",
		zap.Int("services", len(list)),
		zap.Int("notes", len(notes)),
		zap.Int("missingParts", len(parts)),
	)
	return nil
}

func (w *Workspace) read(ctx context.Context) ([]entities.ServiceRecord, []entities.Note, []string, error) {
	list, err := w.serviceRepo.FindAll(ctx, w.now())
	if err != nil {
		return nil, nil, nil, err
	}
	order, err := w.serviceRepo.LoadOrder(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	notes, err := w.noteRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	parts, err := w.partRepo.FindAll(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return records.ApplySavedOrder(list, order), notes, parts, nil
}

func (w *Workspace) Status() WorkspaceStatus {
	w.mu.RLock()
	defer w.mu.RUnlock()

	st := WorkspaceStatus{
		State:        w.state,
		Services:     len(w.services),
		Notes:        len(w.notes),
		MissingParts: len(w.missingParts),
	}
	if w.lastErr != nil {
		st.Error = w.lastErr.Error()
	}
	if !w.loadedAt.IsZero() {
		at := w.loadedAt
		st.LoadedAt = &at
	}
	return st
}

// Services возвращает копию списка в текущем порядке.
func (w *Workspace) Services() ([]entities.ServiceRecord, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}
	return slices.Clone(w.services), nil
}

func (w *Workspace) Notes() ([]entities.Note, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}
	return slices.Clone(w.notes), nil
}

func (w *Workspace) MissingParts() ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}
	return slices.Clone(w.missingParts), nil
}

func (w *Workspace) readyLocked() error {
	if w.state != StateReady {
		return fmt.Errorf("%w: состояние %s", apperrors.ErrNotReady, w.state)
	}
	return nil
}

// MutateServices применяет fn к копии списка и сохраняет результат.
// При withOrder карта порядка перестраивается по новому списку.
func (w *Workspace) MutateServices(ctx context.Context, withOrder bool, fn func([]entities.ServiceRecord) ([]entities.ServiceRecord, error)) ([]entities.ServiceRecord, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}

	next, err := fn(slices.Clone(w.services))
	if err != nil {
		return nil, err
	}
	if err := w.serviceRepo.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	if withOrder {
		if err := w.serviceRepo.SaveOrder(ctx, records.BuildOrder(next)); err != nil {
			// записи уже сохранены, снимок обновляем, чтобы не разойтись с хранилищем
			w.services = next
			return nil, err
		}
	}
	w.services = next
	w.publish(constants.StoreKeyServices, len(next))
	return slices.Clone(next), nil
}

func (w *Workspace) MutateNotes(ctx context.Context, fn func([]entities.Note) ([]entities.Note, error)) ([]entities.Note, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}

	next, err := fn(slices.Clone(w.notes))
	if err != nil {
		return nil, err
	}
	if err := w.noteRepo.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	w.notes = next
	w.publish(constants.StoreKeyNotes, len(next))
	return slices.Clone(next), nil
}

func (w *Workspace) MutateMissingParts(ctx context.Context, fn func([]string) ([]string, error)) ([]string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.readyLocked(); err != nil {
		return nil, err
	}

	next, err := fn(slices.Clone(w.missingParts))
	if err != nil {
		return nil, err
	}
	if err := w.partRepo.SaveAll(ctx, next); err != nil {
		return nil, err
	}
	w.missingParts = next
	w.publish(constants.StoreKeyMissingParts, len(next))
	return slices.Clone(next), nil
}

func (w *Workspace) publish(key string, count int) {
	if w.bus == nil {
		return
	}
	w.bus.Publish(events.DataChangedEvent{Key: key, Count: count})
}
