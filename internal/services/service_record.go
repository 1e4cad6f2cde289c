package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"service-tracker/internal/dto"
	"service-tracker/internal/entities"
	"service-tracker/internal/finance"
	"service-tracker/internal/records"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/utils"
)

type ServiceRecordServiceInterface interface {
	GetServices(ctx context.Context, status, search string) ([]entities.ServiceRecord, error)
	FindService(ctx context.Context, id string) (*entities.ServiceRecord, error)
	CreateService(ctx context.Context, in dto.CreateServiceRecordDTO) (*entities.ServiceRecord, error)
	UpdateService(ctx context.Context, id string, in dto.UpdateServiceRecordDTO) (*entities.ServiceRecord, error)
	PatchService(ctx context.Context, id string, in dto.PatchServiceRecordDTO) (*entities.ServiceRecord, error)
	DeleteService(ctx context.Context, id string) error
	ReorderServices(ctx context.Context, in dto.ReorderDTO) ([]entities.ServiceRecord, error)
}

type ServiceRecordService struct {
	workspace *Workspace
	logger    *zap.Logger
}

func NewServiceRecordService(workspace *Workspace, logger *zap.Logger) ServiceRecordServiceInterface {
	return &ServiceRecordService{workspace: workspace, logger: logger}
}

func (s *ServiceRecordService) GetServices(ctx context.Context, status, search string) ([]entities.ServiceRecord, error) {
	list, err := s.workspace.Services()
	if err != nil {
		return nil, err
	}
	return records.Filter(list, status, strings.TrimSpace(search)), nil
}

func (s *ServiceRecordService) FindService(ctx context.Context, id string) (*entities.ServiceRecord, error) {
	list, err := s.workspace.Services()
	if err != nil {
		return nil, err
	}
	i := records.IndexByID(list, id)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("Сервисная запись не найдена")
	}
	return &list[i], nil
}

func (s *ServiceRecordService) CreateService(ctx context.Context, in dto.CreateServiceRecordDTO) (*entities.ServiceRecord, error) {
	now := records.FormatTimestamp(s.workspace.Now())
	createdAt, err := s.createdAt(in.CreatedAt, now)
	if err != nil {
		return nil, err
	}

	rec := entities.ServiceRecord{
		ID:        uuid.NewString(),
		Status:    constants.StatusOngoing,
		Color:     constants.DefaultColor,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	applyForm(&rec, in)
	rec.SyncLegacy()

	// новая запись добавляется в конец списка
	_, err = s.workspace.MutateServices(ctx, false, func(list []entities.ServiceRecord) ([]entities.ServiceRecord, error) {
		return append(list, rec), nil
	})
	if err != nil {
		s.logger.Error("ошибка при создании сервисной записи", zap.Error(err))
		return nil, err
	}
	s.logger.Info("Сервисная запись создана", zap.String("id", rec.ID))
	return &rec, nil
}

// UpdateService - полная замена полей формы. id и order сохраняются, createdAt - если не передан,
// пустые status и color не меняются.
func (s *ServiceRecordService) UpdateService(ctx context.Context, id string, in dto.UpdateServiceRecordDTO) (*entities.ServiceRecord, error) {
	var updated entities.ServiceRecord
	_, err := s.workspace.MutateServices(ctx, false, func(list []entities.ServiceRecord) ([]entities.ServiceRecord, error) {
		i := records.IndexByID(list, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("Сервисная запись не найдена")
		}
		now := records.FormatTimestamp(s.workspace.Now())
		createdAt, err := s.createdAt(in.CreatedAt, list[i].CreatedAt)
		if err != nil {
			return nil, err
		}

		rec := entities.ServiceRecord{
			ID:        list[i].ID,
			Order:     list[i].Order,
			Status:    list[i].Status,
			Color:     list[i].Color,
			CreatedAt: createdAt,
			UpdatedAt: now,
		}
		applyForm(&rec, in)
		rec.SyncLegacy()
		list[i] = rec
		updated = rec
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ServiceRecordService) PatchService(ctx context.Context, id string, in dto.PatchServiceRecordDTO) (*entities.ServiceRecord, error) {
	var updated entities.ServiceRecord
	_, err := s.workspace.MutateServices(ctx, false, func(list []entities.ServiceRecord) ([]entities.ServiceRecord, error) {
		i := records.IndexByID(list, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("Сервисная запись не найдена")
		}
		rec := list[i]
		// legacy-значения поднимаются в канонические поля до применения патча
		rec.CustomerPhone = rec.DisplayPhone()
		rec.Address = rec.DisplayAddress()
		rec.Cost = rec.DisplayRevenue()

		if in.CustomerPhone.Valid {
			setPhone(&rec, in.CustomerPhone.String)
		}
		if in.Address.Valid {
			rec.Address = in.Address.String
		}
		if in.Color.Valid {
			rec.Color = in.Color.String
		}
		if in.Cost.Valid {
			rec.Cost = in.Cost.Float64
		}
		if in.Expenses.Valid {
			rec.Expenses = in.Expenses.Float64
		}
		if in.Status.Valid {
			rec.Status = in.Status.String
		}
		if in.PartsChanged.Valid {
			rec.PartsChanged = in.PartsChanged.String
		}
		if in.MissingParts.Valid {
			rec.MissingParts = in.MissingParts.String
		}
		if in.QuotedPrice.Valid {
			rec.QuotedPrice = utils.ToPtr(in.QuotedPrice.Float64)
		}
		if in.PhoneNumberNote.Valid {
			rec.PhoneNumberNote = in.PhoneNumberNote.String
		}
		rec.UpdatedAt = records.FormatTimestamp(s.workspace.Now())
		rec.SyncLegacy()
		list[i] = rec
		updated = rec
		return list, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ServiceRecordService) DeleteService(ctx context.Context, id string) error {
	_, err := s.workspace.MutateServices(ctx, false, func(list []entities.ServiceRecord) ([]entities.ServiceRecord, error) {
		i := records.IndexByID(list, id)
		if i < 0 {
			return nil, apperrors.NewNotFoundError("Сервисная запись не найдена")
		}
		return append(list[:i], list[i+1:]...), nil
	})
	if err != nil {
		return err
	}
	s.logger.Info("Сервисная запись удалена", zap.String("id", id))
	return nil
}

// ReorderServices вставляет новый порядок подмножества в полный список и перезаписывает карту порядка.
// Неизвестные и повторяющиеся id отклоняются.
func (s *ServiceRecordService) ReorderServices(ctx context.Context, in dto.ReorderDTO) ([]entities.ServiceRecord, error) {
	return s.workspace.MutateServices(ctx, true, func(list []entities.ServiceRecord) ([]entities.ServiceRecord, error) {
		byID := make(map[string]entities.ServiceRecord, len(list))
		for _, r := range list {
			byID[r.ID] = r
		}

		seen := make(map[string]bool, len(in.IDs))
		subset := make([]entities.ServiceRecord, 0, len(in.IDs))
		for _, id := range in.IDs {
			r, ok := byID[id]
			if !ok {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("Неизвестный id: %s", id))
			}
			if seen[id] {
				return nil, apperrors.NewBadRequestError(fmt.Sprintf("id повторяется: %s", id))
			}
			seen[id] = true
			subset = append(subset, r)
		}

		if in.Mode == dto.ReorderModeReport {
			return records.SpliceRanked(list, subset), nil
		}
		return records.SpliceInPlace(list, subset), nil
	})
}

func (s *ServiceRecordService) createdAt(given, fallback string) (string, error) {
	if given == "" {
		return fallback, nil
	}
	if _, ok := finance.ParseTimestamp(given, s.workspace.Location()); !ok {
		return "", apperrors.NewBadRequestError("Неверный формат createdAt")
	}
	return given, nil
}

func applyForm(rec *entities.ServiceRecord, in dto.CreateServiceRecordDTO) {
	setPhone(rec, in.CustomerPhone)
	rec.Address = in.Address
	rec.Cost = in.Cost
	rec.Expenses = in.Expenses
	if in.Color != "" {
		rec.Color = in.Color
	}
	if in.Status != "" {
		rec.Status = in.Status
	}
	rec.PartsChanged = in.PartsChanged
	rec.MissingParts = in.MissingParts
	rec.QuotedPrice = in.QuotedPrice
	rec.PhoneNumberNote = in.PhoneNumberNote
}

// setPhone сохраняет канонический номер и исходный ввод, если он отличается.
func setPhone(rec *entities.ServiceRecord, raw string) {
	rec.CustomerPhone = utils.CanonicalPhone(raw)
	rec.RawCustomerPhoneInput = ""
	if raw != rec.CustomerPhone {
		rec.RawCustomerPhoneInput = raw
	}
}
