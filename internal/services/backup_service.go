package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"service-tracker/config"
	"service-tracker/internal/dto"
	"service-tracker/internal/entities"
	"service-tracker/internal/records"
	"service-tracker/internal/repositories"
	"service-tracker/pkg/constants"
	apperrors "service-tracker/pkg/errors"
	"service-tracker/pkg/filestorage"
)

// BackupFileName - имя файла экспорта для скачивания.
const BackupFileName = "boltyedek.json"

type BackupServiceInterface interface {
	Export(ctx context.Context) ([]byte, error)
	Import(ctx context.Context, payload []byte) (*dto.ImportResultDTO, error)
}

type BackupService struct {
	workspace *Workspace
	store     repositories.StoreInterface
	archive   filestorage.FileStorageInterface
	logger    *zap.Logger
}

// NewBackupService: archive может быть nil, тогда копии экспорта не сохраняются.
func NewBackupService(workspace *Workspace, store repositories.StoreInterface, archive filestorage.FileStorageInterface, logger *zap.Logger) BackupServiceInterface {
	return &BackupService{workspace: workspace, store: store, archive: archive, logger: logger}
}

// Export собирает файл резервной копии из текущего снимка.
func (s *BackupService) Export(ctx context.Context) ([]byte, error) {
	list, err := s.workspace.Services()
	if err != nil {
		return nil, err
	}
	notes, err := s.workspace.Notes()
	if err != nil {
		return nil, err
	}
	parts, err := s.workspace.MissingParts()
	if err != nil {
		return nil, err
	}

	now := s.workspace.Now()
	exported := make([]entities.ExportRecord, len(list))
	for i, r := range list {
		exported[i] = toExportRecord(r, now)
	}

	data, err := json.MarshalIndent(dto.BackupDTO{
		Services:     exported,
		Notes:        notes,
		MissingParts: parts,
		ExportDate:   records.FormatTimestamp(now),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("сериализация резервной копии: %w", err)
	}

	if s.archive != nil {
		rules := config.UploadContexts["backup_export"]
		path, err := s.archive.Save(bytes.NewReader(data), BackupFileName, rules.PathPrefix)
		if err != nil {
			// копия в архиве не обязательна для скачивания
			s.logger.Warn("Не удалось сохранить копию экспорта", zap.Error(err))
		} else {
			s.logger.Info("Копия экспорта сохранена", zap.String("path", path))
		}
	}
	return data, nil
}

func toExportRecord(r entities.ServiceRecord, now time.Time) entities.ExportRecord {
	ts := records.FormatTimestamp(now)
	color := r.Color
	if color == "" {
		color = constants.DefaultColor
	}
	return entities.ExportRecord{
		ID:            r.ID,
		CustomerPhone: r.DisplayPhone(),
		Address:       r.DisplayAddress(),
		Color:         color,
		Cost:          r.DisplayRevenue(),
		Expenses:      r.Expenses,
		Status:        r.Status,
		CreatedAt:     firstNonEmpty(r.CreatedAt, r.Date, ts),
		UpdatedAt:     firstNonEmpty(r.UpdatedAt, ts),
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// importKeys - поля файла и ключи хранилища, в которые они пишутся.
var importKeys = []struct {
	field string
	key   string
}{
	{"services", constants.StoreKeyServices},
	{"notes", constants.StoreKeyNotes},
	{"missingParts", constants.StoreKeyMissingParts},
}

// Import разбирает файл целиком до любой записи: поврежденный файл не трогает ни один ключ.
// Принимается плоский объект или обертка {"data": {...}}; "data", который не является объектом,
// игнорируется. Пишется только ключ со значением-массивом, как есть, затем снимок перечитывается
// из хранилища.
func (s *BackupService) Import(ctx context.Context, payload []byte) (*dto.ImportResultDTO, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil || top == nil {
		return nil, apperrors.NewBadRequestError("Формат файла недействителен")
	}
	if wrapped, ok := top["data"]; ok {
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(wrapped, &inner); err == nil && inner != nil {
			top = inner
		}
	}

	entries := make(map[string][]byte, len(importKeys))
	result := &dto.ImportResultDTO{WrittenKeys: []string{}}
	for _, k := range importKeys {
		raw, ok := top[k.field]
		if !ok {
			continue
		}
		// false, 0, "" и прочие не-массивы не перетирают сохраненные данные
		n, isArray := arrayLen(raw)
		if !isArray {
			continue
		}
		entries[k.key] = bytes.TrimSpace(raw)
		result.WrittenKeys = append(result.WrittenKeys, k.key)

		switch k.key {
		case constants.StoreKeyServices:
			result.Services = n
		case constants.StoreKeyNotes:
			result.Notes = n
		case constants.StoreKeyMissingParts:
			result.MissingParts = n
		}
	}

	if len(entries) > 0 {
		if err := s.store.SetMany(ctx, entries); err != nil {
			return nil, fmt.Errorf("запись импорта: %w", err)
		}
	}
	if err := s.workspace.Load(ctx); err != nil {
		return nil, err
	}

	s.logger.Info("Данные импортированы",
		zap.Int("services", result.Services),
		zap.Int("notes", result.Notes),
		zap.Strings("keys", result.WrittenKeys),
	)
	return result, nil
}

// arrayLen возвращает длину JSON-массива; ok=false для null и любых не-массивов.
func arrayLen(raw json.RawMessage) (int, bool) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return 0, false
	}
	return len(items), true
}
