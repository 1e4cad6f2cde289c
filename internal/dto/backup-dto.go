package dto

import "service-tracker/internal/entities"

// BackupDTO - формат файла резервной копии. Записи только с каноническими полями.
type BackupDTO struct {
	Services     []entities.ExportRecord `json:"services"`
	Notes        []entities.Note         `json:"notes"`
	MissingParts []string                `json:"missingParts"`
	ExportDate   string                  `json:"exportDate"`
}

type ImportResultDTO struct {
	Services     int      `json:"services"`
	Notes        int      `json:"notes"`
	MissingParts int      `json:"missingParts"`
	WrittenKeys  []string `json:"writtenKeys"`
}
