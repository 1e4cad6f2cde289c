package dto

import (
	"github.com/aarondl/null/v8"

	"service-tracker/internal/entities"
	"service-tracker/internal/finance"
)

// CreateServiceRecordDTO: Что клиент присылает для создания. Тот же DTO используется для PUT.
type CreateServiceRecordDTO struct {
	CustomerPhone   string   `json:"customerPhone" validate:"max=64"`
	Address         string   `json:"address" validate:"max=2000"`
	Color           string   `json:"color" validate:"omitempty,palette_color"`
	Cost            float64  `json:"cost" validate:"gte=0"`
	Expenses        float64  `json:"expenses" validate:"gte=0"`
	Status          string   `json:"status" validate:"omitempty,service_status"`
	CreatedAt       string   `json:"createdAt,omitempty"`
	PartsChanged    string   `json:"partsChanged,omitempty" validate:"max=2000"`
	MissingParts    string   `json:"missingParts,omitempty" validate:"max=2000"`
	QuotedPrice     *float64 `json:"quotedPrice,omitempty" validate:"omitempty,gte=0"`
	PhoneNumberNote string   `json:"phoneNumberNote,omitempty" validate:"max=500"`
}

type UpdateServiceRecordDTO = CreateServiceRecordDTO

// PatchServiceRecordDTO: частичное обновление, отсутствующее поле не меняется.
type PatchServiceRecordDTO struct {
	CustomerPhone   null.String  `json:"customerPhone" validate:"omitempty,max=64"`
	Address         null.String  `json:"address" validate:"omitempty,max=2000"`
	Color           null.String  `json:"color" validate:"omitempty,palette_color"`
	Cost            null.Float64 `json:"cost" validate:"omitempty,gte=0"`
	Expenses        null.Float64 `json:"expenses" validate:"omitempty,gte=0"`
	Status          null.String  `json:"status" validate:"omitempty,service_status"`
	PartsChanged    null.String  `json:"partsChanged" validate:"omitempty,max=2000"`
	MissingParts    null.String  `json:"missingParts" validate:"omitempty,max=2000"`
	QuotedPrice     null.Float64 `json:"quotedPrice" validate:"omitempty,gte=0"`
	PhoneNumberNote null.String  `json:"phoneNumberNote" validate:"omitempty,max=500"`
}

const (
	ReorderModeList   = "list"
	ReorderModeReport = "report"
)

// ReorderDTO: новый порядок подмножества записей. list - записи меняются местами в своих слотах,
// report - подмножество встает в начало списка и получает order.
type ReorderDTO struct {
	IDs  []string `json:"ids" validate:"required,min=1,dive,required"`
	Mode string   `json:"mode" validate:"omitempty,oneof=list report"`
}

// ServiceRecordDTO: Что сервер отправляет клиенту в ответ.
type ServiceRecordDTO struct {
	entities.ServiceRecord
	Breakdown finance.Breakdown `json:"breakdown"`
}

func NewServiceRecordDTO(r entities.ServiceRecord) ServiceRecordDTO {
	return ServiceRecordDTO{ServiceRecord: r, Breakdown: finance.ForRecord(r)}
}
