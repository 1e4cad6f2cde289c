// Package records приводит сохраненные сервисные записи к каноническому виду
// и восстанавливает ручной порядок списка.
package records

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
)

// TimestampLayout - ISO-8601 с миллисекундами, как в исходных данных (2024-01-01T10:00:00.000Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatTimestamp форматирует момент времени в UTC в формате TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// DecodeRecords декодирует сохраненный список записей и нормализует его.
// Поврежденный JSON, null или не-массив дают пустой список.
func DecodeRecords(blob []byte, now time.Time) []entities.ServiceRecord {
	if len(blob) == 0 {
		return []entities.ServiceRecord{}
	}
	var items []any
	if err := json.Unmarshal(blob, &items); err != nil || items == nil {
		return []entities.ServiceRecord{}
	}
	raw := make([]map[string]any, len(items))
	for i, item := range items {
		// Не-объекты нормализуются как пустая запись, а не отбрасываются
		if m, ok := item.(map[string]any); ok {
			raw[i] = m
		}
	}
	return Normalize(raw, now)
}

// Normalize переводит записи любого поколения в канонический вид.
// Длина и порядок сохраняются, ни одна запись не отбрасывается.
func Normalize(raw []map[string]any, now time.Time) []entities.ServiceRecord {
	out := make([]entities.ServiceRecord, len(raw))
	for i, in := range raw {
		out[i] = NormalizeOne(in, now)
	}
	return out
}

// NormalizeOne нормализует одну запись. Отсутствующие строки становятся "", числа - 0.
func NormalizeOne(in map[string]any, now time.Time) entities.ServiceRecord {
	ts := FormatTimestamp(now)
	today := now.UTC().Format(constants.DateLayout)

	rec := entities.ServiceRecord{
		ID:            coerceString(in["id"]),
		CustomerPhone: firstString(in["customerPhone"], in["phoneNumber"]),
		Address:       firstString(in["address"], in["description"]),
		Color:         firstString(in["color"], constants.DefaultColor),
		Cost:          firstNumber(in["cost"], in["feeCollected"]),
		Expenses:      coerceNumber(in["expenses"]),
		Status:        coerceString(in["status"]),
		CreatedAt:     firstString(in["createdAt"], in["date"], ts),
		UpdatedAt:     firstString(in["updatedAt"], ts),

		PhoneNumber:  firstString(in["phoneNumber"], in["customerPhone"]),
		Description:  firstString(in["description"], in["address"]),
		FeeCollected: firstNumber(in["feeCollected"], in["cost"]),
		Date:         firstString(in["date"], in["createdAt"], today),

		PartsChanged:          coerceString(in["partsChanged"]),
		MissingParts:          coerceString(in["missingParts"]),
		PhoneNumberNote:       coerceString(in["phoneNumberNote"]),
		RawCustomerPhoneInput: coerceString(in["rawCustomerPhoneInput"]),
	}

	if f, ok := numberValue(in["order"]); ok {
		order := toRank(f)
		rec.Order = &order
	}
	if f, ok := numberValue(in["quotedPrice"]); ok {
		rec.QuotedPrice = &f
	}
	return rec
}

// firstString повторяет семантику `a || b || c`: пустые значения пропускаются.
func firstString(values ...any) string {
	for _, v := range values {
		if s := coerceString(v); s != "" {
			return s
		}
	}
	return ""
}

func firstNumber(values ...any) float64 {
	for _, v := range values {
		if f := coerceNumber(v); f != 0 {
			return f
		}
	}
	return 0
}

func coerceString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	}
	return ""
}

// toRank переводит число в int с насыщением: 1e19 не должен превратиться в отрицательный ранг.
func toRank(f float64) int {
	switch {
	case f >= float64(math.MaxInt):
		return math.MaxInt
	case f <= float64(math.MinInt):
		return math.MinInt
	}
	return int(f)
}

func coerceNumber(v any) float64 {
	f, _ := numberValue(v)
	return f
}

// numberValue принимает числа и числовые строки; ok=false для всего остального.
func numberValue(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
