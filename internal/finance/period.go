package finance

import (
	"time"

	"service-tracker/internal/entities"
	"service-tracker/pkg/constants"
)

// Period - месяц (1-12) и год. Month == 0 означает весь год, Year == 0 - любой год.
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month,omitempty"`
}

// PeriodOf возвращает месяц, в который попадает момент t в зоне loc.
func PeriodOf(t time.Time, loc *time.Location) Period {
	local := t.In(loc)
	return Period{Year: local.Year(), Month: int(local.Month())}
}

// Contains проверяет момент по календарю зоны loc.
func (p Period) Contains(t time.Time, loc *time.Location) bool {
	local := t.In(loc)
	if p.Year != 0 && local.Year() != p.Year {
		return false
	}
	if p.Month != 0 && int(local.Month()) != p.Month {
		return false
	}
	return true
}

// Valid - месяц в диапазоне 0..12.
func (p Period) Valid() bool {
	return p.Month >= 0 && p.Month <= 12 && p.Year >= 0
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var localLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	constants.DateLayout,
}

// EffectiveTime - createdAt, иначе date. Моменты с зоной переводятся в loc,
// дата без зоны трактуется как календарная дата в loc. ok=false для нечитаемых значений.
func EffectiveTime(r entities.ServiceRecord, loc *time.Location) (time.Time, bool) {
	value := r.CreatedAt
	if value == "" {
		value = r.Date
	}
	return ParseTimestamp(value, loc)
}

// ParseTimestamp разбирает ISO-8601 в одном из поддерживаемых форматов.
func ParseTimestamp(value string, loc *time.Location) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.In(loc), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FilterByPeriod оставляет записи, чье эффективное время попадает в период.
func FilterByPeriod(records []entities.ServiceRecord, p Period, loc *time.Location) []entities.ServiceRecord {
	out := make([]entities.ServiceRecord, 0, len(records))
	for _, r := range records {
		t, ok := EffectiveTime(r, loc)
		if ok && p.Contains(t, loc) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStatus оставляет записи с указанным статусом.
func FilterByStatus(records []entities.ServiceRecord, status string) []entities.ServiceRecord {
	out := make([]entities.ServiceRecord, 0, len(records))
	for _, r := range records {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// CompletedOnly - предикат отчетов: только завершенные записи.
func CompletedOnly(records []entities.ServiceRecord) []entities.ServiceRecord {
	return FilterByStatus(records, constants.StatusCompleted)
}
