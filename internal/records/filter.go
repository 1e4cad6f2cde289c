package records

import (
	"strings"
	"unicode"

	"service-tracker/internal/entities"
)

// Matches проверяет запись на поисковую строку: подстрока телефона
// или подстрока адреса без учета регистра (по правилам турецкого языка).
func Matches(r entities.ServiceRecord, term string) bool {
	if term == "" {
		return true
	}
	if strings.Contains(r.DisplayPhone(), term) {
		return true
	}
	address := strings.ToLowerSpecial(unicode.TurkishCase, r.DisplayAddress())
	return strings.Contains(address, strings.ToLowerSpecial(unicode.TurkishCase, term))
}

// Filter возвращает записи с нужным статусом (пустой статус - все), подходящие под поиск.
func Filter(list []entities.ServiceRecord, status, term string) []entities.ServiceRecord {
	out := make([]entities.ServiceRecord, 0, len(list))
	for _, r := range list {
		if status != "" && r.Status != status {
			continue
		}
		if !Matches(r, term) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// IndexByID возвращает позицию записи в списке или -1.
func IndexByID(list []entities.ServiceRecord, id string) int {
	for i, r := range list {
		if r.ID == id {
			return i
		}
	}
	return -1
}
