package records

import (
	"encoding/json"
	"math"
	"slices"

	"service-tracker/internal/entities"
)

// unranked - ранг записи, которой нет в карте порядка. Такие записи идут последними.
const unranked = math.MaxInt

// ApplySavedOrder применяет сохраненный ручной порядок к свежезагруженному списку.
// Пустая карта возвращает список как есть. Сортировка стабильная: записи без ранга
// сохраняют исходный относительный порядок.
func ApplySavedOrder(list []entities.ServiceRecord, orderMap map[string]int) []entities.ServiceRecord {
	if len(orderMap) == 0 {
		return list
	}
	rank := func(r entities.ServiceRecord) int {
		if o, ok := orderMap[r.ID]; ok {
			return o
		}
		return unranked
	}
	sorted := slices.Clone(list)
	slices.SortStableFunc(sorted, func(a, b entities.ServiceRecord) int {
		ra, rb := rank(a), rank(b)
		switch {
		case ra < rb:
			return -1
		case ra > rb:
			return 1
		}
		return 0
	})
	return sorted
}

// BuildOrder строит новую карту порядка для текущего порядка списка.
// Сохраненная карта перезаписывается целиком, слияния не происходит.
func BuildOrder(list []entities.ServiceRecord) []entities.OrderEntry {
	entries := make([]entities.OrderEntry, len(list))
	for i, r := range list {
		entries[i] = entities.OrderEntry{ID: r.ID, Order: i}
	}
	return entries
}

// OrderMap превращает список элементов порядка в карту id -> ранг. Более поздний дубликат выигрывает.
func OrderMap(entries []entities.OrderEntry) map[string]int {
	m := make(map[string]int, len(entries))
	for _, e := range entries {
		m[e.ID] = e.Order
	}
	return m
}

// DecodeOrder читает сохраненную карту порядка. Поврежденный JSON дает пустую карту,
// некорректные элементы пропускаются.
func DecodeOrder(blob []byte) map[string]int {
	var items []json.RawMessage
	if len(blob) == 0 || json.Unmarshal(blob, &items) != nil {
		return map[string]int{}
	}
	entries := make([]entities.OrderEntry, 0, len(items))
	for _, item := range items {
		var raw struct {
			ID    any `json:"id"`
			Order any `json:"order"`
		}
		if err := json.Unmarshal(item, &raw); err != nil {
			continue
		}
		id := coerceString(raw.ID)
		order, ok := numberValue(raw.Order)
		if id == "" || !ok {
			continue
		}
		entries = append(entries, entities.OrderEntry{ID: id, Order: toRank(order)})
	}
	return OrderMap(entries)
}

// SpliceRanked вставляет переупорядоченное подмножество (вид отчета) в полный список:
// записи подмножества получают order = новый индекс и идут первыми в новом порядке,
// остальные записи следуют за ними, сохраняя свой относительный порядок.
func SpliceRanked(full, reordered []entities.ServiceRecord) []entities.ServiceRecord {
	inSubset := make(map[string]bool, len(reordered))
	result := make([]entities.ServiceRecord, 0, len(full))
	for i, r := range reordered {
		order := i
		r.Order = &order
		inSubset[r.ID] = true
		result = append(result, r)
	}
	for _, r := range full {
		if !inSubset[r.ID] {
			result = append(result, r)
		}
	}
	return result
}

// SpliceInPlace вставляет переупорядоченное подмножество (вид списка) обратно в те же позиции,
// которые оно занимало в полном списке. Записи вне подмножества не сдвигаются.
func SpliceInPlace(full, reordered []entities.ServiceRecord) []entities.ServiceRecord {
	inSubset := make(map[string]bool, len(reordered))
	for _, r := range reordered {
		inSubset[r.ID] = true
	}
	result := slices.Clone(full)
	next := 0
	for i, r := range result {
		if !inSubset[r.ID] || next >= len(reordered) {
			continue
		}
		result[i] = reordered[next]
		next++
	}
	return result
}
