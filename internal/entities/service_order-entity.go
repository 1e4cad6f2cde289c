package entities

// OrderEntry - элемент сохраненного ручного порядка. Хранится отдельно от записей,
// поэтому порядок переживает редактирование содержимого.
type OrderEntry struct {
	ID    string `json:"id"`
	Order int    `json:"order"`
}
