package constants

// --- СТАТУСЫ СЕРВИСНЫХ ЗАПИСЕЙ ---
// Плоская метка без конечного автомата: любой статус можно выставить в любой момент.
const (
	StatusOngoing   = "ongoing"
	StatusWorkshop  = "workshop"
	StatusCompleted = "completed"
)

var Statuses = []string{
	StatusOngoing,
	StatusWorkshop,
	StatusCompleted,
}

// Функция-проверка
func IsKnownStatus(code string) bool {
	for _, s := range Statuses {
		if s == code {
			return true
		}
	}
	return false
}
