// pkg/constants/constants.go
package constants

//============== STORE KEYS ==============

// Ключи верхнего уровня в хранилище. Каждый ключ читается и пишется независимо.
const (
	StoreKeyServices     = "sts_services"
	StoreKeyNotes        = "sts_notes"
	StoreKeyMissingParts = "sts_missing_parts"
	StoreKeyServiceOrder = "serviceOrder"
)

// BackupKeys - ключи, которые участвуют в импорте/экспорте.
var BackupKeys = []string{StoreKeyServices, StoreKeyNotes, StoreKeyMissingParts}

//============== COLORS ==============

// Палитра цветовых меток сервисной записи.
const (
	ColorWhite  = "white"
	ColorYellow = "yellow"
	ColorGreen  = "green"
	ColorGray   = "gray"
	ColorRed    = "red"
)

const DefaultColor = ColorWhite

var Palette = []string{ColorWhite, ColorYellow, ColorGreen, ColorGray, ColorRed}

func IsPaletteColor(color string) bool {
	for _, c := range Palette {
		if c == color {
			return true
		}
	}
	return false
}

//============== FINANCE ==============

// ProfitShareLabel - подпись доли прибыли. Совпадает с коэффициентом в finance.ProfitShareRate.
const ProfitShareLabel = "%30"

//============== TIME ==============

const (
	DateLayout     = "2006-01-02"
	DefaultTZ      = "Europe/Istanbul"
	DisplayDateFmt = "02.01.2006"
)
