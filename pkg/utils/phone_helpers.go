package utils

import (
	"strings"

	"github.com/ttacon/libphonenumber"
)

// PhoneRegion - регион для разбора номеров без кода страны.
const PhoneRegion = "TR"

var phoneSeparators = strings.NewReplacer(" ", "", "\t", "", "-", "", "(", "", ")", "")

// CanonicalPhone убирает пробелы, дефисы и скобки, заменяет +90 на 0.
// Номер, который libphonenumber считает валидным для Турции, записывается
// национальными цифрами с ведущим 0. Остальное (буквы, короткие номера) остается как есть.
func CanonicalPhone(raw string) string {
	cleaned := phoneSeparators.Replace(strings.TrimSpace(raw))
	if strings.HasPrefix(cleaned, "+90") {
		cleaned = "0" + cleaned[3:]
	}
	if cleaned == "" {
		return ""
	}

	num, err := libphonenumber.Parse(cleaned, PhoneRegion)
	if err != nil || !libphonenumber.IsValidNumberForRegion(num, PhoneRegion) {
		return cleaned
	}
	return "0" + libphonenumber.GetNationalSignificantNumber(num)
}
